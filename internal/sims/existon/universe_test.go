package existon

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"existon-ca/internal/core"
	"existon-ca/pkg/ga"
	"existon-ca/pkg/trit"
)

func newTestUniverse(t *testing.T, dims []int, p int, rates Rates) *Universe {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dims = dims
	cfg.P = p
	cfg.Rates = rates
	u, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig(%v, p=%d): %v", dims, p, err)
	}
	return u
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	if _, err := New([]int{0, 4}, 2); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("zero extent must fail, got %v", err)
	}
	if _, err := New(nil, 2); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("empty dims must fail, got %v", err)
	}
	if _, err := New([]int{4, 4}, 0); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("zero algebra order must fail, got %v", err)
	}
	if _, err := New([]int{4, 4}, 2); err != nil {
		t.Fatalf("valid universe rejected: %v", err)
	}
}

func TestObservationRateOneCollapsesAll(t *testing.T) {
	u := newTestUniverse(t, []int{4}, 1, Rates{Observation: 1})

	u.Step()
	potential, observed, _ := u.Counts()
	if potential != 0 || observed != 4 {
		t.Fatalf("after one tick: potential=%d observed=%d, want 0 and 4", potential, observed)
	}

	// Decay is zero, so a second tick must leave every cell Observed.
	u.Step()
	if _, observed, _ := u.Counts(); observed != 4 {
		t.Fatalf("after two ticks: observed=%d, want 4", observed)
	}
}

func TestZeroRatesFreezeClassifications(t *testing.T) {
	u := newTestUniverse(t, []int{6, 6}, 2, Rates{})
	for i := 0; i < 20; i++ {
		u.Step()
	}
	potential, observed, operator := u.Counts()
	if observed != 0 || operator != 0 || potential != 36 {
		t.Fatalf("classifications changed with all rates zero: %d/%d/%d", potential, observed, operator)
	}
}

// With all rates zero the algebraic update still runs, but a universe of
// all-zero states must stay all zero: the local operator is the zero
// multivector and so is every product.
func TestAllZeroStatesStayZero(t *testing.T) {
	u := newTestUniverse(t, []int{4, 4}, 2, Rates{})
	zero := ga.Zero(2)
	for i := range u.cur {
		u.cur[i].Set(Potential, zero)
	}
	u.Step()
	for i := range u.cur {
		if !u.cur[i].State().Equal(zero) {
			t.Fatalf("cell %d left the zero state", i)
		}
	}
}

// Fluctuation rerolls a Potential cell's state and nothing else. On an
// all-zero grid the algebraic update is inert, so any state change is
// attributable to the reroll; the Observed and Operator sentinels prove
// the reroll skips them and classifications stay put.
func TestFluctuationRerollsOnlyPotentialStates(t *testing.T) {
	u := newTestUniverse(t, []int{6, 6}, 2, Rates{Fluctuation: 1})
	zero := ga.Zero(2)
	for i := range u.cur {
		u.cur[i].Set(Potential, zero)
	}
	u.cur[7].Set(Observed, zero)
	u.cur[11].Set(Operator, zero)

	u.Step()

	rerolled := 0
	for i := range u.cur {
		switch i {
		case 7:
			if u.cur[i].Class() != Observed || !u.cur[i].State().Equal(zero) {
				t.Fatalf("observed cell changed: %v %v", u.cur[i].Class(), u.cur[i].State().Coefficients())
			}
		case 11:
			if u.cur[i].Class() != Operator || !u.cur[i].State().Equal(zero) {
				t.Fatalf("operator cell changed: %v %v", u.cur[i].Class(), u.cur[i].State().Coefficients())
			}
		default:
			if u.cur[i].Class() != Potential {
				t.Fatalf("cell %d classification changed to %v", i, u.cur[i].Class())
			}
			if !u.cur[i].State().Equal(zero) {
				rerolled++
			}
		}
	}
	if rerolled == 0 {
		t.Fatal("fluctuation at rate 1 must reroll potential states")
	}
}

// A cell observed this tick forces its entangled partner to Observed even
// when the partner's own transition went the other way. Cells 1 and 2
// decay unmolested, proving the propagation touched only the pair.
func TestForcedCollapsePropagatesToPartner(t *testing.T) {
	u := newTestUniverse(t, []int{4}, 1, Rates{})
	u.pairs = map[int]int{0: 3, 3: 0}
	u.cur[1].Set(Observed, u.cur[1].State())
	u.cur[2].Set(Observed, u.cur[2].State())
	u.cur[3].Set(Observed, u.cur[3].State())
	u.cfg.Rates.Observation = 1
	u.cfg.Rates.Decay = 1

	u.Step()

	got := func(i int) Classification { return u.cur[i].Class() }
	if got(0) != Observed {
		t.Fatalf("cell 0 should observe itself, got %v", got(0))
	}
	if got(3) != Observed {
		t.Fatalf("cell 3 must be forced Observed by its partner, got %v", got(3))
	}
	if got(1) != Potential || got(2) != Potential {
		t.Fatalf("cells 1,2 must decay untouched, got %v and %v", got(1), got(2))
	}
}

// Whenever a cell transitions Potential -> Observed in a tick, its
// entangled partner is Observed by the end of that same tick.
func TestEntangledPairInvariant(t *testing.T) {
	u := newTestUniverse(t, []int{8, 8}, 1, Rates{Observation: 0.3, Entanglement: 0.25})
	if len(u.pairs) == 0 {
		t.Fatal("expected a populated entanglement table")
	}

	prev := make([]Classification, len(u.cur))
	for tick := 0; tick < 10; tick++ {
		for i := range u.cur {
			prev[i] = u.cur[i].Class()
		}
		u.Step()
		for a, b := range u.pairs {
			if prev[a] == Potential && u.cur[a].Class() == Observed {
				if u.cur[b].Class() != Observed {
					t.Fatalf("tick %d: cell %d observed but partner %d is %v", tick, a, b, u.cur[b].Class())
				}
			}
		}
	}
}

func TestOperatorFrozenAcrossTicks(t *testing.T) {
	u := newTestUniverse(t, []int{5, 5}, 2, Rates{
		Observation:  0.5,
		Decay:        0.5,
		Fluctuation:  0.5,
		Entanglement: 0.2,
	})
	state, err := ga.New(2, []trit.Trit{1, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if err := u.PlaceOperator([]int{2, 2}, state); err != nil {
		t.Fatalf("PlaceOperator: %v", err)
	}

	for i := 0; i < 50; i++ {
		u.Step()
	}

	class, coeffs, err := u.CellAt([]int{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if class != Operator {
		t.Fatalf("operator classification drifted to %v", class)
	}
	if !slices.Equal(coeffs, []trit.Trit{1, 0, 0, 0}) {
		t.Fatalf("operator state drifted to %v", coeffs)
	}
}

func TestPlaceOperatorErrors(t *testing.T) {
	u := newTestUniverse(t, []int{4, 4}, 2, Rates{})
	if err := u.PlaceOperator([]int{4, 0}, ga.Zero(2)); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := u.PlaceOperator([]int{1, 1}, ga.Zero(3)); !errors.Is(err, ga.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := u.PlaceOperator([]int{1, 1}, ga.Scalar(2, trit.Pos)); err != nil {
		t.Fatalf("valid placement failed: %v", err)
	}
}

func TestEraseOperatorRestoresPotential(t *testing.T) {
	u := newTestUniverse(t, []int{4, 4}, 2, Rates{})
	if err := u.PlaceOperatorAt(1, 2); err != nil {
		t.Fatal(err)
	}
	class, _, _ := u.CellAt([]int{1, 2})
	if class != Operator {
		t.Fatalf("expected Operator after paint, got %v", class)
	}
	if err := u.EraseOperator([]int{1, 2}); err != nil {
		t.Fatal(err)
	}
	class, _, _ = u.CellAt([]int{1, 2})
	if class != Potential {
		t.Fatalf("expected Potential after erase, got %v", class)
	}
	if err := u.EraseOperator([]int{9, 9}); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestResetDeterministic(t *testing.T) {
	u := newTestUniverse(t, []int{12, 9}, 2, Rates{Observation: 0.1, Entanglement: 0.2})

	u.Reset(99)
	cells := append([]uint8(nil), u.Cells()...)
	pairs := maps.Clone(u.pairs)

	for i := 0; i < 5; i++ {
		u.Step()
	}
	u.Reset(99)

	if !slices.Equal(cells, u.Cells()) {
		t.Fatal("Reset with the same seed must reproduce the display buffer")
	}
	if !maps.Equal(pairs, u.pairs) {
		t.Fatal("Reset with the same seed must reproduce the entanglement table")
	}

	u.Reset(100)
	if slices.Equal(cells, u.Cells()) {
		t.Fatal("different seeds should produce different initial states")
	}
}

func TestResetZeroSeedUsesConfigSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dims = []int{8, 8}
	cfg.Seed = 424242
	u, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}

	u.Reset(cfg.Seed)
	cells := append([]uint8(nil), u.Cells()...)
	for i := 0; i < 3; i++ {
		u.Step()
	}

	u.Reset(0)
	if !slices.Equal(cells, u.Cells()) {
		t.Fatal("zero seed must fall back to the configured seed")
	}
}

func TestCycleEntanglement(t *testing.T) {
	u := newTestUniverse(t, []int{10, 10}, 1, Rates{Entanglement: 0.05})
	want := []float64{0.10, 0.20, 0.01, 0.05}
	for _, frac := range want {
		u.CycleEntanglement()
		if got := u.Rates().Entanglement; got != frac {
			t.Fatalf("cycle reached %v, want %v", got, frac)
		}
	}
	// 20 cells paired at 20% of 100; the table stores both directions.
	u.CycleEntanglement()
	u.CycleEntanglement()
	if got := u.Rates().Entanglement; got != 0.20 {
		t.Fatalf("expected 0.20 after two more cycles, got %v", got)
	}
	if len(u.pairs) != 20 {
		t.Fatalf("expected 20 table entries at 20%%, got %d", len(u.pairs))
	}
}

func TestEntanglementRoundsDown(t *testing.T) {
	u := newTestUniverse(t, []int{5}, 1, Rates{Entanglement: 1})
	// Five cells cannot pair perfectly: one is dropped.
	if len(u.pairs) != 4 {
		t.Fatalf("expected 4 table entries for 5 cells at 100%%, got %d", len(u.pairs))
	}

	u = newTestUniverse(t, []int{3}, 1, Rates{Entanglement: 0.4})
	if len(u.pairs) != 0 {
		t.Fatalf("expected no pairs when the fraction covers one cell, got %d", len(u.pairs))
	}
}

func TestSetRateClamps(t *testing.T) {
	u := newTestUniverse(t, []int{4}, 1, Rates{})
	u.SetRate(RateObservation, 1.5)
	u.SetRate(RateDecay, -0.5)
	u.SetRate(RateFluctuation, 0.25)
	rates := u.Rates()
	if rates.Observation != 1 || rates.Decay != 0 || rates.Fluctuation != 0.25 {
		t.Fatalf("clamping failed: %+v", rates)
	}
}

func TestSetFloatParameter(t *testing.T) {
	u := newTestUniverse(t, []int{10, 10}, 1, Rates{})
	if !u.SetFloatParameter("entanglement_fraction", 0.2) {
		t.Fatal("entanglement fraction must be adjustable")
	}
	if len(u.pairs) != 20 {
		t.Fatalf("setter must rebuild the table, got %d entries", len(u.pairs))
	}
	if !u.SetFloatParameter("observation_rate", 2) {
		t.Fatal("observation rate must be adjustable")
	}
	if got := u.Rates().Observation; got != 1 {
		t.Fatalf("setter must clamp to 1, got %v", got)
	}
	if u.SetFloatParameter("no_such_key", 1) {
		t.Fatal("unknown keys must be rejected")
	}
}

func TestCellAtOutOfBounds(t *testing.T) {
	u := newTestUniverse(t, []int{4, 4}, 1, Rates{})
	if _, _, err := u.CellAt([]int{0, 4}); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	class, coeffs, err := u.CellAt([]int{3, 3})
	if err != nil {
		t.Fatal(err)
	}
	if class != Potential {
		t.Fatalf("fresh cell should be Potential, got %v", class)
	}
	if len(coeffs) != ga.Blades(1) {
		t.Fatalf("coefficient vector has %d entries, want %d", len(coeffs), ga.Blades(1))
	}
}

func TestDisplayEncoding(t *testing.T) {
	if got := encodeDisplayValue(Operator, ga.Zero(2)) & displayClassMask; got != uint8(Operator) {
		t.Fatalf("class bits = %d, want %d", got, uint8(Operator))
	}
	u := newTestUniverse(t, []int{4, 4}, 2, Rates{})
	palette := u.Palette()
	for _, v := range u.Cells() {
		if int(v) >= len(palette) {
			t.Fatalf("display value %d outside palette of %d entries", v, len(palette))
		}
	}
}

func TestFromMapParsesDims(t *testing.T) {
	c := FromMap(map[string]string{
		"dims":             "8x8x4",
		"p":                "3",
		"observation_rate": "2",
	})
	if !slices.Equal(c.Dims, []int{8, 8, 4}) {
		t.Fatalf("dims = %v", c.Dims)
	}
	if c.P != 3 {
		t.Fatalf("p = %d", c.P)
	}
	if c.Rates.Observation != 1 {
		t.Fatalf("rates must clamp, got %v", c.Rates.Observation)
	}

	// Malformed dims fall back to the default.
	c = FromMap(map[string]string{"dims": "8x0"})
	if !slices.Equal(c.Dims, DefaultConfig().Dims) {
		t.Fatalf("bad dims must be ignored, got %v", c.Dims)
	}
}

func TestHigherRankUniverseTicks(t *testing.T) {
	u := newTestUniverse(t, []int{4, 3, 2}, 2, Rates{Observation: 1})
	u.Step()
	_, observed, _ := u.Counts()
	if observed != 24 {
		t.Fatalf("observed=%d, want all 24 cells", observed)
	}
	if len(u.Cells()) != 12 {
		t.Fatalf("display projects the 4x3 slice, got %d cells", len(u.Cells()))
	}
}
