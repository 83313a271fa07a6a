// Package existon implements a cellular automaton whose cells carry
// multivector states in a tristate Clifford algebra Cl(p,0). Each tick a
// cell absorbs the sum of its neighbors' states through the geometric
// product, may collapse from Potential to Observed (or decay back), may
// refluctuate into a fresh random state, and entangled cell pairs
// collapse together regardless of grid distance.
package existon

import (
	"fmt"

	"existon-ca/internal/core"
	pcore "existon-ca/pkg/core"
	"existon-ca/pkg/ga"
	"existon-ca/pkg/trit"
)

// RateKind selects a tunable probability for SetRate.
type RateKind int

const (
	// RateObservation is the Potential -> Observed collapse probability.
	RateObservation RateKind = iota
	// RateDecay is the Observed -> Potential relaxation probability.
	RateDecay
	// RateFluctuation is the random state replacement probability.
	RateFluctuation
)

// entanglementCycle is the fraction sequence stepped by CycleEntanglement.
var entanglementCycle = []float64{0.01, 0.05, 0.10, 0.20}

// Universe owns an N-dimensional lattice of existons and advances it one
// tick at a time. Ticks are strictly two-phase: every transition decision
// reads the previous tick's committed cells, results are computed into a
// shadow buffer, and the buffers swap before the entanglement pass runs.
type Universe struct {
	cfg     Config
	lattice *core.Lattice
	p       int

	cur []Existon
	nxt []Existon

	// pairs maps a cell index to its entangled partner, symmetric and
	// one-to-one. Built at reset, immutable during ticking.
	pairs map[int]int

	newlyObserved []int
	neighborBuf   []int

	display []uint8
	rng     *pcore.RNG
	ticks   uint64
}

// New constructs a universe with the given extents and algebra order
// using default rates.
func New(dims []int, p int) (*Universe, error) {
	cfg := DefaultConfig()
	cfg.Dims = dims
	cfg.P = p
	return NewWithConfig(cfg)
}

// NewWithConfig validates the configuration and builds a freshly seeded
// universe. It fails with core.ErrInvalidDimensions when any extent is
// zero or the algebra order is not positive.
func NewWithConfig(cfg Config) (*Universe, error) {
	if cfg.P < 1 {
		return nil, fmt.Errorf("%w: algebra order %d", core.ErrInvalidDimensions, cfg.P)
	}
	lattice, err := core.NewLattice(cfg.Dims)
	if err != nil {
		return nil, err
	}
	u := &Universe{
		cfg:     cfg,
		lattice: lattice,
		p:       cfg.P,
		cur:     make([]Existon, lattice.Len()),
		nxt:     make([]Existon, lattice.Len()),
	}
	size := u.Size()
	u.display = make([]uint8, size.W*size.H)
	u.Reset(cfg.Seed)
	return u, nil
}

// Name returns the simulation identifier.
func (u *Universe) Name() string { return "existon" }

// Size reports the 2D render projection: the first two extents, or Wx1
// for a one-dimensional world.
func (u *Universe) Size() core.Size {
	dims := u.lattice.Dims()
	if len(dims) == 1 {
		return core.Size{W: dims[0], H: 1}
	}
	return core.Size{W: dims[0], H: dims[1]}
}

// Cells exposes the palette-indexed display buffer.
func (u *Universe) Cells() []uint8 { return u.display }

// Dims returns the lattice extents.
func (u *Universe) Dims() []int { return u.lattice.Dims() }

// P returns the algebra order shared by every cell.
func (u *Universe) P() int { return u.p }

// Ticks returns the number of completed ticks since the last reset.
func (u *Universe) Ticks() uint64 { return u.ticks }

// Rates returns the current transition probabilities.
func (u *Universe) Rates() Rates { return u.cfg.Rates }

// Reset rebuilds every cell as a fresh random Potential existon and
// rebuilds the entanglement table. A zero seed falls back to the config
// seed so the default world is reproducible.
func (u *Universe) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = u.cfg.Seed
	}
	u.rng = pcore.NewRNG(effective)
	for i := range u.cur {
		u.cur[i] = NewExiston(uint64(i), ga.Random(u.p, u.rng), Potential)
		u.nxt[i] = u.cur[i]
	}
	u.rebuildPairs()
	u.ticks = 0
	u.rebuildDisplay()
}

// rebuildPairs draws a fresh one-to-one pairing over the configured
// fraction of cells. An odd leftover cell stays unpaired.
func (u *Universe) rebuildPairs() {
	u.pairs = make(map[int]int)
	n := u.lattice.Len()
	paired := int(u.cfg.Rates.Entanglement * float64(n))
	if paired > n {
		paired = n
	}
	paired -= paired % 2
	if paired <= 0 {
		return
	}
	perm := u.rng.Perm(n)
	for i := 0; i+1 < paired; i += 2 {
		a, b := perm[i], perm[i+1]
		u.pairs[a] = b
		u.pairs[b] = a
	}
}

// Step advances the whole universe by one tick.
//
// Phase one computes every cell's next state from the committed grid:
// Operator cells are frozen (but still feed neighbors), every other cell
// multiplies its state by the wrapping sum of its 2N axis neighbors, then
// rolls observation or decay based on its start-of-tick classification
// and, for Potential cells, an independent fluctuation reroll. Phase two
// commits by swapping buffers. Phase three forces the entangled partner
// of every newly observed cell to Observed.
func (u *Universe) Step() {
	rates := u.cfg.Rates
	u.newlyObserved = u.newlyObserved[:0]

	for idx := range u.cur {
		cell := u.cur[idx]
		if cell.Class() == Operator {
			u.nxt[idx] = cell
			continue
		}

		state := u.applyLocalOperator(idx, cell.State())
		class := cell.Class()

		switch class {
		case Potential:
			if u.rng.Float64() < rates.Observation {
				class = Observed
				u.newlyObserved = append(u.newlyObserved, idx)
			}
			if u.rng.Float64() < rates.Fluctuation {
				state = ga.Random(u.p, u.rng)
			}
		case Observed:
			if u.rng.Float64() < rates.Decay {
				class = Potential
			}
		}

		next := cell
		next.Set(class, state)
		u.nxt[idx] = next
	}

	u.cur, u.nxt = u.nxt, u.cur

	for _, idx := range u.newlyObserved {
		partner, ok := u.pairs[idx]
		if !ok {
			continue
		}
		cell := &u.cur[partner]
		if cell.Class() != Potential {
			continue
		}
		cell.Set(Observed, cell.State())
	}

	u.ticks++
	u.rebuildDisplay()
}

// applyLocalOperator sums the neighbor states into a local operator and
// returns operator * state. The lattice fixes the algebra order for every
// cell, so an order mismatch here means the grid is corrupted and the
// tick fails fast.
func (u *Universe) applyLocalOperator(idx int, state ga.Multivector) ga.Multivector {
	op := ga.Zero(u.p)
	u.neighborBuf = u.lattice.AppendNeighbors(u.neighborBuf[:0], idx)
	for _, n := range u.neighborBuf {
		sum, err := op.Sum(u.cur[n].State())
		if err != nil {
			panic(fmt.Sprintf("existon: corrupted grid: %v", err))
		}
		op = sum
	}
	next, err := op.Mul(state)
	if err != nil {
		panic(fmt.Sprintf("existon: corrupted grid: %v", err))
	}
	return next
}

// SetRate updates one transition probability, clamped to [0, 1]. Rates
// take effect from the next tick; the host loop calls this between ticks.
func (u *Universe) SetRate(kind RateKind, value float64) {
	value = clampRate(value)
	switch kind {
	case RateObservation:
		u.cfg.Rates.Observation = value
	case RateDecay:
		u.cfg.Rates.Decay = value
	case RateFluctuation:
		u.cfg.Rates.Fluctuation = value
	}
}

// CycleEntanglement advances the entanglement fraction through the fixed
// cycle 1% -> 5% -> 10% -> 20% and rebuilds the pairing table.
func (u *Universe) CycleEntanglement() {
	current := u.cfg.Rates.Entanglement
	next := entanglementCycle[0]
	for i, frac := range entanglementCycle {
		if current == frac {
			next = entanglementCycle[(i+1)%len(entanglementCycle)]
			break
		}
	}
	u.cfg.Rates.Entanglement = next
	u.rebuildPairs()
}

// PlaceOperator fixes the cell at coord as an Operator with the given
// state. It fails with core.ErrOutOfBounds for an invalid coordinate and
// ga.ErrDimensionMismatch for a state of the wrong algebra order.
func (u *Universe) PlaceOperator(coord []int, state ga.Multivector) error {
	idx, err := u.lattice.Index(coord)
	if err != nil {
		return err
	}
	if state.P() != u.p {
		return fmt.Errorf("%w: operator order %d, universe order %d", ga.ErrDimensionMismatch, state.P(), u.p)
	}
	u.cur[idx].Set(Operator, state)
	u.rebuildDisplay()
	return nil
}

// EraseOperator returns the cell at coord to a random Potential state. It
// fails with core.ErrOutOfBounds for an invalid coordinate.
func (u *Universe) EraseOperator(coord []int) error {
	idx, err := u.lattice.Index(coord)
	if err != nil {
		return err
	}
	u.cur[idx].Set(Potential, ga.Random(u.p, u.rng))
	u.rebuildDisplay()
	return nil
}

// CellAt returns the classification and coefficient vector of the cell at
// coord, for display mapping. The coefficients are a copy.
func (u *Universe) CellAt(coord []int) (Classification, []trit.Trit, error) {
	idx, err := u.lattice.Index(coord)
	if err != nil {
		return 0, nil, err
	}
	cell := u.cur[idx]
	return cell.Class(), cell.State().Coefficients(), nil
}

// Counts returns the population per classification.
func (u *Universe) Counts() (potential, observed, operator int) {
	for i := range u.cur {
		switch u.cur[i].Class() {
		case Potential:
			potential++
		case Observed:
			observed++
		case Operator:
			operator++
		}
	}
	return potential, observed, operator
}

// EntangledPairs returns the pair endpoints that fall inside the visible
// 2D slice, as linear display indices, one entry per pair.
func (u *Universe) EntangledPairs() [][2]int {
	visible := len(u.display)
	var out [][2]int
	for a, b := range u.pairs {
		if a >= b {
			continue
		}
		if a < visible && b < visible {
			out = append(out, [2]int{a, b})
		}
	}
	return out
}

// PlaceOperatorAt paints an Operator with a pure scalar +1 state at the
// visible-slice coordinates (x, y).
func (u *Universe) PlaceOperatorAt(x, y int) error {
	return u.PlaceOperator(u.sliceCoord(x, y), ga.Scalar(u.p, trit.Pos))
}

// EraseOperatorAt erases the cell at the visible-slice coordinates (x, y).
func (u *Universe) EraseOperatorAt(x, y int) error {
	return u.EraseOperator(u.sliceCoord(x, y))
}

// sliceCoord lifts 2D view coordinates into a full-rank coordinate at
// zero along every higher axis.
func (u *Universe) sliceCoord(x, y int) []int {
	coord := make([]int, u.lattice.Rank())
	coord[0] = x
	if len(coord) > 1 {
		coord[1] = y
	}
	return coord
}

func init() {
	core.Register("existon", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		u, err := NewWithConfig(c)
		if err != nil {
			u, _ = NewWithConfig(DefaultConfig())
		}
		return u
	})
}
