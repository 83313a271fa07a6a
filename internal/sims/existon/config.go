package existon

import (
	"strconv"
	"strings"
)

// Rates holds the tunable transition probabilities of the universe.
// Observation, Decay and Fluctuation are per-cell per-tick probabilities;
// Entanglement is the fraction of cells paired at reset.
type Rates struct {
	Observation  float64
	Decay        float64
	Fluctuation  float64
	Entanglement float64
}

// Config controls the universe extents, algebra order and rates.
type Config struct {
	Dims []int
	P    int

	Seed int64

	Rates Rates
}

// DefaultConfig returns the standard configuration: a 120x80 world over
// Cl(2,0) with the original automaton's transition constants.
func DefaultConfig() Config {
	return Config{
		Dims: []int{120, 80},
		P:    2,
		Seed: 1337,
		Rates: Rates{
			Observation:  0.0005,
			Decay:        0.01,
			Fluctuation:  0.002,
			Entanglement: 0.05,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Dims are written as extents joined by 'x', e.g. "120x80" or
// "16x16x16".
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["dims"]; ok {
		if dims := parseDims(v); dims != nil {
			c.Dims = dims
		}
	}
	if v, ok := cfg["p"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.P = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["observation_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Rates.Observation = clampRate(parsed)
		}
	}
	if v, ok := cfg["decay_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Rates.Decay = clampRate(parsed)
		}
	}
	if v, ok := cfg["fluctuation_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Rates.Fluctuation = clampRate(parsed)
		}
	}
	if v, ok := cfg["entanglement_fraction"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Rates.Entanglement = clampRate(parsed)
		}
	}
	return c
}

func parseDims(v string) []int {
	parts := strings.Split(v, "x")
	dims := make([]int, 0, len(parts))
	for _, part := range parts {
		parsed, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || parsed <= 0 {
			return nil
		}
		dims = append(dims, parsed)
	}
	if len(dims) == 0 {
		return nil
	}
	return dims
}

func clampRate(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
