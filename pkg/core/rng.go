package core

import (
	"math/rand/v2"

	"existon-ca/pkg/trit"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Trit returns a uniformly random tristate value.
func (r *RNG) Trit() trit.Trit {
	return trit.New(r.r.IntN(3) - 1)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Perm returns a random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	return r.r.Perm(n)
}

// FillTrits fills the buffer with uniformly random tristate values.
func (r *RNG) FillTrits(buf []trit.Trit) {
	for i := range buf {
		buf[i] = r.Trit()
	}
}
