// Package ga implements a generalized geometric algebra Cl(p,0) over the
// tristate scalar domain. A multivector holds one coefficient per basis
// blade; blades are indexed by bitmask, so for p=3 the index 0b101 is the
// blade e0*e2. The geometric product composes blades by XOR and resolves
// the sign from basis-vector transposition parity.
package ga

import (
	"errors"
	"fmt"
	"math/bits"

	"existon-ca/pkg/core"
	"existon-ca/pkg/trit"
)

// ErrDimensionMismatch reports an operation between multivectors of
// differing algebra order, or a coefficient sequence of the wrong length.
var ErrDimensionMismatch = errors.New("ga: dimension mismatch")

// Multivector is a value of the Cl(p,0) algebra: 2^p tristate
// coefficients, one per basis blade. The order p is fixed at construction.
type Multivector struct {
	p      int
	coeffs []trit.Trit
}

// Blades returns the number of basis blades for an algebra of order p.
func Blades(p int) int { return 1 << p }

// Zero returns the all-zero multivector of order p.
func Zero(p int) Multivector {
	return Multivector{p: p, coeffs: make([]trit.Trit, Blades(p))}
}

// Scalar returns the multivector of order p whose scalar (grade-0)
// coefficient is t and whose other coefficients are zero.
func Scalar(p int, t trit.Trit) Multivector {
	m := Zero(p)
	m.coeffs[0] = t
	return m
}

// Random returns a multivector of order p with every coefficient drawn
// uniformly from {-1, 0, 1}.
func Random(p int, rng *core.RNG) Multivector {
	m := Zero(p)
	rng.FillTrits(m.coeffs)
	return m
}

// New constructs a multivector of order p from the given coefficient
// sequence. The sequence is copied; its length must be exactly 2^p.
func New(p int, coeffs []trit.Trit) (Multivector, error) {
	if len(coeffs) != Blades(p) {
		return Multivector{}, fmt.Errorf("%w: order %d needs %d coefficients, got %d",
			ErrDimensionMismatch, p, Blades(p), len(coeffs))
	}
	m := Zero(p)
	copy(m.coeffs, coeffs)
	return m, nil
}

// P returns the algebra order.
func (m Multivector) P() int { return m.p }

// Coefficient returns the coefficient of the basis blade with the given
// bitmask index.
func (m Multivector) Coefficient(blade int) trit.Trit { return m.coeffs[blade] }

// Coefficients returns a copy of the coefficient sequence.
func (m Multivector) Coefficients() []trit.Trit {
	return append([]trit.Trit(nil), m.coeffs...)
}

// Grade returns the grade of a basis blade: the number of basis vectors
// it is composed of.
func Grade(blade int) int { return bits.OnesCount(uint(blade)) }

// Equal reports whether two multivectors have the same order and
// coefficients.
func (m Multivector) Equal(o Multivector) bool {
	if m.p != o.p {
		return false
	}
	for i, c := range m.coeffs {
		if c != o.coeffs[i] {
			return false
		}
	}
	return true
}

// Sum combines two same-order multivectors coefficient by coefficient
// using the wrapping tristate addition. This is the neighbor aggregation
// rule: summed states form the local operator.
func (m Multivector) Sum(o Multivector) (Multivector, error) {
	if m.p != o.p {
		return Multivector{}, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, m.p, o.p)
	}
	out := Zero(m.p)
	for i := range m.coeffs {
		out.coeffs[i] = m.coeffs[i].Add(o.coeffs[i])
	}
	return out, nil
}

// Mul computes the geometric product m * o. For every ordered blade pair
// (i, j) the result blade is i XOR j (shared basis vectors square to +1
// and cancel), the sign is the transposition parity of sorting the
// concatenated basis vectors into canonical order, and the signed
// coefficient product accumulates into the output blade with wrapping
// addition. Iteration over blade pairs is row-major, so the product is
// reproducible.
func (m Multivector) Mul(o Multivector) (Multivector, error) {
	if m.p != o.p {
		return Multivector{}, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, m.p, o.p)
	}
	out := Zero(m.p)
	n := Blades(m.p)
	for i := 0; i < n; i++ {
		a := m.coeffs[i]
		if a == trit.Zero {
			continue
		}
		for j := 0; j < n; j++ {
			b := o.coeffs[j]
			if b == trit.Zero {
				continue
			}
			blade := i ^ j
			contrib := a.Mul(b)
			if reorderSign(i, j) < 0 {
				contrib = contrib.Mul(trit.Neg)
			}
			out.coeffs[blade] = out.coeffs[blade].Add(contrib)
		}
	}
	return out, nil
}

// reorderSign returns +1 or -1: the parity of basis-vector swaps needed
// to sort the concatenation of blades i and j into canonical order. Each
// basis vector of j must move past every higher-indexed vector of i, and
// each crossing flips the sign.
func reorderSign(i, j int) int {
	flips := 0
	for b := j; b != 0; b &= b - 1 {
		k := bits.TrailingZeros(uint(b))
		flips += bits.OnesCount(uint(i) >> (k + 1))
	}
	if flips%2 == 0 {
		return 1
	}
	return -1
}
