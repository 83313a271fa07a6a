// Package trit implements the tristate scalar domain {-1, 0, 1} that all
// existon algebra is built on. Addition wraps at the extremes instead of
// saturating, so the domain behaves as a closed three-value ring.
package trit

// Trit is a tristate scalar constrained to {-1, 0, 1}.
type Trit int8

// Canonical values of the domain.
const (
	Neg  Trit = -1
	Zero Trit = 0
	Pos  Trit = 1
)

// New normalizes an arbitrary integer to its sign.
func New(v int) Trit {
	switch {
	case v > 0:
		return Pos
	case v < 0:
		return Neg
	default:
		return Zero
	}
}

// Add combines two trits with wraparound: 1+1 = -1 and -1+-1 = 1, the
// extremes fold back into the domain rather than overflowing. Adding zero
// is the identity and opposite extremes cancel.
func (t Trit) Add(o Trit) Trit {
	sum := int8(t) + int8(o)
	switch {
	case sum > 1:
		return Neg
	case sum < -1:
		return Pos
	default:
		return Trit(sum)
	}
}

// Mul multiplies two trits with ordinary signed-integer rules: zero
// annihilates, -1 negates, +1 is the identity.
func (t Trit) Mul(o Trit) Trit {
	return Trit(int8(t) * int8(o))
}
