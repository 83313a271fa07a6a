package existon

import "existon-ca/pkg/ga"

// Classification is the reality status of an existon.
type Classification uint8

const (
	// Potential marks an unobserved cell in superposition.
	Potential Classification = iota
	// Observed marks a cell whose state has collapsed.
	Observed
	// Operator marks a user-fixed cell excluded from all dynamics.
	Operator
)

// String returns a short label for display and logging.
func (c Classification) String() string {
	switch c {
	case Potential:
		return "potential"
	case Observed:
		return "observed"
	case Operator:
		return "operator"
	default:
		return "unknown"
	}
}

// Existon is the atomic simulation unit: an identity, an algebraic state
// and a classification. The classification and state are only ever
// rewritten together through Set, the tick engine's single write path.
type Existon struct {
	id    uint64
	class Classification
	state ga.Multivector
}

// NewExiston binds an id to an initial state and classification.
func NewExiston(id uint64, state ga.Multivector, class Classification) Existon {
	return Existon{id: id, class: class, state: state}
}

// ID returns the cell identity.
func (e Existon) ID() uint64 { return e.id }

// Class returns the current classification.
func (e Existon) Class() Classification { return e.class }

// State returns the current multivector state.
func (e Existon) State() ga.Multivector { return e.state }

// Set replaces classification and state as one update.
func (e *Existon) Set(class Classification, state ga.Multivector) {
	e.class = class
	e.state = state
}
