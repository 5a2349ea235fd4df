package alchemy

import "fmt"

// Domain errors for laboratory construction and production

// ErrInvalidInput indicates a malformed construction or request argument
// (wrong shape, bad name, bad quantity container).
type ErrInvalidInput struct {
	Field  string
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrInvalidQuantity indicates a quantity that is negative or not finite
type ErrInvalidQuantity struct {
	Field string
	Value float64
}

func (e *ErrInvalidQuantity) Error() string {
	return fmt.Sprintf("invalid quantity for %s: %v (must be a finite number >= 0)", e.Field, e.Value)
}

// ErrUnknownSubstance indicates a reference to a substance that was never declared
type ErrUnknownSubstance struct {
	Name string
}

func (e *ErrUnknownSubstance) Error() string {
	return fmt.Sprintf("unknown substance: %s", e.Name)
}

// ErrDuplicateName indicates a substance or product name collision at construction
type ErrDuplicateName struct {
	Name string
}

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("duplicate substance name: %s", e.Name)
}

// ErrSingularSystem indicates a cyclic component whose production matrix is not
// invertible (degenerate regeneration ratios, e.g. a perfect 1:1 loop).
type ErrSingularSystem struct {
	Members []string
}

func (e *ErrSingularSystem) Error() string {
	return fmt.Sprintf("cyclic recipe group %v has a singular production matrix", e.Members)
}

// ErrCircularDependency indicates the acyclic resolution path re-entered a
// product already being resolved. The component analysis routes cycles through
// the steady-state path, so tripping this guard means the analysis and the
// recipe table disagree.
type ErrCircularDependency struct {
	Product string
	Chain   []string
}

func (e *ErrCircularDependency) Error() string {
	return fmt.Sprintf("circular dependency detected for %s: %v", e.Product, e.Chain)
}
