// Package guard implements the constructor-guard pattern used by the domain
// model. Embedding a ConstructorGuard in a value object or entity makes it
// possible to distinguish instances built through their constructor from zero
// values, so that zero-value structs fail validation instead of carrying
// half-initialized state through the system.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not
// built through its constructor and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been built through its designated
// constructor. The zero value is unguarded and fails Validate.
//
// Example:
//
//	type Points struct {
//	    amount decimal.Decimal
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewPoints(amount decimal.Decimal) (Points, error) {
//	    return Points{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Points) Validate() error {
//	    return p.guard.Validate(ErrPointsIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// properly constructed. Call it from the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
