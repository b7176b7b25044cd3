// Package guard holds the constructor guard embedded by value objects,
// aggregates, commands and queries to reject zero-value instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether its owner was built by a constructor.
// The zero value reports "not constructed".
//
//	type Batch struct {
//	    size  int
//	    guard guard.ConstructorGuard
//	}
//
//	func NewBatch(size int) Batch {
//	    return Batch{size: size, guard: guard.NewConstructorGuard()}
//	}
//
//	func (b Batch) Validate() error {
//	    return b.guard.Validate(ErrBatchIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard, otherwise validationError
// (or ErrDefaultConstructorGuard when validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
