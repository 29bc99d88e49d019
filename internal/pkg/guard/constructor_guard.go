// Package guard marks values that were built by their constructor so that
// zero values leaking through struct literals can be rejected.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller does not
// supply a more specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into commands, queries and value objects.
// Its zero value reports "not constructed".
//
// Example:
//
//	type SubmitQuizAnswersCommand struct {
//	    text  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c SubmitQuizAnswersCommand) Validate() error {
//	    return c.guard.Validate(ErrSubmitQuizAnswersCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owning value was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
