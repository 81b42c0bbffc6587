// Package guard holds ConstructorGuard, a marker embedded in value objects, commands and
// queries that must only be created through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard when no specific
// error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard, so a zero value reveals that the
// enclosing struct bypassed its constructor.
//
//	type BookCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c BookCommand) Validate() error {
//	    return c.guard.Validate(ErrBookCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	constructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a constructed guard and err (or ErrDefaultConstructorGuard when
// err is nil) for a zero value.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
