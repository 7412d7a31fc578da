package workflow

import (
	"errors"
	"fmt"
)

// ErrFrozen is the panic value raised when a frozen StateMachine is modified.
var ErrFrozen = errors.New("workflow: state machine is frozen")

// ErrNoTransition is returned by Execute when neither an exact nor a catch-all
// transition is registered for the requested ID from the effective source state.
// The context object is left untouched.
type ErrNoTransition struct {
	From State
	ID   ID
}

func (e *ErrNoTransition) Error() string {
	if e.ID == CatchAll {
		return fmt.Sprintf("workflow: no catch-all transition from state %q", e.From)
	}

	return fmt.Sprintf("workflow: no transition %q from state %q", e.ID, e.From)
}

// ErrAttribute is returned by the reflection adapter when the target cannot
// carry a state attribute or the attribute cannot be written.
type ErrAttribute struct {
	// Name is the attribute name. It is empty when the target itself is unsupported.
	Name string
	Err  error
}

func (e *ErrAttribute) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("workflow: unsupported object: %v", e.Err)
	}

	return fmt.Sprintf("workflow: attribute %q: %v", e.Name, e.Err)
}

// Unwrap provides compatibility with errors.Is and errors.As.
func (e *ErrAttribute) Unwrap() error { return e.Err }

var (
	errNotFound    = errors.New("no such attribute")
	errNotSettable = errors.New("attribute is not settable")
	errType        = errors.New("attribute type cannot hold a state")
)
