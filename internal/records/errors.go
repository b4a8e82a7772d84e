package records

import (
	"errors"
	"fmt"
)

// ErrNotFound marks operations against an id the table does not hold.
// Backends wrap it in an *Error; match with errors.Is.
var ErrNotFound = errors.New("transaction not found")

// Error wraps any failure from a backend with the operation that produced
// it and a human-readable message.
type Error struct {
	Op      string // "get_all", "create", "update", "delete"
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds a backend error. cause may be nil.
func NewError(op, message string, cause error) *Error {
	return &Error{Op: op, Message: message, Cause: cause}
}

// NotFound builds a backend error for a missing id.
func NotFound(op, id string) *Error {
	return &Error{Op: op, Message: fmt.Sprintf("no transaction with id %q", id), Cause: ErrNotFound}
}

// IsNotFound reports whether err stems from a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
