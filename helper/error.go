package helper

import "fmt"

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

// NewError creates an error annotated with the failing operation
func NewError(op string, err error) error {
	return &Error{Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error at %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
