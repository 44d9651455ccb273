package transport

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates the transport was built with missing settings
	ErrInvalidConfig = errors.New("invalid transport configuration")
)

// Error reports an exchange that failed before a response was read.
type Error struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
