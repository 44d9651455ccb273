package version

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is matched by every InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid version format")

// InvalidFormatError reports a version string that is not YYYY-MM.
type InvalidFormatError struct {
	Value   string
	Example string
}

// Error implements the error interface
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid version format %q: expected YYYY-MM, e.g. %q", e.Value, e.Example)
}

// Is reports whether target is ErrInvalidFormat.
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
