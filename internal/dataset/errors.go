package dataset

import (
	"errors"
	"fmt"
)

// UnsupportedFormatError indicates that the raw input could not be parsed
// into a table at all. This is the only fatal error class of the engine;
// every per-row or per-field anomaly degrades to missing data instead.
type UnsupportedFormatError struct {
	message string
}

// NewUnsupportedFormatError creates a new unsupported format error
func NewUnsupportedFormatError(format string, args ...interface{}) *UnsupportedFormatError {
	return &UnsupportedFormatError{
		message: fmt.Sprintf(format, args...),
	}
}

// Error returns the error message
func (e *UnsupportedFormatError) Error() string {
	return e.message
}

// IsUnsupportedFormat checks if an error is an unsupported format error
func IsUnsupportedFormat(err error) bool {
	var ufe *UnsupportedFormatError
	return errors.As(err, &ufe)
}
