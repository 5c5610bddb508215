package store

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed caller-supplied argument: a bad key,
// an unserializable value, or an invalid configuration. It is raised
// before any write takes effect.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "store: " + e.Reason
}

// EnvironmentError reports that the required backend capability is
// missing. It is surfaced at construction time and is not recoverable.
type EnvironmentError struct {
	Reason string
}

func (e *EnvironmentError) Error() string {
	return "store: " + e.Reason
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsEnvironmentError reports whether err is (or wraps) an EnvironmentError.
func IsEnvironmentError(err error) bool {
	var ee *EnvironmentError
	return errors.As(err, &ee)
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func environmentErrorf(format string, args ...any) *EnvironmentError {
	return &EnvironmentError{Reason: fmt.Sprintf(format, args...)}
}
