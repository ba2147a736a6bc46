package models

import "fmt"

// ValidationError reports a request field that failed explicit validation.
type ValidationError struct {
	Field  string
	Reason string
	Cause  error
}

func NewValidationError(field, reason string, cause error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Cause: cause}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
