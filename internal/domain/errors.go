package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing position input.
// The message is surfaced to API clients as-is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports that no stored position matches a ticker
type NotFoundError struct {
	Ticker string
}

func (e *NotFoundError) Error() string {
	return "Position not found"
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err wraps a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
