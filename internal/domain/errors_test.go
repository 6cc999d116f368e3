package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("shares", "must be a number, got %q", "ten")

	assert.Equal(t, `shares: must be a number, got "ten"`, err.Error())
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))

	wrapped := fmt.Errorf("add position: %w", err)
	assert.True(t, IsValidation(wrapped))
}

func TestValidationError_NoField(t *testing.T) {
	err := &ValidationError{Message: "request body must be a JSON object"}
	assert.Equal(t, "request body must be a JSON object", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Ticker: "NVDA"}

	assert.Equal(t, "Position not found", err.Error())
	assert.True(t, IsNotFound(fmt.Errorf("update: %w", err)))
	assert.False(t, IsValidation(err))
	assert.False(t, IsNotFound(errors.New("other")))
}
