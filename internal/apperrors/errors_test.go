package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_IsErrValidation(t *testing.T) {
	var err error = &ValidationError{Fields: []FieldError{{Field: "comment", Message: "too short"}}}

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("approve: %w", err), ErrValidation))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "comment", Message: "too short"},
		{Field: "approvedBy", Message: "is required"},
	}}
	assert.Equal(t, "validation failed: comment: too short; approvedBy: is required", err.Error())
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}

func TestValidationError_HasField(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "comment", Message: "x"}}}
	assert.True(t, err.HasField("comment"))
	assert.False(t, err.HasField("loanId"))
}
