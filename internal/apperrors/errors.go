package apperrors

import (
	"errors"
	"strings"
)

// ErrNotFound indicates that a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation failed")

// ErrDuplicate indicates that a record with the same natural key already exists.
var ErrDuplicate = errors.New("already exists")

// ErrInternal marks failures that must surface as an opaque 5xx.
var ErrInternal = errors.New("internal error")

// FieldError describes one failed rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// HasField reports whether any failure was recorded for field.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
