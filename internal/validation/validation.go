package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"support-desk/internal/apperrors"
)

// Validator wraps go-playground/validator and reports fields by their json name.
type Validator struct{ v *validator.Validate }

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error { return cv.v.Struct(i) }

// Messages overrides default texts, keyed by "field.tag" (json field name).
type Messages map[string]string

// FieldErrors maps validator.ValidationErrors to readable field errors.
func (m Messages) FieldErrors(err error) []apperrors.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []apperrors.FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]apperrors.FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		if msg, ok := m[field+"."+e.Tag()]; ok {
			out = append(out, apperrors.FieldError{Field: field, Message: msg})
			continue
		}
		out = append(out, apperrors.FieldError{Field: field, Message: defaultMessage(e)})
	}
	return out
}


func defaultMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return "must be at least " + e.Param() + " characters"
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "must be at most " + e.Param() + " characters"
		}
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "oneof":
		return "must be one of [" + e.Param() + "]"
	default:
		return e.Tag() + " validation failed"
	}
}
