package validation

import (
	"errors"
	"strings"
	"testing"

	"support-desk/internal/apperrors"
)

func containsFieldMsg(list []apperrors.FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestJSONFieldNames(t *testing.T) {
	type P struct {
		ApprovedBy string `json:"approvedBy,omitempty" validate:"required"`
		NoTag      string `validate:"required"`
	}
	err := New().Validate(P{})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fe := Messages(nil).FieldErrors(err)
	if !containsFieldMsg(fe, "approvedBy", "is required") {
		t.Fatalf("want json name approvedBy, got %+v", fe)
	}
	if !containsFieldMsg(fe, "NoTag", "is required") {
		t.Fatalf("want Go name for untagged field, got %+v", fe)
	}
}

func TestMinCountsCharactersNotBytes(t *testing.T) {
	type P struct {
		Comment string `json:"comment" validate:"min=20"`
	}
	cv := New()

	// 20 runes, more than 20 bytes
	if err := cv.Validate(P{Comment: strings.Repeat("é", 20)}); err != nil {
		t.Fatalf("20 runes should pass, got %v", err)
	}
	err := cv.Validate(P{Comment: strings.Repeat("é", 19)})
	if err == nil {
		t.Fatal("19 runes should fail")
	}
	if !containsFieldMsg(Messages(nil).FieldErrors(err), "comment", "at least 20 characters") {
		t.Fatalf("unexpected message: %+v", Messages(nil).FieldErrors(err))
	}
}

func TestMessagesOverride(t *testing.T) {
	type P struct {
		LoanID  string `json:"loanId" validate:"required"`
		Comment string `json:"comment" validate:"min=20"`
	}
	msgs := Messages{"loanId.required": "Loan ID is required"}

	err := New().Validate(P{Comment: "short"})
	fe := msgs.FieldErrors(err)
	if len(fe) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", fe)
	}
	if fe[0] != (apperrors.FieldError{Field: "loanId", Message: "Loan ID is required"}) {
		t.Fatalf("override not applied: %+v", fe[0])
	}
	if !containsFieldMsg(fe, "comment", "at least 20 characters") {
		t.Fatalf("default message missing: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name string `validate:"required"`
		Min  int    `validate:"gte=10"`
		Max  int    `validate:"lte=5"`
		Kind string `validate:"oneof=a b"`
	}
	err := New().Validate(P{Name: "", Min: 9, Max: 6, Kind: "c"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := Messages(nil).FieldErrors(err)
	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Min", "greater than or equal to 10") {
		t.Fatalf("missing gte message for Min: %+v", fe)
	}
	if !containsFieldMsg(fe, "Max", "less than or equal to 5") {
		t.Fatalf("missing lte message for Max: %+v", fe)
	}
	if !containsFieldMsg(fe, "Kind", "one of [a b]") {
		t.Fatalf("missing oneof message for Kind: %+v", fe)
	}
}

func TestFieldErrors_NonValidation(t *testing.T) {
	fe := Messages(nil).FieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
