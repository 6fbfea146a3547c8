package approval

import (
	"maps"
	"slices"

	"support-desk/internal/apperrors"
	"support-desk/internal/validation"
)

var messages = validation.Messages{
	"loanId.required":     "Loan ID is required",
	"comment.min":         "Comment must be at least 20 characters",
	"approvedBy.required": "Approver ID is required",
}

var fieldOrder = []string{"loanId", "comment", "approvedBy"}

// Validator turns a loosely typed request body into an ApprovalRequest.
type Validator struct{ v *validation.Validator }

func NewValidator() *Validator { return &Validator{v: validation.New()} }

// Validate checks body with rupeekLoanID taking precedence over any loanId
// in it. Every rule is evaluated; failures come back together as
// *apperrors.ValidationError.
func (v *Validator) Validate(rupeekLoanID string, body map[string]any) (*ApprovalRequest, error) {
	merged := make(map[string]any, len(body)+1)
	maps.Copy(merged, body)
	merged["loanId"] = rupeekLoanID

	var fields []apperrors.FieldError
	wrongType := make(map[string]bool)
	str := func(name string) string {
		raw, ok := merged[name]
		if !ok || raw == nil {
			return ""
		}
		s, ok := raw.(string)
		if !ok {
			wrongType[name] = true
			fields = append(fields, apperrors.FieldError{Field: name, Message: "Expected string"})
		}
		return s
	}

	req := &ApprovalRequest{
		LoanID:     str("loanId"),
		Comment:    str("comment"),
		ApprovedBy: str("approvedBy"),
	}

	if err := v.v.Validate(req); err != nil {
		for _, fe := range messages.FieldErrors(err) {
			if !wrongType[fe.Field] {
				fields = append(fields, fe)
			}
		}
	}
	if len(fields) > 0 {
		slices.SortStableFunc(fields, func(a, b apperrors.FieldError) int {
			return slices.Index(fieldOrder, a.Field) - slices.Index(fieldOrder, b.Field)
		})
		return nil, &apperrors.ValidationError{Fields: fields}
	}
	return req, nil
}
