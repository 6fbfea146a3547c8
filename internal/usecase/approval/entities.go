package approval

// MinCommentLength is counted in characters, not bytes.
const MinCommentLength = 20

// ApprovalRequest is a validated manual-approval submission.
type ApprovalRequest struct {
	LoanID     string `json:"loanId" validate:"required"`
	Comment    string `json:"comment" validate:"min=20"`
	ApprovedBy string `json:"approvedBy" validate:"required"`
}
