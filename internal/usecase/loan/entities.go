package loan

import (
	"time"

	"support-desk/internal/domain/branch"
	"support-desk/internal/domain/customer"
	domain "support-desk/internal/domain/loan"
)

// LoanDetails is what the lookup screen renders.
type LoanDetails struct {
	Loan     domain.Loan       `json:"loan"`
	Customer customer.Customer `json:"customer"`
	Branch   branch.Branch     `json:"branch"`
}

// LoanSummary is one row of the sanctions listing.
type LoanSummary struct {
	RupeekLoanID     string        `json:"rupeekLoanId"`
	CustomerName     string        `json:"customerName"`
	TotalAmount      int64         `json:"totalAmount"`
	LoanDate         string        `json:"loanDate"`
	Status           domain.Status `json:"status"`
	ApprovedBy       *string       `json:"approvedBy"`
	ApprovedAt       *time.Time    `json:"approvedAt"`
	RejectionReasons []string      `json:"rejectionReasons"`
}
