package loan

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"support-desk/internal/apperrors"
)

type Status string

const (
	StatusPending          Status = "pending"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusManuallyApproved Status = "manually_approved"
)

var (
	ErrNotFound        = fmt.Errorf("loan %w", apperrors.ErrNotFound)
	ErrDuplicateRef    = fmt.Errorf("rupeek loan id %w", apperrors.ErrDuplicate)
	ErrUnknownCustomer = fmt.Errorf("loan customer %w", apperrors.ErrNotFound)
)

// Table: loans
type Loan struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Public identifier, used in URLs
	RupeekLoanID string `gorm:"column:rupeek_loan_id;size:32;not null;uniqueIndex:ux_loans_rupeek_loan_id" json:"rupeekLoanId"`
	CustomerID   string `gorm:"size:36;not null;index" json:"customerId"`
	LoanDate     string `gorm:"size:32;not null" json:"loanDate"`
	SchemeName   string `gorm:"not null" json:"schemeName"`

	TotalAmount       int64           `gorm:"not null" json:"totalAmount"`
	InterestRate      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interestRate"`
	PerGramRate       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"perGramRate"`
	PenalInterestRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"penalInterestRate"`
	RupeekGoldRate    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rupeekGoldRate"`
	TenureMonths      int             `gorm:"not null" json:"tenureMonths"`
	DisbursalAmount   int64           `gorm:"not null" json:"disbursalAmount"`
	LTV               decimal.Decimal `gorm:"column:ltv;type:decimal(5,2);not null" json:"ltv"`
	ProcessingFee     int64           `gorm:"not null" json:"processingFee"`
	DisbursalCharges  int64           `gorm:"not null" json:"disbursalCharges"`
	TotalGrossWeight  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalGrossWeight"`
	TotalNetWeight    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalNetWeight"`
	TotalAdjustment   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAdjustment"`
	JewelryItems      []string        `gorm:"serializer:json;type:text;not null" json:"jewelryItems"`

	Status           Status     `gorm:"size:32;not null;default:'pending'" json:"status"`
	RejectionReasons []string   `gorm:"serializer:json;type:text" json:"rejectionReasons"`
	ApprovalComment  *string    `gorm:"type:text" json:"approvalComment"`
	ApprovedBy       *string    `gorm:"size:128" json:"approvedBy"`
	ApprovedAt       *time.Time `json:"approvedAt"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (Loan) TableName() string { return "loans" }

// StatusPatch carries the fields written together with a status change.
// Nil fields are left as they are.
type StatusPatch struct {
	ApprovalComment  *string
	ApprovedBy       *string
	ApprovedAt       *time.Time
	RejectionReasons []string
}

// ApplyStatus merges p onto l and sets the new status. Rejection reasons only
// survive on rejected loans and approval metadata only on manually approved ones.
func (l *Loan) ApplyStatus(status Status, p StatusPatch) {
	if p.ApprovalComment != nil {
		l.ApprovalComment = p.ApprovalComment
	}
	if p.ApprovedBy != nil {
		l.ApprovedBy = p.ApprovedBy
	}
	if p.ApprovedAt != nil {
		l.ApprovedAt = p.ApprovedAt
	}
	if p.RejectionReasons != nil {
		l.RejectionReasons = p.RejectionReasons
	}
	l.Status = status

	if status != StatusRejected {
		l.RejectionReasons = nil
	}
	if status != StatusManuallyApproved {
		l.ApprovalComment, l.ApprovedBy, l.ApprovedAt = nil, nil, nil
	}
}

// Clone returns a deep copy; slices and pointer fields are not shared.
func (l Loan) Clone() Loan {
	out := l
	out.JewelryItems = slices.Clone(l.JewelryItems)
	out.RejectionReasons = slices.Clone(l.RejectionReasons)
	out.ApprovalComment = clonePtr(l.ApprovalComment)
	out.ApprovedBy = clonePtr(l.ApprovedBy)
	out.ApprovedAt = clonePtr(l.ApprovedAt)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
