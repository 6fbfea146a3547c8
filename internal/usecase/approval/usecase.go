package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"support-desk/internal/apperrors"
	domainLoan "support-desk/internal/domain/loan"
	"support-desk/internal/metrics"
)

// ErrUpdateFailed means the loan vanished between lookup and update.
var ErrUpdateFailed = fmt.Errorf("failed to update loan status: %w", apperrors.ErrInternal)

type Usecase struct {
	loanRepo  domainLoan.Repository
	validator *Validator
	metrics   *metrics.Metrics
	now       func() time.Time
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithMetrics(m *metrics.Metrics) Option { return func(u *Usecase) { u.metrics = m } }

func NewUsecase(loans domainLoan.Repository, opts ...Option) *Usecase {
	u := &Usecase{
		loanRepo:  loans,
		validator: NewValidator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Submit validates a raw request body and approves the loan it names.
func (u *Usecase) Submit(ctx context.Context, rupeekLoanID string, body map[string]any) (*domainLoan.Loan, error) {
	req, err := u.validator.Validate(rupeekLoanID, body)
	if err != nil {
		u.metrics.ObserveApproval(metrics.OutcomeInvalid)
		return nil, err
	}
	return u.Approve(ctx, *req)
}

// Approve moves the loan to manually_approved and stamps comment, approver
// and time. Any current status may be overridden; a second approval
// replaces the first.
func (u *Usecase) Approve(ctx context.Context, req ApprovalRequest) (*domainLoan.Loan, error) {
	l, err := u.loanRepo.GetByRupeekLoanID(ctx, req.LoanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			u.metrics.ObserveApproval(metrics.OutcomeNotFound)
			return nil, domainLoan.ErrNotFound
		}
		u.metrics.ObserveApproval(metrics.OutcomeError)
		return nil, fmt.Errorf("lookup loan %s: %w", req.LoanID, err)
	}

	now := u.now().UTC()
	comment, by := req.Comment, req.ApprovedBy
	updated, err := u.loanRepo.UpdateStatus(ctx, l.ID, domainLoan.StatusManuallyApproved, domainLoan.StatusPatch{
		ApprovalComment: &comment,
		ApprovedBy:      &by,
		ApprovedAt:      &now,
	})
	if err != nil {
		u.metrics.ObserveApproval(metrics.OutcomeError)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrUpdateFailed
		}
		return nil, fmt.Errorf("update loan %s: %w", req.LoanID, err)
	}

	u.metrics.ObserveApproval(metrics.OutcomeApproved)
	return updated, nil
}
