package loan

import (
	"context"
	"errors"
	"fmt"

	"support-desk/internal/apperrors"
	"support-desk/internal/domain/branch"
	"support-desk/internal/domain/customer"
	domain "support-desk/internal/domain/loan"
	"support-desk/internal/metrics"
)

type Usecase struct {
	loans     domain.Repository
	customers customer.Repository
	branches  branch.Repository
	metrics   *metrics.Metrics
}

func NewUsecase(loans domain.Repository, customers customer.Repository, branches branch.Repository, m *metrics.Metrics) *Usecase {
	return &Usecase{loans: loans, customers: customers, branches: branches, metrics: m}
}

// GetDetails composes the loan, its customer and the servicing branch.
// A gap anywhere in the chain is reported as not found.
func (u *Usecase) GetDetails(ctx context.Context, rupeekLoanID string) (*LoanDetails, error) {
	details, err := u.getDetails(ctx, rupeekLoanID)
	switch {
	case err == nil:
		u.metrics.ObserveLookup(metrics.OutcomeFound)
	case errors.Is(err, apperrors.ErrNotFound):
		u.metrics.ObserveLookup(metrics.OutcomeNotFound)
	default:
		u.metrics.ObserveLookup(metrics.OutcomeError)
	}
	return details, err
}

func (u *Usecase) getDetails(ctx context.Context, rupeekLoanID string) (*LoanDetails, error) {
	l, err := u.loans.GetByRupeekLoanID(ctx, rupeekLoanID)
	if err != nil {
		return nil, err
	}
	c, err := u.customers.GetByID(ctx, l.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer of loan %s: %w", rupeekLoanID, err)
	}
	// Loans carry no branch reference; the first registered branch serves all.
	b, err := u.branches.First(ctx)
	if err != nil {
		return nil, fmt.Errorf("branch of loan %s: %w", rupeekLoanID, err)
	}
	return &LoanDetails{Loan: *l, Customer: *c, Branch: *b}, nil
}

// List summarises every loan in creation order.
func (u *Usecase) List(ctx context.Context) ([]LoanSummary, error) {
	loans, err := u.loans.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	out := make([]LoanSummary, 0, len(loans))
	for _, l := range loans {
		name, ok := names[l.CustomerID]
		if !ok {
			c, err := u.customers.GetByID(ctx, l.CustomerID)
			switch {
			case err == nil:
				name = c.Name
			case errors.Is(err, apperrors.ErrNotFound):
				// listed without a name rather than hiding the loan
			default:
				return nil, fmt.Errorf("customer of loan %s: %w", l.RupeekLoanID, err)
			}
			names[l.CustomerID] = name
		}
		out = append(out, LoanSummary{
			RupeekLoanID:     l.RupeekLoanID,
			CustomerName:     name,
			TotalAmount:      l.TotalAmount,
			LoanDate:         l.LoanDate,
			Status:           l.Status,
			ApprovedBy:       l.ApprovedBy,
			ApprovedAt:       l.ApprovedAt,
			RejectionReasons: l.RejectionReasons,
		})
	}
	return out, nil
}
