package loanmock

import (
	"context"

	domain "support-desk/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled so a forgotten stub fails loudly.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Loan) error
	GetByIDFn           func(ctx context.Context, id string) (*domain.Loan, error)
	GetByRupeekLoanIDFn func(ctx context.Context, ref string) (*domain.Loan, error)
	UpdateStatusFn      func(ctx context.Context, id string, status domain.Status, patch domain.StatusPatch) (*domain.Loan, error)
	ListFn              func(ctx context.Context) ([]domain.Loan, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRupeekLoanID(ctx context.Context, ref string) (*domain.Loan, error) {
	if m.GetByRupeekLoanIDFn != nil {
		return m.GetByRupeekLoanIDFn(ctx, ref)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatus(ctx context.Context, id string, status domain.Status, patch domain.StatusPatch) (*domain.Loan, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status, patch)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
