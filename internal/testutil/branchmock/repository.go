package branchmock

import (
	"context"

	domain "support-desk/internal/domain/branch"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn  func(ctx context.Context, b *domain.Branch) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Branch, error)
	FirstFn   func(ctx context.Context) (*domain.Branch, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, b *domain.Branch) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) First(ctx context.Context) (*domain.Branch, error) {
	if m.FirstFn != nil {
		return m.FirstFn(ctx)
	}
	return nil, context.Canceled
}
