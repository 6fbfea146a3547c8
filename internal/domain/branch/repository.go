package branch

import "context"

type Repository interface {
	Create(ctx context.Context, b *Branch) error
	GetByID(ctx context.Context, id string) (*Branch, error)
	// First returns the earliest created branch.
	First(ctx context.Context) (*Branch, error)
}
