package customer

import "context"

type Repository interface {
	// Create assigns the ID.
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
}
