package loan

import "context"

type Repository interface {
	// Create assigns ID and CreatedAt. The customer must already exist.
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id string) (*Loan, error)
	// Lookup by the public (rupeek) loan id
	GetByRupeekLoanID(ctx context.Context, rupeekLoanID string) (*Loan, error)
	// UpdateStatus is the only mutation path for an existing loan.
	UpdateStatus(ctx context.Context, id string, status Status, patch StatusPatch) (*Loan, error)
	// List returns every loan in creation order.
	List(ctx context.Context) ([]Loan, error)
}
