package memory

import (
	"context"
	"errors"
	"fmt"

	"support-desk/internal/apperrors"
	"support-desk/internal/domain/branch"
	"support-desk/internal/domain/customer"
	"support-desk/internal/domain/loan"
	"support-desk/internal/domain/user"
)

var (
	_ user.Repository     = (*UserRepository)(nil)
	_ customer.Repository = (*CustomerRepository)(nil)
	_ branch.Repository   = (*BranchRepository)(nil)
	_ loan.Repository     = (*LoanRepository)(nil)
)

// ---- users ----

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	stored, err := r.s.users.Create(*u)
	if errors.Is(err, apperrors.ErrDuplicate) {
		return user.ErrDuplicateUsername
	}
	if err != nil {
		return err
	}
	*u = stored
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := r.s.users.Get(id)
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := r.s.users.GetByKey(username)
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

// ---- customers ----

type CustomerRepository struct{ s *Store }

func (r *CustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	stored, err := r.s.customers.Create(*c)
	if err != nil {
		return err
	}
	*c = stored
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	c, ok := r.s.customers.Get(id)
	if !ok {
		return nil, customer.ErrNotFound
	}
	return &c, nil
}

// ---- branches ----

type BranchRepository struct{ s *Store }

func (r *BranchRepository) Create(_ context.Context, b *branch.Branch) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.s.now()
	}
	stored, err := r.s.branches.Create(*b)
	if err != nil {
		return err
	}
	*b = stored
	return nil
}

func (r *BranchRepository) GetByID(_ context.Context, id string) (*branch.Branch, error) {
	b, ok := r.s.branches.Get(id)
	if !ok {
		return nil, branch.ErrNotFound
	}
	return &b, nil
}

func (r *BranchRepository) First(_ context.Context) (*branch.Branch, error) {
	b, ok := r.s.branches.First()
	if !ok {
		return nil, branch.ErrNotFound
	}
	return &b, nil
}

// ---- loans ----

type LoanRepository struct{ s *Store }

func (r *LoanRepository) Create(_ context.Context, l *loan.Loan) error {
	if _, ok := r.s.customers.Get(l.CustomerID); !ok {
		return fmt.Errorf("%w: %q", loan.ErrUnknownCustomer, l.CustomerID)
	}
	row := *l
	if row.Status == "" {
		row.Status = loan.StatusPending
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.s.now()
	}
	stored, err := r.s.loans.Create(row)
	if errors.Is(err, apperrors.ErrDuplicate) {
		return fmt.Errorf("%w: %q", loan.ErrDuplicateRef, l.RupeekLoanID)
	}
	if err != nil {
		return err
	}
	*l = stored
	return nil
}

func (r *LoanRepository) GetByID(_ context.Context, id string) (*loan.Loan, error) {
	l, ok := r.s.loans.Get(id)
	if !ok {
		return nil, loan.ErrNotFound
	}
	return &l, nil
}

func (r *LoanRepository) GetByRupeekLoanID(_ context.Context, rupeekLoanID string) (*loan.Loan, error) {
	l, ok := r.s.loans.GetByKey(rupeekLoanID)
	if !ok {
		return nil, loan.ErrNotFound
	}
	return &l, nil
}

func (r *LoanRepository) UpdateStatus(_ context.Context, id string, status loan.Status, patch loan.StatusPatch) (*loan.Loan, error) {
	l, ok := r.s.loans.Update(id, func(l *loan.Loan) { l.ApplyStatus(status, patch) })
	if !ok {
		return nil, loan.ErrNotFound
	}
	return &l, nil
}

func (r *LoanRepository) List(_ context.Context) ([]loan.Loan, error) {
	return r.s.loans.All(), nil
}
