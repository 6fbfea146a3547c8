package memory

import (
	"time"

	"support-desk/internal/domain/branch"
	"support-desk/internal/domain/customer"
	"support-desk/internal/domain/loan"
	"support-desk/internal/domain/user"
)

// Store owns the four entity collections. Build one with NewStore and hand
// its repositories to the usecases; Close empties it.
type Store struct {
	users     *Collection[user.User]
	customers *Collection[customer.Customer]
	branches  *Collection[branch.Branch]
	loans     *Collection[loan.Loan]

	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		users: NewCollection(Accessors[user.User]{
			ID:    func(u user.User) string { return u.ID },
			SetID: func(u *user.User, id string) { u.ID = id },
			Key:   func(u user.User) string { return u.Username },
		}),
		customers: NewCollection(Accessors[customer.Customer]{
			ID:    func(c customer.Customer) string { return c.ID },
			SetID: func(c *customer.Customer, id string) { c.ID = id },
		}),
		branches: NewCollection(Accessors[branch.Branch]{
			ID:    func(b branch.Branch) string { return b.ID },
			SetID: func(b *branch.Branch, id string) { b.ID = id },
			Clone: cloneBranch,
		}),
		loans: NewCollection(Accessors[loan.Loan]{
			ID:    func(l loan.Loan) string { return l.ID },
			SetID: func(l *loan.Loan, id string) { l.ID = id },
			Key:   func(l loan.Loan) string { return l.RupeekLoanID },
			Clone: loan.Loan.Clone,
		}),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Users() *UserRepository         { return &UserRepository{s: s} }
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }
func (s *Store) Branches() *BranchRepository    { return &BranchRepository{s: s} }
func (s *Store) Loans() *LoanRepository         { return &LoanRepository{s: s} }

// Close drops all records. The store stays usable and empty afterwards.
func (s *Store) Close() error {
	s.users.Reset()
	s.customers.Reset()
	s.branches.Reset()
	s.loans.Reset()
	return nil
}

func cloneBranch(b branch.Branch) branch.Branch {
	if b.SolID != nil {
		v := *b.SolID
		b.SolID = &v
	}
	return b
}
