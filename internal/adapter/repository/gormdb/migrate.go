// Package gormdb implements the record store on top of gorm, for MySQL or SQLite.
package gormdb

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"support-desk/internal/domain/branch"
	"support-desk/internal/domain/customer"
	"support-desk/internal/domain/loan"
	"support-desk/internal/domain/user"
	"support-desk/pkg/id"
)

// AutoMigrate creates or updates the four tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &customer.Customer{}, &branch.Branch{}, &loan.Loan{})
}

// Repositories groups the gorm repositories bound to one *gorm.DB.
type Repositories struct {
	Users     *UserRepository
	Customers *CustomerRepository
	Branches  *BranchRepository
	Loans     *LoanRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:     NewUserRepository(db),
		Customers: NewCustomerRepository(db),
		Branches:  NewBranchRepository(db),
		Loans:     NewLoanRepository(db),
	}
}

func ensureID(cur string) string {
	if cur == "" {
		return id.New()
	}
	return cur
}

// notFound maps gorm's missing-row error to the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func withCtx(ctx context.Context, db *gorm.DB) *gorm.DB { return db.WithContext(ctx) }

var stampClock struct {
	sync.Mutex
	last time.Time
}

// createdAt returns strictly increasing millisecond stamps (the precision of
// MySQL's datetime(3)) so created_at order follows insertion order.
func createdAt() time.Time {
	stampClock.Lock()
	defer stampClock.Unlock()
	now := time.Now().UTC().Truncate(time.Millisecond)
	if !now.After(stampClock.last) {
		now = stampClock.last.Add(time.Millisecond)
	}
	stampClock.last = now
	return now
}
