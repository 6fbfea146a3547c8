package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"support-desk/internal/domain/customer"
	"support-desk/internal/domain/loan"
)

var _ loan.Repository = (*LoanRepository)(nil)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	// defaults go on a copy; l is only written once the row is committed
	row := l.Clone()
	err := withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&customer.Customer{}).Where("id = ?", row.CustomerID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %q", loan.ErrUnknownCustomer, row.CustomerID)
		}
		if err := tx.Model(&loan.Loan{}).Where("rupeek_loan_id = ?", row.RupeekLoanID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %q", loan.ErrDuplicateRef, row.RupeekLoanID)
		}

		row.ID = ensureID(row.ID)
		if row.Status == "" {
			row.Status = loan.StatusPending
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = createdAt()
		}
		err := tx.Create(&row).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %q", loan.ErrDuplicateRef, row.RupeekLoanID)
		}
		return err
	})
	if err != nil {
		return err
	}
	*l = row
	return nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (*loan.Loan, error) {
	var out loan.Loan
	if err := withCtx(ctx, r.db).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, loan.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) GetByRupeekLoanID(ctx context.Context, rupeekLoanID string) (*loan.Loan, error) {
	var out loan.Loan
	if err := withCtx(ctx, r.db).Where("rupeek_loan_id = ?", rupeekLoanID).First(&out).Error; err != nil {
		return nil, notFound(err, loan.ErrNotFound)
	}
	return &out, nil
}

// UpdateStatus re-reads the row inside a transaction, merges the patch and saves it.
func (r *LoanRepository) UpdateStatus(ctx context.Context, id string, status loan.Status, patch loan.StatusPatch) (*loan.Loan, error) {
	var out loan.Loan
	err := withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&out).Error; err != nil {
			return notFound(err, loan.ErrNotFound)
		}
		out.ApplyStatus(status, patch)
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) List(ctx context.Context) ([]loan.Loan, error) {
	var out []loan.Loan
	if err := withCtx(ctx, r.db).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
