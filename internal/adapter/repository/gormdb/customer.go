package gormdb

import (
	"context"

	"gorm.io/gorm"

	"support-desk/internal/domain/customer"
)

var _ customer.Repository = (*CustomerRepository)(nil)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	c.ID = ensureID(c.ID)
	return withCtx(ctx, r.db).Create(c).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	var out customer.Customer
	if err := withCtx(ctx, r.db).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, customer.ErrNotFound)
	}
	return &out, nil
}
