package gormdb

import (
	"context"

	"gorm.io/gorm"

	"support-desk/internal/domain/branch"
)

var _ branch.Repository = (*BranchRepository)(nil)

type BranchRepository struct{ db *gorm.DB }

func NewBranchRepository(db *gorm.DB) *BranchRepository { return &BranchRepository{db: db} }

func (r *BranchRepository) Create(ctx context.Context, b *branch.Branch) error {
	b.ID = ensureID(b.ID)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = createdAt()
	}
	return withCtx(ctx, r.db).Create(b).Error
}

func (r *BranchRepository) GetByID(ctx context.Context, id string) (*branch.Branch, error) {
	var out branch.Branch
	if err := withCtx(ctx, r.db).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, branch.ErrNotFound)
	}
	return &out, nil
}

func (r *BranchRepository) First(ctx context.Context) (*branch.Branch, error) {
	var out branch.Branch
	if err := withCtx(ctx, r.db).Order("created_at ASC, id ASC").Take(&out).Error; err != nil {
		return nil, notFound(err, branch.ErrNotFound)
	}
	return &out, nil
}
