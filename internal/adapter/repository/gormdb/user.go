package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"support-desk/internal/domain/user"
)

var _ user.Repository = (*UserRepository)(nil)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if _, err := r.GetByUsername(ctx, u.Username); err == nil {
		return user.ErrDuplicateUsername
	} else if !errors.Is(err, user.ErrNotFound) {
		return err
	}
	u.ID = ensureID(u.ID)
	err := withCtx(ctx, r.db).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrDuplicateUsername
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var out user.User
	if err := withCtx(ctx, r.db).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err, user.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var out user.User
	if err := withCtx(ctx, r.db).Where("username = ?", username).First(&out).Error; err != nil {
		return nil, notFound(err, user.ErrNotFound)
	}
	return &out, nil
}
