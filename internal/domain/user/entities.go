package user

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"support-desk/internal/apperrors"
)

var (
	ErrNotFound          = fmt.Errorf("user %w", apperrors.ErrNotFound)
	ErrDuplicateUsername = fmt.Errorf("username %w", apperrors.ErrDuplicate)
	ErrInvalidUser       = errors.New("username and password are required")
)

// Table: users
type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Username     string `gorm:"size:64;not null;uniqueIndex:ux_users_username" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}

func (User) TableName() string { return "users" }

// New builds a user with a bcrypt hash of password; the plain password is not kept.
func New(username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &User{Username: username, PasswordHash: string(hash)}, nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
