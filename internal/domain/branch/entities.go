package branch

import (
	"fmt"
	"time"

	"support-desk/internal/apperrors"
)

var ErrNotFound = fmt.Errorf("branch %w", apperrors.ErrNotFound)

// Table: branches
type Branch struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// External branch code (SOL id), optional
	SolID   *string `gorm:"column:sol_id;size:16" json:"solId"`
	Name    string  `gorm:"not null" json:"name"`
	Address string  `gorm:"type:text;not null" json:"address"`
	// Insertion order; "first branch" is resolved on it
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Branch) TableName() string { return "branches" }
