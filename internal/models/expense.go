package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a single spending record owned by one user and tagged with one category.
// The owner is fixed at creation; the category may change on update.
type Expense struct {
	ID         string          `gorm:"primaryKey;size:36"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Narration  string          `gorm:"size:255;not null"`
	UserID     string          `gorm:"size:36;index;not null"`
	CategoryID string          `gorm:"size:36;index;not null"`
	CreatedAt  time.Time       `gorm:"index"`
	UpdatedAt  time.Time

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
