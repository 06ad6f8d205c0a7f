package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a named savings target. CurrentAmount is mutated by the user
// and is not derived from the Savings store; it has no cap at
// TargetAmount, only a floor at zero.
type Goal struct {
	ID            string          `gorm:"primaryKey;size:36"`
	UserID        string          `gorm:"index;size:36;not null"`
	Title         string          `gorm:"size:128;not null"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Description   string          `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
