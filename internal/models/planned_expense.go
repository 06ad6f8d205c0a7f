package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlannedExpense is a forward-looking budgeted expense. Same shape as
// Transaction minus the type discriminator: planned entries are always
// expense-like.
type PlannedExpense struct {
	ID          string          `gorm:"primaryKey;size:36"`
	UserID      string          `gorm:"index;size:36;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Description string          `gorm:"size:255"`
	Date        time.Time       `gorm:"type:date;index;not null"`
	CategoryID  string          `gorm:"index;size:36;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User     User `gorm:"constraint:OnDelete:CASCADE"`
	Category Category
}

func (p *PlannedExpense) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
