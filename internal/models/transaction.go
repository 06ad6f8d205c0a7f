package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single income or expense record.
// Amount is a positive decimal with two-decimal currency semantics;
// the sign is carried by Type. Date is a calendar date, no time of day.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:36"`
	UserID      string          `gorm:"index;size:36;not null"`
	Type        string          `gorm:"size:16;index;not null"` // income / expense
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Description string          `gorm:"size:255"`
	Date        time.Time       `gorm:"type:date;index;not null"`
	CategoryID  string          `gorm:"index;size:36;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User     User `gorm:"constraint:OnDelete:CASCADE"`
	Category Category
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// SignedAmount returns the amount with income positive and expense negative.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
