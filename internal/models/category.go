package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a per-user transaction label with color and icon.
// Name is unique within one user, not globally.
type Category struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;not null;uniqueIndex:idx_categories_user_name,priority:1"`
	Name      string `gorm:"size:64;not null;uniqueIndex:idx_categories_user_name,priority:2"`
	Color     string `gorm:"size:16;not null"` // hex string, e.g. #FF8C00
	Icon      string `gorm:"size:32;not null"` // symbolic icon name
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DefaultCategory describes one entry of the starter set created at
// registration.
type DefaultCategory struct {
	Name  string
	Color string
	Icon  string
}

// DefaultCategories is the starter set every new user begins with.
var DefaultCategories = []DefaultCategory{
	{Name: "Продукты", Color: "#4CAF50", Icon: "shopping-cart"},
	{Name: "Транспорт", Color: "#2196F3", Icon: "bus"},
	{Name: "Жильё", Color: "#795548", Icon: "home"},
	{Name: "Развлечения", Color: "#9C27B0", Icon: "film"},
	{Name: "Здоровье", Color: "#F44336", Icon: "heart"},
	{Name: "Одежда", Color: "#FF9800", Icon: "shirt"},
	{Name: "Зарплата", Color: "#8BC34A", Icon: "wallet"},
	{Name: "Подарки", Color: "#E91E63", Icon: "gift"},
}
