package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds user identity metadata, one row per user.
type Profile struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"uniqueIndex;size:36;not null"`
	LastName   string `gorm:"size:64"`
	FirstName  string `gorm:"size:64"`
	MiddleName string `gorm:"size:64"`
	Age        int
	BirthDate  *time.Time `gorm:"type:date"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
