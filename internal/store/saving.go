package store

import (
	"errors"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingInput carries the writable fields of a savings entry.
type SavingInput struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

func (in *SavingInput) validate() error {
	if !in.Amount.IsPositive() {
		return validationf("amount must be positive")
	}
	if in.Date.IsZero() {
		return validationf("date is required")
	}
	return nil
}

// SavingStore manages money set aside. No category links.
type SavingStore struct {
	db *gorm.DB
}

func NewSavingStore(db *gorm.DB) *SavingStore {
	return &SavingStore{db: db}
}

// List returns the user's savings, newest date first.
func (s *SavingStore) List(userID string) ([]models.Saving, error) {
	var items []models.Saving
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&items).Error
	return items, err
}

// Get returns one owned savings entry.
func (s *SavingStore) Get(userID, id string) (*models.Saving, error) {
	var sv models.Saving
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&sv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sv, nil
}

func (s *SavingStore) Create(userID string, in SavingInput) (*models.Saving, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	sv := models.Saving{
		UserID:      userID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
	}
	if err := s.db.Create(&sv).Error; err != nil {
		return nil, err
	}
	return &sv, nil
}

func (s *SavingStore) Update(userID, id string, in SavingInput) (*models.Saving, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var sv models.Saving
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&sv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sv.Amount = in.Amount
	sv.Description = in.Description
	sv.Date = in.Date
	if err := s.db.Save(&sv).Error; err != nil {
		return nil, err
	}
	return &sv, nil
}

func (s *SavingStore) Delete(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Saving{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
