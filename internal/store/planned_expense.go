package store

import (
	"errors"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlannedExpenseInput carries the writable fields of a planned expense.
// Unlike transactions, planned dates are unrestricted: planning for
// future months is the point.
type PlannedExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  string
}

func (in *PlannedExpenseInput) validate() error {
	if !in.Amount.IsPositive() {
		return validationf("amount must be positive")
	}
	if in.Date.IsZero() {
		return validationf("date is required")
	}
	return nil
}

// PlannedExpenseStore manages forward-looking budgeted expenses.
type PlannedExpenseStore struct {
	db *gorm.DB
}

func NewPlannedExpenseStore(db *gorm.DB) *PlannedExpenseStore {
	return &PlannedExpenseStore{db: db}
}

// List returns the user's planned expenses in forward planning order:
// earliest date first.
func (s *PlannedExpenseStore) List(userID string) ([]models.PlannedExpense, error) {
	var items []models.PlannedExpense
	err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date ASC, created_at DESC").
		Find(&items).Error
	return items, err
}

// Get returns one owned planned expense with its category resolved.
func (s *PlannedExpenseStore) Get(userID, id string) (*models.PlannedExpense, error) {
	var p models.PlannedExpense
	err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlannedExpenseStore) Create(userID string, in PlannedExpenseInput) (*models.PlannedExpense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := checkCategoryOwned(s.db, userID, in.CategoryID); err != nil {
		return nil, err
	}

	p := models.PlannedExpense{
		UserID:      userID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		CategoryID:  in.CategoryID,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Category").First(&p, "id = ?", p.ID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlannedExpenseStore) Update(userID, id string, in PlannedExpenseInput) (*models.PlannedExpense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var p models.PlannedExpense
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := checkCategoryOwned(s.db, userID, in.CategoryID); err != nil {
		return nil, err
	}

	p.Amount = in.Amount
	p.Description = in.Description
	p.Date = in.Date
	p.CategoryID = in.CategoryID
	if err := s.db.Save(&p).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Category").First(&p, "id = ?", p.ID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlannedExpenseStore) Delete(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.PlannedExpense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
