package store

import (
	"errors"
	"strings"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalPatch is a partial update: nil fields are left untouched. The
// column list of the update is generated from which fields are present,
// never concatenated from strings.
type GoalPatch struct {
	Title         *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Description   *string
}

// GoalStore manages savings targets.
type GoalStore struct {
	db *gorm.DB
}

func NewGoalStore(db *gorm.DB) *GoalStore {
	return &GoalStore{db: db}
}

// List returns the user's goals, newest first.
func (s *GoalStore) List(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&goals).Error
	return goals, err
}

func (s *GoalStore) Get(userID, id string) (*models.Goal, error) {
	var g models.Goal
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create adds a goal with current amount starting at zero.
func (s *GoalStore) Create(userID, title string, targetAmount decimal.Decimal, description string) (*models.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validationf("title is required")
	}
	if !targetAmount.IsPositive() {
		return nil, validationf("target amount must be positive")
	}

	g := models.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		Description:   description,
	}
	if err := s.db.Create(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// Update applies a partial patch. The store only accepts absolute
// amounts; callers that work in deltas clamp at zero before calling.
func (s *GoalStore) Update(userID, id string, patch GoalPatch) (*models.Goal, error) {
	if patch.Title == nil && patch.TargetAmount == nil &&
		patch.CurrentAmount == nil && patch.Description == nil {
		return nil, ErrNoFields
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, validationf("title cannot be empty")
		}
		updates["title"] = title
	}
	if patch.TargetAmount != nil {
		if !patch.TargetAmount.IsPositive() {
			return nil, validationf("target amount must be positive")
		}
		updates["target_amount"] = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		if patch.CurrentAmount.IsNegative() {
			return nil, validationf("current amount cannot be negative")
		}
		updates["current_amount"] = *patch.CurrentAmount
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	var g models.Goal
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&g).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&g, "id = ?", g.ID).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GoalStore) Delete(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
