package store

import (
	"errors"
	"strings"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// CategoryStore manages per-user categories.
type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories owned by the user in creation order.
func (s *CategoryStore) List(userID string) ([]models.Category, error) {
	var cats []models.Category
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&cats).Error
	return cats, err
}

// Create adds a category, rejecting duplicate names within the same user.
func (s *CategoryStore) Create(userID, name, color, icon string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("category name is required")
	}
	if color == "" {
		color = "#9E9E9E"
	}
	if icon == "" {
		icon = "tag"
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	cat := models.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
		Icon:   icon,
	}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// Get returns one category; a category owned by someone else is NotFound.
func (s *CategoryStore) Get(userID, id string) (*models.Category, error) {
	var cat models.Category
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete removes a category. The usage check and the delete run inside
// one transaction so a concurrent insert cannot slip between them.
func (s *CategoryStore) Delete(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var txCount, plannedCount int64
		if err := tx.Model(&models.Transaction{}).
			Where("category_id = ?", cat.ID).
			Count(&txCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PlannedExpense{}).
			Where("category_id = ?", cat.ID).
			Count(&plannedCount).Error; err != nil {
			return err
		}
		if txCount > 0 || plannedCount > 0 {
			return &InUseError{TransactionCount: txCount, PlannedCount: plannedCount}
		}

		return tx.Delete(&cat).Error
	})
}

// CreateDefaults seeds the starter category set for a new user.
func CreateDefaults(tx *gorm.DB, userID string) error {
	for _, d := range models.DefaultCategories {
		cat := models.Category{
			UserID: userID,
			Name:   d.Name,
			Color:  d.Color,
			Icon:   d.Icon,
		}
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}
	}
	return nil
}

// checkCategoryOwned verifies a category reference resolves to a category
// owned by the given user. Shared by the ledger stores.
func checkCategoryOwned(db *gorm.DB, userID, categoryID string) error {
	if categoryID == "" {
		return validationf("category is required")
	}
	var count int64
	if err := db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotOwned
	}
	return nil
}
