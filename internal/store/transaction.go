package store

import (
	"errors"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionInput carries the writable fields of a transaction.
type TransactionInput struct {
	Type        string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  string
}

func (in *TransactionInput) validate() error {
	if in.Type != models.TypeIncome && in.Type != models.TypeExpense {
		return validationf("type must be income or expense")
	}
	if !in.Amount.IsPositive() {
		return validationf("amount must be positive")
	}
	if in.Date.IsZero() {
		return validationf("date is required")
	}
	// Actual transactions cannot be dated in the future; planned
	// expenses carry that role.
	if in.Date.Format(util.DateLayout) > util.Today().Format(util.DateLayout) {
		return validationf("transaction date cannot be in the future")
	}
	return nil
}

// TransactionStore manages the actual income/expense ledger.
type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// List returns all transactions owned by the user with their categories
// resolved, newest date first.
func (s *TransactionStore) List(userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&txs).Error
	return txs, err
}

// ListBetween returns the user's transactions within [start, end] inclusive,
// oldest first. Zero start/end leaves that side unbounded.
func (s *TransactionStore) ListBetween(userID string, start, end time.Time) ([]models.Transaction, error) {
	q := s.db.Preload("Category").Where("user_id = ?", userID)
	if !start.IsZero() {
		q = q.Where("date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("date < ?", end.AddDate(0, 0, 1))
	}
	var txs []models.Transaction
	err := q.Order("date ASC, created_at ASC").Find(&txs).Error
	return txs, err
}

// Get returns one owned transaction with its category resolved; a
// transaction owned by someone else is NotFound.
func (s *TransactionStore) Get(userID, id string) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create validates, checks category ownership and inserts.
func (s *TransactionStore) Create(userID string, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := checkCategoryOwned(s.db, userID, in.CategoryID); err != nil {
		return nil, err
	}

	t := models.Transaction{
		UserID:      userID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		CategoryID:  in.CategoryID,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Category").First(&t, "id = ?", t.ID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces the writable fields of an owned transaction.
// Category reassignment re-validates ownership.
func (s *TransactionStore) Update(userID, id string, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var t models.Transaction
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := checkCategoryOwned(s.db, userID, in.CategoryID); err != nil {
		return nil, err
	}

	t.Type = in.Type
	t.Amount = in.Amount
	t.Description = in.Description
	t.Date = in.Date
	t.CategoryID = in.CategoryID
	if err := s.db.Save(&t).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Category").First(&t, "id = ?", t.ID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes an owned transaction.
func (s *TransactionStore) Delete(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
