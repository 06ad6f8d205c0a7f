package store

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"fintrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var loginRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// UserStore manages accounts: registration, authentication bookkeeping
// and the admin operations.
type UserStore struct {
	db         *gorm.DB
	bcryptCost int
}

func NewUserStore(db *gorm.DB, bcryptCost int) *UserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &UserStore{db: db, bcryptCost: bcryptCost}
}

// Register creates the user together with an empty profile and the
// starter category set, all in one transaction.
func (s *UserStore) Register(login, password, email, name string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if !loginRe.MatchString(login) {
		return nil, validationf("login must be 3-20 characters: letters, digits or underscore")
	}
	if len(password) < 6 {
		return nil, validationf("password must be at least 6 characters")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("LOWER(login) = LOWER(?)", login).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Login:        login,
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(email),
		Name:         strings.TrimSpace(name),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Profile{UserID: user.ID}).Error; err != nil {
			return err
		}
		return CreateDefaults(tx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the credential and keeps the login counters.
// Five consecutive failures lock the account for ten minutes.
func (s *UserStore) Authenticate(login, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(login) = LOWER(?)", strings.TrimSpace(login)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			lockUntil := now.Add(10 * time.Minute)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		_ = s.db.Save(&user).Error
		return nil, ErrInvalidCredentials
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	user.LoginCount++
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Get returns a user by ID.
func (s *UserStore) Get(id string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserSummary is one row of the admin user listing.
type UserSummary struct {
	User             models.User
	TransactionCount int64
	CategoryCount    int64
	GoalCount        int64
}

// ListAll returns every account with entity counts. Admin only.
func (s *UserStore) ListAll() ([]UserSummary, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for i := range users {
		sum := UserSummary{User: users[i]}
		if err := s.db.Model(&models.Transaction{}).
			Where("user_id = ?", users[i].ID).Count(&sum.TransactionCount).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&models.Category{}).
			Where("user_id = ?", users[i].ID).Count(&sum.CategoryCount).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&models.Goal{}).
			Where("user_id = ?", users[i].ID).Count(&sum.GoalCount).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// UserPatch is the admin partial update of an account.
type UserPatch struct {
	Login *string
	Email *string
	Name  *string
}

// UpdateUser applies an admin patch with registration-grade validation.
func (s *UserStore) UpdateUser(id string, patch UserPatch) (*models.User, error) {
	if patch.Login == nil && patch.Email == nil && patch.Name == nil {
		return nil, ErrNoFields
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Login != nil {
		login := strings.TrimSpace(*patch.Login)
		if !loginRe.MatchString(login) {
			return nil, validationf("login must be 3-20 characters: letters, digits or underscore")
		}
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("LOWER(login) = LOWER(?) AND id <> ?", login, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateName
		}
		updates["login"] = login
	}
	if patch.Email != nil {
		updates["email"] = strings.TrimSpace(*patch.Email)
	}
	if patch.Name != nil {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(user, "id = ?", user.ID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account and everything it owns in one
// transaction.
func (s *UserStore) DeleteUser(id string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.Transaction{},
			&models.PlannedExpense{},
			&models.Saving{},
			&models.Goal{},
			&models.Category{},
			&models.Profile{},
		} {
			if err := tx.Where("user_id = ?", user.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
}
