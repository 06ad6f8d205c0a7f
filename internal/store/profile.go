package store

import (
	"errors"
	"time"

	"fintrack/internal/models"

	"gorm.io/gorm"
)

// ProfilePatch is a partial update of the user's identity metadata.
// A BirthDate pointing at the zero time clears the stored date.
type ProfilePatch struct {
	LastName   *string
	FirstName  *string
	MiddleName *string
	Age        *int
	BirthDate  *time.Time
}

// ProfileStore manages the 1:1 user profile rows.
type ProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Get returns the user's profile, creating the row if registration
// predates the profile table.
func (s *ProfileStore) Get(userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.Profile{UserID: userID}
		if err := s.db.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies a partial patch.
func (s *ProfileStore) Update(userID string, patch ProfilePatch) (*models.Profile, error) {
	if patch.LastName == nil && patch.FirstName == nil && patch.MiddleName == nil &&
		patch.Age == nil && patch.BirthDate == nil {
		return nil, ErrNoFields
	}

	updates := map[string]interface{}{}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.MiddleName != nil {
		updates["middle_name"] = *patch.MiddleName
	}
	if patch.Age != nil {
		if *patch.Age < 0 || *patch.Age > 150 {
			return nil, validationf("age must be between 0 and 150")
		}
		updates["age"] = *patch.Age
	}
	if patch.BirthDate != nil {
		if patch.BirthDate.IsZero() {
			updates["birth_date"] = nil
		} else {
			updates["birth_date"] = *patch.BirthDate
		}
	}

	p, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(p).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(p, "id = ?", p.ID).Error; err != nil {
		return nil, err
	}
	return p, nil
}
