// Package store implements the ownership-scoped persistence layer.
// Every operation takes the resolved user ID as its scoping parameter;
// entities owned by another user are indistinguishable from absent ones.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity is absent or owned by another user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned on per-user unique-name violations
	// (category names, user logins).
	ErrDuplicateName = errors.New("name already exists")
	// ErrCategoryNotOwned is returned when a category reference does not
	// resolve to a category owned by the same user.
	ErrCategoryNotOwned = errors.New("category does not belong to user")
	// ErrNoFields is returned when a partial update carries no fields.
	ErrNoFields = errors.New("no fields provided")
	// ErrInvalidCredentials is returned on login/password mismatch.
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrAccountLocked is returned while a lockout window is active.
	ErrAccountLocked = errors.New("account locked, try again later")
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InUseError blocks category deletion while references exist. Both counts
// are reported so the caller can tell the user what still points at it.
type InUseError struct {
	TransactionCount int64
	PlannedCount     int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("category is in use by %d transactions and %d planned expenses",
		e.TransactionCount, e.PlannedCount)
}
