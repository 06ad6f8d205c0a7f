// Package handler contains the gin HTTP handlers. Handlers bind JSON,
// call the store layer and map its error taxonomy onto HTTP statuses;
// no business rules live here beyond wire-format concerns.
package handler

import (
	"errors"
	"net/http"

	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user out of the gin context.
// Writes the 401 itself so call sites stay one line.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(middleware.CurrentUserKey)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "authorization required")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, "authorization required")
		return nil, false
	}
	return user, true
}

// storeError maps store-layer errors onto the HTTP error taxonomy:
// 400 validation/in-use, 404 not found, 409 duplicate, 500 otherwise.
func storeError(c *gin.Context, err error) {
	var ve *store.ValidationError
	var iu *store.InUseError
	switch {
	case errors.As(err, &ve):
		util.Error(c, http.StatusBadRequest, ve.Msg)
	case errors.As(err, &iu):
		util.ErrorWith(c, http.StatusBadRequest, iu.Error(), gin.H{
			"transactionCount": iu.TransactionCount,
			"plannedCount":     iu.PlannedCount,
		})
	case errors.Is(err, store.ErrNotFound):
		util.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicateName):
		util.Error(c, http.StatusConflict, "name already exists")
	case errors.Is(err, store.ErrCategoryNotOwned):
		util.Error(c, http.StatusBadRequest, "category does not belong to the current user")
	case errors.Is(err, store.ErrNoFields):
		util.Error(c, http.StatusBadRequest, "no fields provided")
	default:
		util.Error(c, http.StatusInternalServerError, "internal server error")
	}
}

// categoryResp is the embedded category shape on ledger entries.
type categoryResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{
		ID:    cat.ID,
		Name:  cat.Name,
		Color: cat.Color,
		Icon:  cat.Icon,
	}
}

// userResp is the account shape returned by auth and admin routes.
type userResp struct {
	ID         string `json:"id"`
	Login      string `json:"login"`
	Email      string `json:"email,omitempty"`
	Name       string `json:"name,omitempty"`
	CreatedAt  string `json:"createdAt"`
	LoginCount int    `json:"loginCount"`
}

func toUserResp(u *models.User) userResp {
	return userResp{
		ID:         u.ID,
		Login:      u.Login,
		Email:      u.Email,
		Name:       u.Name,
		CreatedAt:  u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		LoginCount: u.LoginCount,
	}
}
