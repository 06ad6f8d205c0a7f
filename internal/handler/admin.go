package handler

import (
	"net/http"

	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the administrator-only account routes. The admin
// guard runs in middleware; handlers here only need the self-delete
// check.
type AdminHandler struct {
	Users *store.UserStore
}

func NewAdminHandler(users *store.UserStore) *AdminHandler {
	return &AdminHandler{Users: users}
}

type adminUserResp struct {
	userResp
	TransactionCount int64  `json:"transactionCount"`
	CategoryCount    int64  `json:"categoryCount"`
	GoalCount        int64  `json:"goalCount"`
	LastLoginAt      string `json:"lastLoginAt,omitempty"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	summaries, err := h.Users.ListAll()
	if err != nil {
		storeError(c, err)
		return
	}

	out := make([]adminUserResp, 0, len(summaries))
	for i := range summaries {
		s := &summaries[i]
		resp := adminUserResp{
			userResp:         toUserResp(&s.User),
			TransactionCount: s.TransactionCount,
			CategoryCount:    s.CategoryCount,
			GoalCount:        s.GoalCount,
		}
		if s.User.LastLoginAt != nil {
			resp.LastLoginAt = s.User.LastLoginAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, out)
}

type adminUpdateUserReq struct {
	Login *string `json:"login"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var req adminUpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Users.UpdateUser(c.Param("id"), store.UserPatch{
		Login: req.Login,
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}

// DeleteUser removes an account and everything it owns. Admins cannot
// delete themselves.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == admin.ID {
		util.Error(c, http.StatusForbidden, "admin cannot delete own account")
		return
	}

	if err := h.Users.DeleteUser(id); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
