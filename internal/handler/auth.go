package handler

import (
	"net/http"
	"time"

	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and the /auth/me snapshot.
type AuthHandler struct {
	Users     *store.UserStore
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

func NewAuthHandler(users *store.UserStore, jwtSecret, issuer string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Users:     users,
		JWTSecret: jwtSecret,
		Issuer:    issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type registerReq struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Name     string `json:"name" binding:"max=64"`
}

// Register creates an account with its starter categories and logs the
// user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Users.Register(req.Login, req.Password, req.Email, req.Name)
	if err != nil {
		storeError(c, err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  toUserResp(user),
	})
}

type loginReq struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Users.Authenticate(req.Login, req.Password)
	switch err {
	case nil:
	case store.ErrInvalidCredentials:
		util.Error(c, http.StatusUnauthorized, "invalid login or password")
		return
	case store.ErrAccountLocked:
		util.Error(c, http.StatusUnauthorized, "account locked, try again later")
		return
	default:
		util.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResp(user),
	})
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResp(user)})
}
