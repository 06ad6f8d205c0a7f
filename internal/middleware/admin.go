package middleware

import (
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects anyone whose login is not the configured
// administrator login. Must run after Auth.
func RequireAdmin(adminLogin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CurrentUserKey)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "authorization required")
			c.Abort()
			return
		}
		user, ok := v.(*models.User)
		if !ok || user == nil || user.Login != adminLogin {
			util.Error(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
