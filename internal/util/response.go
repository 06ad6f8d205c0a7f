package util

import "github.com/gin-gonic/gin"

// Error writes the error wire shape: {"error": "<message>"}.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}

// ErrorWith writes an error body with extra fields next to "error".
func ErrorWith(c *gin.Context, httpStatus int, msg string, extra gin.H) {
	body := gin.H{"error": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(httpStatus, body)
}
