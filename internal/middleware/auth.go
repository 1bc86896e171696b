package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuth проверяет X-Admin-Token header. Пустой adminToken отключает проверку.
func AdminAuth(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			c.Next()
			return
		}

		token := c.GetHeader("X-Admin-Token")

		if token == "" {
			abortUnauthorized(c, "X-Admin-Token header required")
			return
		}

		if token != adminToken {
			abortUnauthorized(c, "invalid admin token")
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
