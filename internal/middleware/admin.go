package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdminToken gates operational endpoints behind the X-Admin-Token
// header.
func RequireAdminToken(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" || c.GetHeader("X-Admin-Token") != adminToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid admin token"})
			return
		}
		c.Next()
	}
}
