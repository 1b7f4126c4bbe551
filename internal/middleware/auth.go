package middleware

import (
	"net/http"
	"strings"

	"github.com/VYR4L/backend-expense-tracker/internal/models"
	"github.com/VYR4L/backend-expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PrincipalKey is the gin context key under which the authenticated
// user is stored.
const PrincipalKey = "currentUser"

// Authenticate validates the bearer token and resolves it to a live
// user in a single stage: token -> claims -> user -> active check. The
// typed principal is placed in the context for handlers to pick up.
//
// Tokens referencing a soft-deleted user are rejected, so deleting an
// account invalidates its outstanding tokens.
func Authenticate(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}
		if tokenStr == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")
			return
		}

		// default gorm scope excludes soft-deleted users
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				abortUnauthorized(c, "Could not validate credentials")
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			return
		}

		c.Set(PrincipalKey, &user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
