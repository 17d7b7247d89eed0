package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/services"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// Auth validates the Bearer token and stores the caller's identity on the
// context for downstream handlers and role checks.
func Auth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		rc, err := auth.VerifyToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, int64(rc.UserID))
		c.Set(userRoleKey, rc.Role)
		c.Next()
	}
}

// CallerID returns the authenticated user id stored by Auth.
func CallerID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// CallerRole returns the authenticated role stored by Auth.
func CallerRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}
