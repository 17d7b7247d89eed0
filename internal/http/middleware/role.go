package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles is role-based access control. It only lets through requests
// whose role is one of allowedRoles. Assumes Auth already ran and set the
// role on the context.
//
// Example:
//
//	r.POST("/trips", RequireRoles("ADMIN", "DISPATCHER"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToUpper(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := CallerRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized: no role on request context",
			})
			return
		}

		if _, ok := allowed[strings.ToUpper(strings.TrimSpace(role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Forbidden: insufficient role",
			})
			return
		}

		c.Next()
	}
}
