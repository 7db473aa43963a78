package middleware

import (
	"net/http"

	"parkwise/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards admin-only routes. It runs after JWTAuthMiddleware and
// rejects callers whose identity does not carry the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
