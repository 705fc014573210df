package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows the request through only when the authenticated user
// has one of the given roles.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		AuthMiddleware()(c)

		if c.IsAborted() {
			return
		}

		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "cannot determine user role"})
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid role value"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have access to this resource"})
		c.Abort()
	}
}
