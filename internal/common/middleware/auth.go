package middleware

import (
	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/common/errors"
)

// RequireRole allows the request through only when the session identity
// carries one of the given roles. It must run after the session middleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			_ = c.Error(errors.NewUnauthorizedError("session required"))
			c.Abort()
			return
		}

		role := GetUserRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		_ = c.Error(errors.NewForbiddenError("insufficient permissions"))
		c.Abort()
	}
}
