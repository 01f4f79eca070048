package http

import (
	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/features/auth/service"
)

// Session authenticates the request from its cookies. A valid access token
// passes straight through. An expired access token with a valid refresh
// token rotates both cookies and passes. Anything else clears the cookies
// and ends the request with 401.
func Session(svc service.AuthService, cookies Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Authenticate(c.Request.Context(),
			readCookie(c, AccessCookie),
			readCookie(c, RefreshCookie))
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeUnauthorized) || errors.HasCode(err, errors.ErrCodeForbidden) {
				cookies.Clear(c)
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		if session.Rotated != nil {
			cookies.Set(c, session.Rotated)
		}

		middleware.SetIdentity(c, session.UserID, session.Email, session.Role)
		c.Next()
	}
}
