package middleware

import "github.com/gin-gonic/gin"

const (
	ContextKeyRequestID    = "request_id"
	ContextKeyUserID       = "user_id"
	ContextKeyUserEmail    = "user_email"
	ContextKeyUserRole     = "user_role"
	ContextKeyTelegramUser = "telegram_user"
)

// GetRequestID получает ID запроса из контекста
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetUserID returns the authenticated user id or "" for anonymous requests.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

func GetUserRole(c *gin.Context) string {
	return c.GetString(ContextKeyUserRole)
}

// SetIdentity attaches the authenticated identity to the request.
func SetIdentity(c *gin.Context, userID, email, role string) {
	c.Set(ContextKeyUserID, userID)
	c.Set(ContextKeyUserEmail, email)
	c.Set(ContextKeyUserRole, role)
}
