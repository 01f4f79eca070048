package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"engagement-admin-backend/internal/common/errors"
)

// TelegramInitData validates the mini-app init data passed in the init_data
// header and stores the parsed Telegram user in the context.
func TelegramInitData(botToken string, expIn time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("init_data")
		if raw == "" {
			_ = c.Error(errors.NewUnauthorizedError("telegram init data required"))
			c.Abort()
			return
		}

		if err := initdata.Validate(raw, botToken, expIn); err != nil {
			_ = c.Error(errors.NewUnauthorizedError("invalid init data").WithContext("cause", err.Error()))
			c.Abort()
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			_ = c.Error(errors.NewBadRequestError("failed to parse init data"))
			c.Abort()
			return
		}

		c.Set(ContextKeyTelegramUser, parsed.User)
		c.Next()
	}
}

// GetTelegramUser returns the Telegram user stored by TelegramInitData.
func GetTelegramUser(c *gin.Context) (initdata.User, bool) {
	v, ok := c.Get(ContextKeyTelegramUser)
	if !ok {
		return initdata.User{}, false
	}
	u, ok := v.(initdata.User)
	return u, ok
}
