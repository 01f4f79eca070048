package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/features/auth/models"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// Cookies writes the session cookies. Each cookie lives exactly as long as
// the token it carries.
type Cookies struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

func (ck Cookies) Set(c *gin.Context, pair *models.TokenPair) {
	ck.write(c, AccessCookie, pair.AccessToken, int(ck.AccessTTL.Seconds()))
	ck.write(c, RefreshCookie, pair.RefreshToken, int(ck.RefreshTTL.Seconds()))
}

func (ck Cookies) Clear(c *gin.Context) {
	ck.write(c, AccessCookie, "", -1)
	ck.write(c, RefreshCookie, "", -1)
}

func (ck Cookies) write(c *gin.Context, name, value string, maxAge int) {
	// browsers drop SameSite=None cookies without Secure
	if ck.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(name, value, maxAge, "/", "", ck.Secure, true)
}

func readCookie(c *gin.Context, name string) string {
	v, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return v
}
