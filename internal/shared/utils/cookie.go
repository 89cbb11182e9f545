package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/supportdesk/supportdesk/internal/shared/config"
	"github.com/supportdesk/supportdesk/internal/shared/constants"
)

// SetSessionCookie stores the session token as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, cfg config.SessionConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName(cfg), token, int(cfg.TTL().Seconds()), "/", "", cfg.CookieSecure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cfg config.SessionConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName(cfg), "", -1, "/", "", cfg.CookieSecure, true)
}

// GetSessionToken reads the token from the X-Session-Token header, falling
// back to the session cookie.
func GetSessionToken(c *gin.Context, cfg config.SessionConfig) string {
	if token := strings.TrimSpace(c.GetHeader(constants.HeaderSessionToken)); token != "" {
		return token
	}
	token, err := c.Cookie(sessionCookieName(cfg))
	if err != nil {
		return ""
	}
	return token
}

func sessionCookieName(cfg config.SessionConfig) string {
	if cfg.CookieName == "" {
		return constants.DefaultSessionCookie
	}
	return cfg.CookieName
}
