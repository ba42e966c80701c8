package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/topup/internal/config"
)

const (
	SessionContextKey = "session_id"
	SessionHeader     = "X-Session-ID"
)

// SessionMiddleware identifies the client whose drafts a request touches. The id comes from
// the X-Session-ID header or the session cookie; a new one is issued when neither holds a UUID.
func SessionMiddleware(cfg config.SessionConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		if h := strings.TrimSpace(c.GetHeader(SessionHeader)); h != "" {
			sessionID = h
		} else if cookie, err := c.Cookie(cfg.CookieName); err == nil {
			sessionID = cookie
		}

		if id, err := uuid.Parse(sessionID); err == nil {
			sessionID = id.String()
		} else {
			if sessionID != "" {
				logger.Debug("Ignoring malformed session id", zap.String("path", c.Request.URL.Path))
			}
			sessionID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sessionID, int(cfg.CookieMaxAge.Seconds()), "/", "", cfg.CookieSecure, true)
		}

		c.Header(SessionHeader, sessionID)
		c.Set(SessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionFromContext retrieves the session id from the Gin context
func GetSessionFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(SessionContextKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
