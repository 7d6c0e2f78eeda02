package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Session keys for the authenticated principal.
const (
	sessionAccountIDKey = "account_id"
	sessionUsernameKey  = "username"
)

// RequireLogin guards the catalog routes. Requests without an authenticated
// session are redirected to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionAccountIDKey) == nil {
			c.Redirect(http.StatusFound, "/users/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestLogger logs one structured line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// currentUsername returns the logged-in account's username, empty when the
// request carries no session principal.
func currentUsername(c *gin.Context) string {
	if name, ok := sessions.Default(c).Get(sessionUsernameKey).(string); ok {
		return name
	}
	return ""
}
