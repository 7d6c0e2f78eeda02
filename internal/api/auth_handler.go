package api

import (
	"errors"
	"net/http"

	"localgym/gym-admin/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the login and logout routes.
type AuthHandler struct {
	auth    service.AuthService
	logger  *zap.Logger
	devMode bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth service.AuthService, logger *zap.Logger, devMode bool) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger, devMode: devMode}
}

// LoginForm renders the login page unconditionally.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Staff Login",
	})
}

// LoginSubmit checks the credentials and establishes the session. Failed
// logins go back to the login form.
func (h *AuthHandler) LoginSubmit(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	account, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			c.Redirect(http.StatusFound, "/users/login")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAccountIDKey, account.ID.Hex())
	session.Set(sessionUsernameKey, account.Username)
	if err := session.Save(); err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, "/catalog")
}

// Logout destroys the session and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		h.logger.Warn("session destroy", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/users/login")
}
