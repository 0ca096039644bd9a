package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashvi-chat/yashvi/internal/domains/auth"
	"github.com/yashvi-chat/yashvi/internal/domains/credstore"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

// AuthHandler drives the login form and logout action.
type AuthHandler struct {
	gate   *auth.Gate
	logger *Logger.Logger
}

func NewAuthHandler(gate *auth.Gate, logger *Logger.Logger) *AuthHandler {
	return &AuthHandler{gate: gate, logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	sess := CurrentSession(c)
	username := c.PostForm("username")
	password := c.PostForm("password")

	var (
		realm credstore.Realm
		role  session.Role
	)
	switch c.PostForm("realm") {
	case "admin":
		realm, role = credstore.Admins, session.RoleAdmin
	default:
		realm, role = credstore.Users, session.RoleUser
	}

	if err := h.gate.Login(c.Request.Context(), username, password, realm); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Errorf("login error: %v", err)
		}
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid username or password.",
		})
		return
	}

	if err := sess.Authenticate(c.Request.Context(), role); err != nil {
		h.logger.Errorf("session transition failed: %v", err)
		c.HTML(http.StatusConflict, "login.html", gin.H{
			"Error": "Session is already signed in.",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := CurrentSession(c)
	if err := sess.Logout(c.Request.Context()); err != nil {
		h.logger.Warnf("logout from unauthenticated session: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}
