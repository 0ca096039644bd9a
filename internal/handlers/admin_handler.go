package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashvi-chat/yashvi/internal/domains/credstore"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

// AdminHandler serves the dashboard actions: user CRUD and clearing chat
// memory. Only the users realm is ever mutated here.
type AdminHandler struct {
	store    *credstore.Store
	registry *session.Registry
	logger   *Logger.Logger
}

func NewAdminHandler(store *credstore.Store, registry *session.Registry, logger *Logger.Logger) *AdminHandler {
	return &AdminHandler{store: store, registry: registry, logger: logger}
}

func (h *AdminHandler) AddUser(c *gin.Context) {
	name := c.PostForm("username")
	if err := h.store.AddUser(name, c.PostForm("password")); err != nil {
		if errors.Is(err, credstore.ErrEmptyField) {
			h.renderAdmin(c, http.StatusBadRequest, gin.H{
				"Error": "Username and password cannot be empty.",
			})
			return
		}
		h.logger.Errorf("add user failed: %v", err)
		h.renderAdmin(c, http.StatusInternalServerError, gin.H{"Error": "Could not add user."})
		return
	}
	h.renderAdmin(c, http.StatusOK, gin.H{"Notice": fmt.Sprintf("User %q added.", name)})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	name := c.PostForm("username")
	h.store.DeleteUser(name)
	h.renderAdmin(c, http.StatusOK, gin.H{"Notice": fmt.Sprintf("User %q deleted.", name)})
}

func (h *AdminHandler) ClearHistory(c *gin.Context) {
	n := h.registry.ClearAllHistories()
	h.logger.Infof("admin cleared chat history across %d sessions", n)
	h.renderAdmin(c, http.StatusOK, gin.H{"Notice": "Chat history cleared."})
}

func (h *AdminHandler) renderAdmin(c *gin.Context, status int, data gin.H) {
	data["Users"] = h.store.ListUsers()
	c.HTML(status, "admin.html", data)
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(RequireRole(session.RoleAdmin))
	{
		admin.POST("/users", h.AddUser)
		admin.POST("/users/delete", h.DeleteUser)
		admin.POST("/history/clear", h.ClearHistory)
	}
}
