package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashvi-chat/yashvi/internal/domains/credstore"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

// PageHandler renders the single page: one of the three views decided by
// the session's state machine.
type PageHandler struct {
	store  *credstore.Store
	logger *Logger.Logger
}

func NewPageHandler(store *credstore.Store, logger *Logger.Logger) *PageHandler {
	return &PageHandler{store: store, logger: logger}
}

func (h *PageHandler) Home(c *gin.Context) {
	sess := CurrentSession(c)
	switch sess.View() {
	case session.ViewChat:
		c.HTML(http.StatusOK, "chat.html", gin.H{
			"History": sess.History(),
		})
	case session.ViewAdmin:
		c.HTML(http.StatusOK, "admin.html", gin.H{
			"Users": h.store.ListUsers(),
		})
	default:
		c.HTML(http.StatusOK, "login.html", gin.H{})
	}
}

func (h *PageHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Home)
}
