package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/internal/domains/auth"
	"github.com/yashvi-chat/yashvi/internal/domains/conversation"
	"github.com/yashvi-chat/yashvi/internal/domains/credstore"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/internal/handlers"
	"github.com/yashvi-chat/yashvi/internal/runtime/hosts"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

// Dependencies is everything the HTTP surface needs, wired by the app.
type Dependencies struct {
	Settings *config.Settings
	Logger   *Logger.Logger
	Registry *session.Registry
	Store    *credstore.Store
	Gate     *auth.Gate
	Convo    *conversation.Service
	Hosts    *hosts.Hosts
}

func NewServerDependencies(
	settings *config.Settings,
	logger *Logger.Logger,
	registry *session.Registry,
	store *credstore.Store,
	gate *auth.Gate,
	convo *conversation.Service,
	modelHosts *hosts.Hosts,
) Dependencies {
	return Dependencies{
		Settings: settings,
		Logger:   logger,
		Registry: registry,
		Store:    store,
		Gate:     gate,
		Convo:    convo,
		Hosts:    modelHosts,
	}
}

// InitializeRoutes mounts the page, auth, chat and admin surfaces.
func InitializeRoutes(router *gin.Engine, dep Dependencies) {
	router.LoadHTMLGlob("web/templates/*.html")

	ttl := time.Duration(dep.Settings.Auth.SessionTTLHours) * time.Hour
	router.Use(handlers.SessionMiddleware(dep.Registry, dep.Settings.Auth.JWTSecret, ttl, dep.Logger))

	handlers.NewPageHandler(dep.Store, dep.Logger).RegisterRoutes(router)
	handlers.NewAuthHandler(dep.Gate, dep.Logger).RegisterRoutes(router)
	handlers.NewChatHandler(dep.Convo, dep.Hosts, dep.Logger).RegisterRoutes(router)
	handlers.NewAdminHandler(dep.Store, dep.Registry, dep.Logger).RegisterRoutes(router)
}
