package app

import (
	"fmt"

	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/internal/constants/prompts"
	"github.com/yashvi-chat/yashvi/internal/domains/auth"
	"github.com/yashvi-chat/yashvi/internal/domains/conversation"
	"github.com/yashvi-chat/yashvi/internal/domains/credstore"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/internal/runtime/hosts"
	"github.com/yashvi-chat/yashvi/internal/server"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
	"github.com/yashvi-chat/yashvi/pkg/io/tts/gtts"
)

// App holds the process-lifetime services, wired once at startup.
type App struct {
	Config   *config.Settings
	Logger   *Logger.Logger
	Registry *session.Registry
	Store    *credstore.Store
	Gate     *auth.Gate
	Hosts    *hosts.Hosts
	Convo    *conversation.Service

	ServerDeps server.Dependencies
}

// NewApp creates the application with all dependencies properly wired.
func NewApp(cfg *config.Settings, logger *Logger.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}
	if err := app.setupDependencies(); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) setupDependencies() error {
	// credential realms, seeded once; admins never change after this
	a.Store = credstore.New(a.Logger)
	if err := a.Store.Seed(credstore.Users, a.Config.Auth.SeedUsers); err != nil {
		return fmt.Errorf("failed to seed users realm: %w", err)
	}
	if err := a.Store.Seed(credstore.Admins, a.Config.Auth.SeedAdmins); err != nil {
		return fmt.Errorf("failed to seed admins realm: %w", err)
	}
	a.Gate = auth.NewGate(a.Store, a.Logger)
	a.Registry = session.NewRegistry(a.Logger)

	if a.Config.Auth.JWTSecret == "" {
		a.Config.Auth.JWTSecret = "default-secret-key-change-in-production"
		a.Logger.Warn("JWT secret not configured, using default (not secure for production)")
	}

	a.Hosts = hosts.New(
		GeneratorFactory(a.Config.Generator, a.Logger),
		RecognizerFactory(a.Config.STT, a.Logger),
		a.Logger,
	)

	synth := gtts.New(a.Config.TTS.TLD, a.Config.TTS.BaseURL, a.Logger)
	a.Convo = conversation.New(
		a.Hosts,
		synth,
		prompts.SiblingPreamble,
		a.Config.Persona,
		a.Config.Generator,
		a.Config.TTS.Lang,
		a.Logger,
	)

	a.ServerDeps = server.NewServerDependencies(
		a.Config,
		a.Logger,
		a.Registry,
		a.Store,
		a.Gate,
		a.Convo,
		a.Hosts,
	)
	return nil
}

// GetServerDependencies returns the wired HTTP dependencies.
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}
