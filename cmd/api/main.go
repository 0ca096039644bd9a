package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yashvi-chat/yashvi/internal/app"
	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/internal/server"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

// Entry point for the chat server.
// Loads configuration, wires all components and serves the page.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := Logger.New(cfg.Debug)
	logger.Info("Logger initialized")

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	server.InitializeRoutes(router, application.GetServerDependencies())

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router.Handler(),
	}
	go func() {
		logger.Infof("serving on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server exiting: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// 5 secs then cancel
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown err %v", err)
	}
	logger.Info("Shutdown system")
}
