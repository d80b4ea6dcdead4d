package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rukaro/HeartBreaker/internal/api"
	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/logging"
	"github.com/Rukaro/HeartBreaker/internal/version"
)

func main() {
	path := configPath()
	cfg := loadConfigOrExit(path)
	logging.Init(cfg.LogLevel)
	defer logging.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	repo := createRepositoryOrExit(cfg.DatabasePath)
	handler := api.NewGameHandler(repo, cfg.Rules, cfg.SolveTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background sweeper: games left untouched for game_ttl are deleted.
	startIdleSweeper(ctx, repo, cfg.GameTTL, cfg.SweepInterval)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server shutdown failed", err, nil)
		}
	}()

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr: cfg.ServerAddress,
		"version":              version.String(),
		"db_path":              cfg.DatabasePath,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("Failed to start server", err, nil)
	}
	logging.Info("Server stopped", nil)
}
