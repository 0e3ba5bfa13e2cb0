package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/bankist/internal/clock"
	"github.com/josh-kwaku/bankist/internal/config"
	"github.com/josh-kwaku/bankist/internal/handler"
	"github.com/josh-kwaku/bankist/internal/logging"
	"github.com/josh-kwaku/bankist/internal/seed"
	"github.com/josh-kwaku/bankist/internal/service"
)

//go:embed openapi.yaml
var openAPISpec []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init("bankist-api", cfg.LogLevel, cfg.AppEnv)

	accounts, err := seed.Accounts()
	if err != nil {
		slog.Error("failed to seed accounts", "error", err)
		os.Exit(1)
	}

	bank, err := service.NewBankSession(accounts, clock.NewReal(), logger, service.Settings{
		TimeoutSeconds: cfg.SessionTimeout,
		LoanDelay:      cfg.LoanDelay(),
	})
	if err != nil {
		slog.Error("failed to start bank session", "error", err)
		os.Exit(1)
	}
	bank.OnExpired(func(username string) {
		logger.Info("session expired, waiting for login", "username", username)
	})

	sessions := handler.NewSessionHandler(bank, cfg.SessionSecret, cfg.TokenExpiry())

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(sessions, bank, cfg.SessionSecret, openAPISpec),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr, "accounts", bank.Usernames())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	bank.Logout()
	slog.Info("server stopped")
}
