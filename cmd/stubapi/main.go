// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command stubapi serves a deterministic stand-in for the dashboard's remote API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from .env and environment variables.
//  3. Seed the user directory.
//  4. Create the token service.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/aidash/internal/api"
	"github.com/taibuivan/aidash/internal/auth"
	"github.com/taibuivan/aidash/internal/platform/config"
	"github.com/taibuivan/aidash/internal/platform/constants"
	"github.com/taibuivan/aidash/internal/platform/sec"
	"github.com/taibuivan/aidash/internal/stubapi"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(false)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	must(log, config.LoadDotEnv(), "load .env")
	cfg, err := config.LoadStub()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(true)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Int("seeded_users", len(cfg.Users)),
	)

	// ── 3. User Directory ─────────────────────────────────────────────────
	seeds := make([]auth.Seed, 0, len(cfg.Users))
	for _, entry := range cfg.Users {
		seed, err := auth.ParseSeed(entry)
		must(log, err, "parse STUB_USERS")
		seeds = append(seeds, seed)
	}
	directory, err := auth.NewMemoryDirectory(seeds)
	must(log, err, "seed user directory")

	// ── 4. Token Service ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	// ── 5. Health and Domain Wiring ───────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers([]api.Probe{{
		Name: "token_signing",
		Check: func(context.Context) error {
			token, err := tokens.GenerateAccessToken(0, "probe", sec.RoleEmployee, time.Minute)
			if err != nil {
				return err
			}
			if _, err := tokens.VerifyToken(token); err != nil {
				return fmt.Errorf("probe token rejected: %w", err)
			}
			return nil
		},
	}}, log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(auth.NewService(directory, tokens, cfg.TokenTTL)),
		HR:         stubapi.NewHRHandler(stubapi.NewPolicyLibrary(), log),
		AutoSphere: stubapi.NewAutoSphereHandler(stubapi.NewBookingBook(nil), log),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	server := api.NewServer(rootCtx, cfg, log, tokens, handlers, api.DefaultOptions())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName+"-stub"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
