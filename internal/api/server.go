// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
stub handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary of the stub API.
  - It acts as the composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/stubapi are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/aidash/internal/auth"
	"github.com/taibuivan/aidash/internal/platform/config"
	"github.com/taibuivan/aidash/internal/platform/constants"
	"github.com/taibuivan/aidash/internal/platform/middleware"
	"github.com/taibuivan/aidash/internal/stubapi"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when every probe passes.
	Readiness http.HandlerFunc

	// Auth handles /api/auth (login, me).
	Auth *auth.Handler

	// HR handles /api/hr (CV, policy, technical).
	HR *stubapi.HRHandler

	// AutoSphere handles /api/autosphere (chat, bookings).
	AutoSphere *stubapi.AutoSphereHandler
}

// Options tunes the middleware chain.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// DefaultOptions are the production rate limits.
func DefaultOptions() Options {
	return Options{RateLimitRPS: constants.DefaultRateLimitRPS, RateLimitBurst: constants.DefaultRateLimitBurst}
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Stub, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers, opts Options) *Server {
	r := NewRouter(ctx, cfg, log, verifier, h, opts)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		},
	}
}

// NewRouter builds the routed handler without a listener, for tests.
func NewRouter(ctx context.Context, cfg *config.Stub, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(ctx, opts.RateLimitRPS, opts.RateLimitBurst).Middleware)
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/hr", h.HR.Routes())
		api.Mount("/autosphere", h.AutoSphere.Routes())
	})

	return r
}

// Handler exposes the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
