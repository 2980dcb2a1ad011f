// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app is the dashboard's composition root.

It builds every component in a fixed order so the session is settled before
any panel can issue a request:

 1. Storage area (memory, file or redis) and the persistent [session.Store].
 2. [session.State] and the request [gateway.Gateway] reading tokens from the store.
 3. [session.Controller] with the authentication client; the gateway is bound
    to the controller's unauthorized hook.
 4. Hydration of the state from the store.
 5. Navigation table and the feature panels.
 6. A session observer that resets every panel when the session ends.

There is no package-level state: two [Dashboard] values never share a session.
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/aidash/internal/auth"
	"github.com/taibuivan/aidash/internal/autosphere"
	"github.com/taibuivan/aidash/internal/gateway"
	"github.com/taibuivan/aidash/internal/hr"
	"github.com/taibuivan/aidash/internal/nav"
	"github.com/taibuivan/aidash/internal/platform/config"
	"github.com/taibuivan/aidash/internal/platform/constants"
	redisstore "github.com/taibuivan/aidash/internal/platform/redis"
	"github.com/taibuivan/aidash/internal/session"
)

// HRPanels groups the HR AI Platform panels.
type HRPanels struct {
	CV        *hr.CVPanel
	Policy    *hr.PolicyPanel
	Technical *hr.TechnicalPanel
}

// AutoSpherePanels groups the AutoSphere Motors panels.
type AutoSpherePanels struct {
	Chat     *autosphere.ChatPanel
	Bookings *autosphere.BookingsPanel
}

// Dashboard is one fully wired client.
type Dashboard struct {
	Config  *config.Client
	Logger  *slog.Logger
	Store   *session.Store
	Session *session.Controller
	Gateway *gateway.Gateway

	Navigation []nav.Entry
	HR         HRPanels
	AutoSphere AutoSpherePanels

	closers []func() error
}

// Option customises [New].
type Option func(*options)

type options struct {
	area session.Area
}

// WithArea replaces the configured storage backend.
func WithArea(area session.Area) Option {
	return func(o *options) { o.area = area }
}

/*
New wires a dashboard from configuration.

Returns:
  - *Dashboard: hydrated and ready
  - error: wrapped as app_<step>_failed
*/
func New(ctx context.Context, cfg *config.Client, logger *slog.Logger, opts ...Option) (*Dashboard, error) {
	var settings options
	for _, opt := range opts {
		opt(&settings)
	}

	dashboard := &Dashboard{Config: cfg, Logger: logger}

	// ── 1. Storage ────────────────────────────────────────────────────────
	area := settings.area
	if area == nil {
		var err error
		area, err = dashboard.openArea(ctx)
		if err != nil {
			return nil, fmt.Errorf("app_open_area_failed: %w", err)
		}
	}
	dashboard.Store = session.NewStore(area, logger)

	// ── 2. State and gateway ──────────────────────────────────────────────
	state := session.NewState()
	dashboard.Gateway = gateway.New(cfg, dashboard.Store, logger)

	// ── 3. Controller ─────────────────────────────────────────────────────
	dashboard.Session = session.NewController(dashboard.Store, state, auth.NewClient(dashboard.Gateway), logger)
	dashboard.Gateway.Bind(dashboard.Session.HandleUnauthorized)

	// ── 4. Hydrate ────────────────────────────────────────────────────────
	if err := dashboard.Session.Hydrate(ctx); err != nil {
		_ = dashboard.Close()
		return nil, fmt.Errorf("app_hydrate_failed: %w", err)
	}

	// ── 5. Navigation and panels ──────────────────────────────────────────
	entries, err := nav.LoadFile(cfg.NavFile)
	if err != nil {
		_ = dashboard.Close()
		return nil, fmt.Errorf("app_load_navigation_failed: %w", err)
	}
	dashboard.Navigation = entries

	hrClient := hr.NewClient(dashboard.Gateway)
	dashboard.HR = HRPanels{
		CV:        hr.NewCVPanel(hrClient, logger),
		Policy:    hr.NewPolicyPanel(hrClient, logger),
		Technical: hr.NewTechnicalPanel(hrClient, logger),
	}

	autosphereClient := autosphere.NewClient(dashboard.Gateway)
	dashboard.AutoSphere = AutoSpherePanels{
		Chat:     autosphere.NewChatPanel(autosphereClient, logger),
		Bookings: autosphere.NewBookingsPanel(autosphereClient, logger),
	}

	// ── 6. Session observer ───────────────────────────────────────────────
	dashboard.watchSession(state)

	logger.DebugContext(ctx, "dashboard_ready",
		slog.String("backend", cfg.SessionBackend),
		slog.Bool("authenticated", state.IsAuthenticated()),
	)
	return dashboard, nil
}

// openArea builds the configured storage backend.
func (dashboard *Dashboard) openArea(ctx context.Context) (session.Area, error) {
	cfg := dashboard.Config

	switch cfg.SessionBackend {
	case config.BackendMemory:
		return session.NewMemoryArea(), nil

	case config.BackendFile:
		path, err := SessionFilePath(cfg.SessionDir, cfg.SessionProfile)
		if err != nil {
			return nil, err
		}
		return session.NewFileArea(path), nil

	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, dashboard.Logger)
		if err != nil {
			return nil, err
		}
		dashboard.closers = append(dashboard.closers, client.Close)
		return session.NewRedisArea(client, cfg.SessionProfile, cfg.SessionTTL), nil

	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

// SessionFilePath is <dir>/<profile>/session.json. An empty dir resolves to
// the user config directory.
func SessionFilePath(dir, profile string) (string, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve session directory: %w", err)
		}
		dir = filepath.Join(base, constants.AppName)
	}
	return filepath.Join(dir, profile, constants.SessionFileName), nil
}

// Menu is the navigation the current user sees, grouped by section.
func (dashboard *Dashboard) Menu() []nav.Group {
	snapshot := dashboard.Session.State().Snapshot()
	return nav.Grouped(nav.Visible(dashboard.Navigation, snapshot.User))
}

// Resolve applies the route guard to path for the current session.
func (dashboard *Dashboard) Resolve(path string) (string, error) {
	return nav.Guard(dashboard.Navigation, dashboard.Session.State().Snapshot(), path)
}

// watchSession resets the panels on every authenticated to anonymous
// transition (logout or a rejected token), so no panel data outlives the user
// who requested it.
func (dashboard *Dashboard) watchSession(state *session.State) {
	var mu sync.Mutex
	signedIn := state.IsAuthenticated()

	unsubscribe := state.Subscribe(func(snapshot session.Snapshot) {
		mu.Lock()
		defer mu.Unlock()

		if signedIn && !snapshot.IsAuthenticated {
			dashboard.ResetPanels()
			dashboard.Logger.Info("dashboard_panels_reset", slog.String("phase", snapshot.Phase.String()))
		}
		signedIn = snapshot.IsAuthenticated
	})
	dashboard.closers = append(dashboard.closers, func() error {
		unsubscribe()
		return nil
	})
}

// ResetPanels clears every panel, as happens when the signed-in user changes.
func (dashboard *Dashboard) ResetPanels() {
	dashboard.HR.CV.Reset()
	dashboard.HR.Policy.Reset()
	dashboard.HR.Technical.Reset()
	dashboard.AutoSphere.Chat.Reset()
	dashboard.AutoSphere.Bookings.Reset()
}

// Close waits for pending session notifications and releases backend connections.
func (dashboard *Dashboard) Close() error {
	if dashboard.Gateway != nil {
		dashboard.Gateway.Wait()
	}
	var errs []error
	for _, closer := range dashboard.closers {
		if err := closer(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	dashboard.closers = nil
	return errors.Join(errs...)
}

// NewLogger is the dashboard's JSON logger tagged with the app name.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}
