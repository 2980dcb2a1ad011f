// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/validate"
)

// # Contracts & Types

var (
	// ErrLoginInProgress is returned when Login is called while another
	// login is still pending.
	ErrLoginInProgress = errors.New("session: login already in progress")

	// ErrSessionActive is returned when Login is called on an authenticated session.
	ErrSessionActive = errors.New("session: already authenticated")
)

// LoginResult is what a successful authentication call yields.
type LoginResult struct {
	Token string
	User  User
}

// Authenticator performs the remote credential exchange.
//
// Implementations classify failures as INVALID_CREDENTIALS (the remote API
// refused) or NETWORK_ERROR (the request could not complete).
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// Controller is the Session Lifecycle Controller.
//
// It is the only component that writes to the [Store] and the [State].
type Controller struct {
	store  *Store
	state  *State
	auth   Authenticator
	logger *slog.Logger

	// loginMu guards pending; held only for the check-and-set.
	loginMu sync.Mutex
	pending bool
}

// NewController wires the controller to its store, state and authenticator.
func NewController(store *Store, state *State, authenticator Authenticator, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:  store,
		state:  state,
		auth:   authenticator,
		logger: logger,
	}
}

// State returns the read-only container consumers should observe.
func (controller *Controller) State() *State { return controller.state }

// # Startup

/*
Hydrate loads the persisted record into the state container.

Description: Must run before the first read of [State]. A partial or corrupt
record is cleared by the store and the session starts anonymous.

Returns:
  - error: Storage failures (the session stays anonymous)
*/
func (controller *Controller) Hydrate(ctx context.Context) error {
	record, err := controller.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("session_hydrate_failed: %w", err)
	}
	if record == nil {
		return nil
	}

	controller.state.setAuthenticated(record.Token, record.User)
	controller.logger.DebugContext(ctx, "session_hydrated",
		slog.String("username", record.User.Username),
		slog.String("role", record.User.Role.String()),
	)
	return nil
}

// # Authentication Flow

/*
Login exchanges credentials for a session.

Description: Anonymous -> Authenticating -> Authenticated | AuthenticationFailed.
On success the store is written first and the state second; a storage failure
leaves the session anonymous.

Parameters:
  - ctx: context.Context
  - username: string
  - password: string

Returns:
  - error: VALIDATION_ERROR, INVALID_CREDENTIALS, NETWORK_ERROR,
    ErrLoginInProgress, ErrSessionActive or storage failures
*/
func (controller *Controller) Login(ctx context.Context, username, password string) error {

	// ── 1. Single pending login ───────────────────────────────────────────
	if controller.state.IsAuthenticated() {
		return ErrSessionActive
	}
	if !controller.beginLogin() {
		return ErrLoginInProgress
	}
	defer controller.endLogin()

	// ── 2. Required fields ────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		RequiredMsg("username", username, "Username is required").
		RequiredMsg("password", password, "Password is required")
	if err := validator.FirstErr(); err != nil {
		controller.state.setFailed(err.Error())
		return err
	}

	controller.state.setAuthenticating()

	// ── 3. Remote exchange ────────────────────────────────────────────────
	result, err := controller.auth.Login(ctx, username, password)
	if err != nil {
		message := apperr.Message(err, "Login failed")
		controller.state.setFailed(message)
		controller.logger.InfoContext(ctx, "session_login_rejected",
			slog.String("username", username),
			slog.String("reason", message),
		)
		return err
	}

	// ── 4. Commit storage then memory ─────────────────────────────────────
	if err := controller.store.Put(ctx, result.Token, result.User); err != nil {
		controller.state.setFailed("Login failed")
		controller.logger.ErrorContext(ctx, "session_commit_failed", slog.Any("error", err))
		return fmt.Errorf("session_login_commit_failed: %w", err)
	}
	controller.state.setAuthenticated(result.Token, result.User)

	controller.logger.InfoContext(ctx, "session_login_succeeded",
		slog.Int("user_id", result.User.ID),
		slog.String("role", result.User.Role.String()),
	)
	return nil
}

/*
Logout clears the session from storage and memory.

Description: Always succeeds from the caller's perspective; storage failures
are logged. On a session that is not authenticated the state is untouched.
*/
func (controller *Controller) Logout(ctx context.Context) {
	controller.teardown(ctx, "explicit_logout")
}

/*
HandleUnauthorized is the gateway's session-expiry hook.

Description: Produces the same end state as Logout. It is a no-op when the
session is not authenticated, and when the rejected token is not the current
session token: a late response to a request from an earlier session, or to
one sent anonymously (token "") before this session began.

Parameters:
  - ctx: context.Context
  - token: string (the token the rejected request carried; may be "")
*/
func (controller *Controller) HandleUnauthorized(ctx context.Context, token string) {
	snapshot := controller.state.Snapshot()
	if !snapshot.IsAuthenticated {
		return
	}
	if token != snapshot.Token {
		controller.logger.DebugContext(ctx, "session_stale_unauthorized_ignored")
		return
	}
	controller.teardown(ctx, "authorization_expired")
}

// ClearError resets only the error field.
func (controller *Controller) ClearError() {
	controller.state.clearError()
}

func (controller *Controller) teardown(ctx context.Context, reason string) {
	if err := controller.store.Clear(ctx); err != nil {
		controller.logger.ErrorContext(ctx, "session_clear_failed",
			slog.String("reason", reason),
			slog.Any("error", err),
		)
	}

	if !controller.state.IsAuthenticated() {
		return
	}
	controller.state.setAnonymous()
	controller.logger.InfoContext(ctx, "session_ended", slog.String("reason", reason))
}

func (controller *Controller) beginLogin() bool {
	controller.loginMu.Lock()
	defer controller.loginMu.Unlock()

	if controller.pending {
		return false
	}
	controller.pending = true
	return true
}

func (controller *Controller) endLogin() {
	controller.loginMu.Lock()
	controller.pending = false
	controller.loginMu.Unlock()
}
