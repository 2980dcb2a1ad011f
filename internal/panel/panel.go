// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package panel implements the request/response state machine every feature
panel shares.

A [Panel] owns exactly one {data, loading, error} slice. Panels never share
locks and the session controller never touches them; a panel is reset only by
its own [Panel.Reset].

Submit contract:

 1. Validation runs before dispatch. A failure sets the error, sends nothing.
 2. While a request is outstanding further submissions get [ErrBusy].
 3. Success replaces the data (or merges it, see [Action.Commit]) and clears
    the error. Failure sets the error and leaves the data untouched.
 4. Loading is cleared on every outcome.
*/
package panel

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/taibuivan/aidash/internal/platform/apperr"
)

// ErrBusy is returned while the panel's previous request is still outstanding.
var ErrBusy = errors.New("panel: request already in progress")

// State is a read-only copy of a panel's slice.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Error   string
}

// Action describes one submission.
//
// T is the panel's data, R what the remote call returns.
type Action[T, R any] struct {
	// Validate checks required fields against the input and the current data.
	// Its error message is displayed verbatim.
	Validate func(current T) error

	// Before edits the data as the request leaves (chat appends the user
	// message). It is kept even when the call fails.
	Before func(current T) T

	// Call performs the request. It receives the data as it was before
	// Before ran.
	Call func(ctx context.Context, previous T) (R, error)

	// Commit folds a successful result into the data.
	Commit func(current T, result R) T

	// Fallback is displayed when the failure carries no message.
	Fallback string

	// ClearError drops the previous error as the request leaves instead of
	// keeping it on screen until the outcome.
	ClearError bool
}

// Panel is one feature panel's state container.
type Panel[T any] struct {
	name   string
	logger *slog.Logger

	mu    sync.Mutex
	state State[T]
}

// New creates an idle panel. The name only appears in logs.
func New[T any](name string, logger *slog.Logger) *Panel[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel[T]{name: name, logger: logger}
}

// Name returns the panel's log name.
func (panel *Panel[T]) Name() string { return panel.name }

// Snapshot returns a copy of the current state. Slices inside Data are
// shared; callers must treat them as read-only.
func (panel *Panel[T]) Snapshot() State[T] {
	panel.mu.Lock()
	defer panel.mu.Unlock()

	return panel.state
}

// Submit runs an action whose call returns the panel's own data type.
// A nil Commit replaces the data with the result.
func (panel *Panel[T]) Submit(ctx context.Context, action Action[T, T]) error {
	if action.Commit == nil {
		action.Commit = func(_ T, result T) T { return result }
	}
	return Apply(ctx, panel, action)
}

// Apply is [Panel.Submit] for calls whose result type differs from the data.
func Apply[T, R any](ctx context.Context, panel *Panel[T], action Action[T, R]) error {

	// ── 1. Busy guard and validation ──────────────────────────────────────
	panel.mu.Lock()
	if panel.state.Loading {
		panel.mu.Unlock()
		return ErrBusy
	}
	if action.Validate != nil {
		if err := action.Validate(panel.state.Data); err != nil {
			panel.state.Error = apperr.Message(err, action.Fallback)
			panel.mu.Unlock()
			return err
		}
	}

	previous := panel.state.Data
	if action.Before != nil {
		panel.state.Data = action.Before(panel.state.Data)
		panel.state.HasData = true
	}
	if action.ClearError {
		panel.state.Error = ""
	}
	panel.state.Loading = true
	panel.mu.Unlock()

	// ── 2. Dispatch ───────────────────────────────────────────────────────
	result, err := action.Call(ctx, previous)

	// ── 3. Outcome ────────────────────────────────────────────────────────
	panel.mu.Lock()
	defer panel.mu.Unlock()

	panel.state.Loading = false
	if err != nil {
		panel.state.Error = apperr.Message(err, action.Fallback)
		attrs := []any{slog.String("panel", panel.name), slog.String("reason", panel.state.Error)}
		if ae := apperr.As(err); ae != nil {
			attrs = append(attrs, slog.String("code", ae.Code))
		}
		panel.logger.InfoContext(ctx, "panel_submit_failed", attrs...)
		return err
	}

	panel.state.Data = action.Commit(panel.state.Data, result)
	panel.state.HasData = true
	panel.state.Error = ""
	return nil
}

// Update edits the data outside a request (local user edits such as typing
// an answer). It is refused with [ErrBusy] while a request is outstanding.
func (panel *Panel[T]) Update(edit func(current T) T) error {
	panel.mu.Lock()
	defer panel.mu.Unlock()

	if panel.state.Loading {
		return ErrBusy
	}
	panel.state.Data = edit(panel.state.Data)
	panel.state.HasData = true
	return nil
}

// SetError records a locally detected failure without a request.
func (panel *Panel[T]) SetError(message string) {
	panel.mu.Lock()
	panel.state.Error = message
	panel.mu.Unlock()
}

// ClearError resets only the error.
func (panel *Panel[T]) ClearError() {
	panel.mu.Lock()
	panel.state.Error = ""
	panel.mu.Unlock()
}

// Reset returns the panel to its initial state. An outstanding request keeps
// running and its result is still committed when it lands.
func (panel *Panel[T]) Reset() {
	panel.mu.Lock()
	loading := panel.state.Loading
	panel.state = State[T]{Loading: loading}
	panel.mu.Unlock()
}
