// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package panel_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/panel"
	"github.com/taibuivan/aidash/internal/platform/apperr"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func returning(value string, err error) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) { return value, err }
}

/*
TestSubmit_ValidationNeverDispatches sets the message and skips the call.
*/
func TestSubmit_ValidationNeverDispatches(t *testing.T) {
	p := panel.New[string]("cv", quietLogger())
	called := false

	err := p.Submit(context.Background(), panel.Action[string, string]{
		Validate: func(string) error { return apperr.ValidationError("Job description is required") },
		Call: func(context.Context, string) (string, error) {
			called = true
			return "", nil
		},
	})

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.False(t, called)
	assert.Equal(t, panel.State[string]{Error: "Job description is required"}, p.Snapshot())
}

/*
TestSubmit_LastSuccessWins and failures never clobber data.
*/
func TestSubmit_LastSuccessWins(t *testing.T) {
	ctx := context.Background()
	p := panel.New[string]("policy", quietLogger())

	require.NoError(t, p.Submit(ctx, panel.Action[string, string]{Call: returning("first", nil)}))
	require.Error(t, p.Submit(ctx, panel.Action[string, string]{
		Call:     returning("", apperr.Application(500, "")),
		Fallback: "Failed to get answer",
	}))

	state := p.Snapshot()
	assert.Equal(t, "first", state.Data)
	assert.True(t, state.HasData)
	assert.Equal(t, "Failed to get answer", state.Error)
	assert.False(t, state.Loading)

	require.NoError(t, p.Submit(ctx, panel.Action[string, string]{Call: returning("second", nil)}))
	assert.Equal(t, panel.State[string]{Data: "second", HasData: true}, p.Snapshot())
}

/*
TestSubmit_BusyGuard rejects a second submission while one is outstanding.
*/
func TestSubmit_BusyGuard(t *testing.T) {
	p := panel.New[string]("chat", quietLogger())
	entered := make(chan struct{})
	release := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- p.Submit(context.Background(), panel.Action[string, string]{
			Call: func(context.Context, string) (string, error) {
				close(entered)
				<-release
				return "reply", nil
			},
		})
	}()
	<-entered

	assert.True(t, p.Snapshot().Loading)
	assert.ErrorIs(t, p.Submit(context.Background(), panel.Action[string, string]{Call: returning("x", nil)}), panel.ErrBusy)
	assert.ErrorIs(t, p.Update(func(s string) string { return s }), panel.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, "reply", p.Snapshot().Data)
}

/*
TestApply_BeforeAndCommit models a transcript append.
*/
func TestApply_BeforeAndCommit(t *testing.T) {
	ctx := context.Background()
	p := panel.New[[]string]("chat", quietLogger())

	var sentHistory []string
	action := func(message string, err error) panel.Action[[]string, string] {
		return panel.Action[[]string, string]{
			Before: func(current []string) []string { return append(current, "user: "+message) },
			Call: func(_ context.Context, previous []string) (string, error) {
				sentHistory = previous
				return "assistant: ok", err
			},
			Commit:   func(current []string, reply string) []string { return append(current, reply) },
			Fallback: "Failed to get response",
		}
	}

	require.NoError(t, panel.Apply(ctx, p, action("hi", nil)))
	assert.Empty(t, sentHistory)

	require.Error(t, panel.Apply(ctx, p, action("again", errors.New(""))))
	assert.Equal(t, []string{"user: hi", "assistant: ok"}, sentHistory)

	state := p.Snapshot()
	assert.Equal(t, []string{"user: hi", "assistant: ok", "user: again"}, state.Data)
	assert.Equal(t, "Failed to get response", state.Error)
}

/*
TestPanels_IndependentErrors runs two failing panels concurrently.
*/
func TestPanels_IndependentErrors(t *testing.T) {
	ctx := context.Background()
	cv := panel.New[string]("cv", quietLogger())
	bookings := panel.New[string]("bookings", quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = cv.Submit(ctx, panel.Action[string, string]{Call: returning("", apperr.Application(500, "Evaluation failed"))})
		}()
		go func() {
			defer wg.Done()
			_ = bookings.Submit(ctx, panel.Action[string, string]{Call: returning("", apperr.Network(errors.New("connection reset")))})
		}()
	}
	wg.Wait()

	assert.Equal(t, "Evaluation failed", cv.Snapshot().Error)
	assert.Equal(t, "connection reset", bookings.Snapshot().Error)
}

/*
TestReset_ClearErrorAndReset are explicit user actions.
*/
func TestReset_ClearErrorAndReset(t *testing.T) {
	ctx := context.Background()
	p := panel.New[string]("technical", quietLogger())
	require.NoError(t, p.Submit(ctx, panel.Action[string, string]{Call: returning("q", nil)}))
	p.SetError("Please provide answers for all questions")

	p.ClearError()
	assert.Equal(t, panel.State[string]{Data: "q", HasData: true}, p.Snapshot())

	p.Reset()
	assert.Equal(t, panel.State[string]{}, p.Snapshot())
}
