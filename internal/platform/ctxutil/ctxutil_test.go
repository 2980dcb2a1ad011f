// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/platform/ctxutil"
	"github.com/taibuivan/aidash/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "test-request-id")
	assert.Equal(t, "test-request-id", ctxutil.GetRequestID(ctx))
}

/*
TestContext_EnsureRequestID keeps an existing ID and mints one otherwise.
*/
func TestContext_EnsureRequestID(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "fixed")
	_, id := ctxutil.EnsureRequestID(ctx)
	assert.Equal(t, "fixed", id)

	minted, id := ctxutil.EnsureRequestID(context.Background())
	assert.Len(t, id, 36)
	assert.Equal(t, id, ctxutil.GetRequestID(minted))
}

/*
TestContext_LoggerOr prefers the request logger, then the fallback.
*/
func TestContext_LoggerOr(t *testing.T) {
	requestLogger := slog.New(slog.NewJSONHandler(io.Discard, nil)).With(slog.String("request_id", "r-1"))
	fallback := slog.New(slog.NewJSONHandler(io.Discard, nil))
	withLogger := ctxutil.WithLogger(context.Background(), requestLogger)

	assert.Same(t, requestLogger, ctxutil.LoggerOr(withLogger, fallback))
	assert.Same(t, fallback, ctxutil.LoggerOr(context.Background(), fallback))
	assert.Same(t, slog.Default(), ctxutil.LoggerOr(context.Background(), nil))
	assert.Same(t, requestLogger, ctxutil.GetLogger(withLogger))
}

/*
TestContext_AuthUser round-trips the verified claims of a stub API request.
*/
func TestContext_AuthUser(t *testing.T) {
	assert.Nil(t, ctxutil.GetAuthUser(context.Background()))

	ctx := ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: 1, Username: "hr.manager", Role: sec.RoleHRManager})
	claims := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "hr.manager", claims.Username)
	assert.Equal(t, sec.RoleHRManager, claims.Role)
}
