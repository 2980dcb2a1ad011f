// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/auth"
	"github.com/taibuivan/aidash/internal/gateway"
	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/config"
	"github.com/taibuivan/aidash/internal/platform/sec"
	"github.com/taibuivan/aidash/internal/session"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) (*auth.Service, *sec.TokenService) {
	t.Helper()
	directory, err := auth.NewMemoryDirectory([]auth.Seed{
		{Username: "hr.manager", Password: "password123", Role: sec.RoleHRManager},
		{Username: "alice", Password: "secret", Role: sec.RoleEmployee},
	})
	require.NoError(t, err)

	tokens, err := sec.NewTokenService("test-secret", "aidash.local")
	require.NoError(t, err)
	return auth.NewService(directory, tokens, time.Hour), tokens
}

func newClient(t *testing.T, handler http.Handler) *auth.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(session.NewMemoryArea(), quietLogger())
	gw := gateway.New(&config.Client{APIBaseURL: server.URL, APITimeout: 5 * time.Second}, store, quietLogger())
	return auth.NewClient(gw)
}

func stubRouter(service *auth.Service) http.Handler {
	router := chi.NewRouter()
	router.Mount("/api/auth", auth.NewHandler(service).Routes())
	return router
}

/*
TestParseSeed keeps spaces inside role names.
*/
func TestParseSeed(t *testing.T) {
	seed, err := auth.ParseSeed("hr.manager:password123:HR Manager")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleHRManager, seed.Role)
	assert.Equal(t, "password123", seed.Password)

	_, err = auth.ParseSeed("bob:pw:Admin")
	assert.Error(t, err)
	_, err = auth.ParseSeed("bob")
	assert.Error(t, err)
}

/*
TestService_Login issues a verifiable token for valid credentials only.
*/
func TestService_Login(t *testing.T) {
	service, tokens := newService(t)
	ctx := context.Background()

	data, err := service.Login(ctx, auth.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", data.User.Username)

	claims, err := tokens.VerifyToken(data.Token)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleEmployee, claims.Role)
	assert.Equal(t, data.User.ID, claims.UserID)

	_, err = service.Login(ctx, auth.LoginRequest{Username: "alice", Password: "wrong"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	_, err = service.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "secret"})
	assert.Equal(t, auth.InvalidCredentialsMessage, err.Error())
}

/*
TestClient_Login round-trips through the HTTP handler.
*/
func TestClient_Login(t *testing.T) {
	service, _ := newService(t)
	client := newClient(t, stubRouter(service))

	result, err := client.Login(context.Background(), "hr.manager", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, sec.RoleHRManager, result.User.Role)

	_, err = client.Login(context.Background(), "hr.manager", "nope")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	assert.Equal(t, auth.InvalidCredentialsMessage, err.Error())
}

/*
TestClient_LoginRejections classifies malformed and refused responses.
*/
func TestClient_LoginRejections(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"refusal_without_message", 200, `{"success":false}`, "Login failed"},
		{"refusal_with_message", 200, `{"success":false,"message":"Account locked"}`, "Account locked"},
		{"not_json", 502, `<html>bad gateway</html>`, "Login failed"},
		{"unknown_role", 200, `{"success":true,"data":{"token":"t","user":{"id":1,"username":"x","role":"Admin"}}}`, "Login failed"},
		{"missing_token", 200, `{"success":true,"data":{"user":{"id":1,"username":"x","role":"Employee"}}}`, "Login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))

			_, err := client.Login(context.Background(), "x", "y")
			assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

/*
TestClient_LoginNetworkError classifies an unreachable API.
*/
func TestClient_LoginNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	store := session.NewStore(session.NewMemoryArea(), quietLogger())
	gw := gateway.New(&config.Client{APIBaseURL: base, APITimeout: time.Second}, store, quietLogger())

	_, err := auth.NewClient(gw).Login(context.Background(), "alice", "secret")
	assert.True(t, apperr.HasCode(err, apperr.CodeNetwork))
}

/*
TestController_WithClient drives the lifecycle against the real endpoint.
*/
func TestController_WithClient(t *testing.T) {
	service, _ := newService(t)
	server := httptest.NewServer(stubRouter(service))
	t.Cleanup(server.Close)

	ctx := context.Background()
	store := session.NewStore(session.NewMemoryArea(), quietLogger())
	gw := gateway.New(&config.Client{APIBaseURL: server.URL, APITimeout: 5 * time.Second}, store, quietLogger())
	controller := session.NewController(store, session.NewState(), auth.NewClient(gw), quietLogger())
	gw.Bind(controller.HandleUnauthorized)

	require.NoError(t, controller.Login(ctx, "alice", "secret"))
	assert.Equal(t, "alice", controller.State().Snapshot().User.Username)

	record, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, controller.State().Snapshot().Token, record.Token)
}
