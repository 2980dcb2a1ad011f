// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/aidash/internal/platform/middleware"
	requestutil "github.com/taibuivan/aidash/internal/platform/request"
	"github.com/taibuivan/aidash/internal/platform/respond"
	"github.com/taibuivan/aidash/internal/platform/validate"
)

// Handler implements the stub API's authentication endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login : Authenticates and returns a JWT.
//   - GET  /me    : Echoes the verified claims (requires a token).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.With(middleware.RequireAuth).Get("/me", handler.me)

	return router
}

// login handles POST /api/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with token and user.
//   - Writes HTTP 401 Unauthorized for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Payload Extraction ─────────────────────────────────────────────
	var input LoginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		RequiredMsg("username", input.Username, "Username is required").
		RequiredMsg("password", input.Password, "Password is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────
	data, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────
	respond.OK(writer, "Login successful", *data)
}

// me handles GET /api/auth/me requests.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	account, err := handler.authService.directory.FindByID(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "OK", account.Profile())
}
