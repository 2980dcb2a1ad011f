// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for aidash.

It provides a rich error type shared by the dashboard client and the stub
remote API, so that a failure keeps its classification from the point it is
detected to the panel that displays it.

Client taxonomy:

  - VALIDATION_ERROR: required-field checks, never reaches the network.
  - INVALID_CREDENTIALS: the remote API rejected a login.
  - AUTHORIZATION_EXPIRED: a previously valid session token was rejected.
  - NETWORK_ERROR: the request could not complete.
  - APPLICATION_ERROR: the remote API returned success=false for a non-auth reason.

Only AUTHORIZATION_EXPIRED propagates beyond its originating panel: it tears
down the session. Everything else is displayed where it happened.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAuthorizationExpired = "AUTHORIZATION_EXPIRED"
	CodeNetwork              = "NETWORK_ERROR"
	CodeApplication          = "APPLICATION_ERROR"

	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is the canonical error type for aidash.
//
// It carries an HTTP status code (zero for failures that never produced a
// response), a machine-readable code, a display-safe message, and an optional
// slice of field-level or server-reported details.
//
// # Security
//
// The Cause field is for logging only and is never rendered to the user.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NETWORK_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to display.
	Message string `json:"message"`
	// HTTPStatus is the response status code, or 0 when there was none.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors or the envelope's errors[].
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level failure.
//
// Server-reported errors that name no field carry an empty Field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the display-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Taxonomy

// ValidationError creates an [AppError] for client-side input checks.
//
// Example:
//
//	apperr.ValidationError("Job description is required")
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidCredentials creates an [AppError] for a login the remote API rejected.
func InvalidCredentials(msg string) *AppError {
	return &AppError{
		Code:       CodeInvalidCredentials,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// AuthorizationExpired creates an [AppError] for a session token the remote
// API no longer accepts.
func AuthorizationExpired(msg string) *AppError {
	return &AppError{
		Code:       CodeAuthorizationExpired,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Network creates an [AppError] for a request that could not complete.
// The transport error is kept as the cause.
func Network(cause error) *AppError {
	msg := "Network Error"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code:    CodeNetwork,
		Message: msg,
		Cause:   cause,
	}
}

// Application creates an [AppError] for a non-auth failure reported by the
// remote API. The message is passed through verbatim.
func Application(status int, msg string, reasons ...string) *AppError {
	ae := &AppError{
		Code:       CodeApplication,
		Message:    msg,
		HTTPStatus: status,
	}
	for _, reason := range reasons {
		ae.Details = append(ae.Details, FieldError{Message: reason})
	}
	return ae
}

// # Server Errors (stub remote API)

// NotFound creates a 404 [AppError] for a named resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// Message returns the display message for err. Non-[AppError] values fall
// back to their Error() text, and a nil error yields the fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if ae := As(err); ae != nil && ae.Message != "" {
		return ae.Message
	}
	if text := err.Error(); text != "" {
		return text
	}
	return fallback
}
