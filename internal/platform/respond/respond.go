// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond defines the remote API's JSON envelope and the HTTP
// response helpers used by the stub API handlers.
//
// # Architecture
//
// Every response (Success or Error) follows one envelope:
//
//	{"success": bool, "message": string, "data": T?, "errors": [string]?}
//
// The dashboard gateway decodes the same [Envelope] type, so the wire shape
// has a single definition.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/constants"
	"github.com/taibuivan/aidash/internal/platform/ctxutil"
)

// Envelope is the JSON envelope shared by every remote API response.
type Envelope[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in a success envelope.
func OK[T any](writer http.ResponseWriter, message string, data T) {
	JSON(writer, http.StatusOK, Envelope[T]{Success: true, Message: message, Data: &data})
}

// Created writes a 201 Created response with data wrapped in a success envelope.
func Created[T any](writer http.ResponseWriter, message string, data T) {
	JSON(writer, http.StatusCreated, Envelope[T]{Success: true, Message: message, Data: &data})
}

// Fail writes a success=false envelope with a 200 status. The remote API uses
// this shape for business-level refusals that are not transport errors.
func Fail(writer http.ResponseWriter, message string, reasons ...string) {
	JSON(writer, http.StatusOK, Envelope[struct{}]{Success: false, Message: message, Errors: reasons})
}

// Error converts any Go error into a standardized error envelope.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	status := appError.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	reasons := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		if detail.Field != "" {
			reasons = append(reasons, detail.Field+": "+detail.Message)
			continue
		}
		reasons = append(reasons, detail.Message)
	}

	JSON(writer, status, Envelope[struct{}]{
		Success: false,
		Message: appError.Message,
		Errors:  reasons,
	})
}
