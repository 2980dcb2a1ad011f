// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/respond"
	"github.com/taibuivan/aidash/internal/platform/sec"
)

// ExpiredMessage is shown when an authenticated call is rejected with 401.
const ExpiredMessage = "Your session has expired. Please log in again."

/*
Call performs the request and decodes the envelope's data into T.

Description: Maps every outcome onto the client error taxonomy:
  - transport failure: NETWORK_ERROR
  - 401: AUTHORIZATION_EXPIRED (the session is already being torn down)
  - other non-2xx, success=false or no data: APPLICATION_ERROR, message
    verbatim, errors[] kept as details; fallback when the server sent no message

Parameters:
  - ctx: context.Context
  - gateway: *Gateway
  - request: Request
  - fallback: string (display message when the server sends none)

Returns:
  - T: Decoded data
  - error: *apperr.AppError
*/
func Call[T any](ctx context.Context, gateway *Gateway, request Request, fallback string) (T, error) {
	var zero T

	response, err := gateway.Do(ctx, request)
	if err != nil {
		if apperr.IsAppError(err) {
			return zero, err
		}
		return zero, apperr.Network(err)
	}

	if response.StatusCode == http.StatusUnauthorized {
		return zero, apperr.AuthorizationExpired(ExpiredMessage)
	}

	envelope, decodeErr := Decode[T](response.Body)
	if decodeErr != nil {
		return zero, apperr.Application(response.StatusCode, statusFallback(response.StatusCode, fallback))
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 || !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = fallback
		}
		return zero, apperr.Application(response.StatusCode, message, envelope.Errors...)
	}

	// A success envelope without data is still a failure to the panels.
	if envelope.Data == nil {
		message := envelope.Message
		if message == "" {
			message = fallback
		}
		return zero, apperr.Application(response.StatusCode, message)
	}
	return *envelope.Data, nil
}

// Decode parses a response body as an envelope carrying T.
func Decode[T any](body []byte) (*respond.Envelope[T], error) {
	envelope := &respond.Envelope[T]{}
	if err := json.Unmarshal(body, envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}

func statusFallback(status int, fallback string) string {
	if fallback == "" {
		return http.StatusText(status)
	}
	return fallback
}

// TokenExpiry reads the exp claim of a JWT without verifying it.
// Opaque or expiry-less tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	return sec.PeekExpiry(token)
}
