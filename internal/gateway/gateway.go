// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gateway is the single outbound-HTTP chokepoint of the dashboard client.

Every call reads the bearer token fresh from the session store, attaches it
when present and observes the response for authorization failures.

Flow on 401:

 1. The store is cleared (compare-and-clear on the token that was sent), so
    stale credentials never outlive a rejected request even when nothing
    else is wired yet.
 2. The bound [UnauthorizedFunc] is notified on its own goroutine. An unbound
    gateway logs and carries on.

Every other status, and every transport failure, is returned to the caller
unmodified.
*/
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/aidash/internal/platform/config"
	"github.com/taibuivan/aidash/internal/platform/constants"
	"github.com/taibuivan/aidash/internal/platform/ctxutil"
)

// maxResponseBytes caps how much of a response body is buffered.
const maxResponseBytes = 16 << 20

// # Contracts

// TokenSource is the slice of the session store the gateway needs.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	ClearIfToken(ctx context.Context, token string) (bool, error)
}

// UnauthorizedFunc receives the token a rejected request carried.
type UnauthorizedFunc func(ctx context.Context, token string)

// File is one multipart file part.
type File struct {
	Name    string
	Content io.Reader
}

// Request describes one remote API call.
//
// JSON and multipart bodies are mutually exclusive; a request with Fields or
// Files is sent as multipart/form-data.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	JSON   any

	Fields map[string]string
	Files  map[string][]File
}

func (request Request) multipart() bool {
	return len(request.Fields) > 0 || len(request.Files) > 0
}

// Response is a fully buffered remote API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Token is the bearer token the request was sent with ("" when none).
	Token string
}

// # Gateway

// Gateway attaches credentials and reacts to authorization failures.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger

	mu           sync.RWMutex
	unauthorized UnauthorizedFunc

	// inflight tracks notification goroutines so tests and shutdown can drain them.
	inflight sync.WaitGroup
}

/*
New constructs a gateway against the configured API base URL.

Parameters:
  - cfg: *config.Client (APIBaseURL, APITimeout)
  - tokens: TokenSource (usually *session.Store)
  - logger: *slog.Logger

Returns:
  - *Gateway: Ready for use; Bind may be called later
*/
func New(cfg *config.Client, tokens TokenSource, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Gateway{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

// WithHTTPClient replaces the underlying client (tests, custom transports).
func (gateway *Gateway) WithHTTPClient(client *http.Client) *Gateway {
	gateway.httpClient = client
	return gateway
}

// Bind installs the session-expiry callback. Passing nil unbinds it.
func (gateway *Gateway) Bind(fn UnauthorizedFunc) {
	gateway.mu.Lock()
	gateway.unauthorized = fn
	gateway.mu.Unlock()
}

// Wait blocks until every pending unauthorized notification has run.
func (gateway *Gateway) Wait() {
	gateway.inflight.Wait()
}

/*
Do sends the request and returns the buffered response.

Description: The token is read from the store on every call. A 401 clears
the store and schedules the unauthorized notification before returning.

Returns:
  - *Response: Any HTTP status, including 401
  - error: Token source or transport failures (unclassified)
*/
func (gateway *Gateway) Do(ctx context.Context, request Request) (*Response, error) {

	// ── 1. Fresh credentials ──────────────────────────────────────────────
	token, err := gateway.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("gateway_token_read_failed: %w", err)
	}

	// ── 2. Build ──────────────────────────────────────────────────────────
	httpRequest, err := gateway.build(ctx, request)
	if err != nil {
		return nil, err
	}
	if token != "" {
		httpRequest.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+" "+token)
	}

	// ── 3. Send ───────────────────────────────────────────────────────────
	start := time.Now()
	httpResponse, err := gateway.httpClient.Do(httpRequest)
	if err != nil {
		gateway.logger.WarnContext(ctx, "gateway_transport_failed",
			slog.String("method", httpRequest.Method),
			slog.String("path", request.Path),
			slog.Any("error", err),
		)
		return nil, err
	}
	defer httpResponse.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResponse.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("gateway_read_body_failed: %w", err)
	}

	gateway.logger.DebugContext(ctx, "gateway_request_completed",
		slog.String("method", httpRequest.Method),
		slog.String("path", request.Path),
		slog.Int("status", httpResponse.StatusCode),
		slog.Duration("latency", time.Since(start)),
		slog.String("request_id", httpRequest.Header.Get(constants.HeaderXRequestID)),
	)

	// ── 4. Authorization failure ──────────────────────────────────────────
	if httpResponse.StatusCode == http.StatusUnauthorized {
		gateway.expire(ctx, token)
	}

	return &Response{
		StatusCode: httpResponse.StatusCode,
		Header:     httpResponse.Header,
		Body:       body,
		Token:      token,
	}, nil
}

func (gateway *Gateway) build(ctx context.Context, request Request) (*http.Request, error) {
	ctx, requestID := ctxutil.EnsureRequestID(ctx)

	target := gateway.baseURL + request.Path
	if len(request.Query) > 0 {
		target += "?" + request.Query.Encode()
	}

	method := request.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	contentType := ""
	switch {
	case request.multipart():
		buffer, boundaryType, err := encodeMultipart(request)
		if err != nil {
			return nil, err
		}
		body, contentType = buffer, boundaryType
	case request.JSON != nil:
		encoded, err := json.Marshal(request.JSON)
		if err != nil {
			return nil, fmt.Errorf("gateway_encode_failed: %w", err)
		}
		body, contentType = bytes.NewReader(encoded), constants.ContentJSON
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("gateway_build_request_failed: %w", err)
	}
	httpRequest.Header.Set(constants.HeaderAccept, constants.ContentJSON)
	httpRequest.Header.Set(constants.HeaderXRequestID, requestID)
	if contentType != "" {
		httpRequest.Header.Set(constants.HeaderContentType, contentType)
	}
	return httpRequest, nil
}

func encodeMultipart(request Request) (*bytes.Buffer, string, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	for field, value := range request.Fields {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", fmt.Errorf("gateway_multipart_failed: %w", err)
		}
	}
	for field, files := range request.Files {
		for _, file := range files {
			part, err := writer.CreateFormFile(field, file.Name)
			if err != nil {
				return nil, "", fmt.Errorf("gateway_multipart_failed: %w", err)
			}
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", fmt.Errorf("gateway_multipart_failed: %w", err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("gateway_multipart_failed: %w", err)
	}
	return buffer, writer.FormDataContentType(), nil
}

// expire clears the store and schedules the unauthorized notification.
func (gateway *Gateway) expire(ctx context.Context, token string) {
	cleared, err := gateway.tokens.ClearIfToken(ctx, token)
	if err != nil {
		gateway.logger.ErrorContext(ctx, "gateway_session_clear_failed", slog.Any("error", err))
	}
	gateway.logger.InfoContext(ctx, "gateway_authorization_expired", slog.Bool("store_cleared", cleared))

	gateway.mu.RLock()
	notify := gateway.unauthorized
	gateway.mu.RUnlock()

	if notify == nil {
		gateway.logger.DebugContext(ctx, "gateway_unauthorized_callback_unbound")
		return
	}

	// Detached from the request context: the caller may cancel as soon as Do returns.
	notifyCtx := context.WithoutCancel(ctx)
	gateway.inflight.Add(1)
	go func() {
		defer gateway.inflight.Done()
		defer func() {
			if recovered := recover(); recovered != nil {
				gateway.logger.ErrorContext(notifyCtx, "gateway_unauthorized_callback_panicked",
					slog.Any("panic", recovered),
				)
			}
		}()
		notify(notifyCtx, token)
	}()
}
