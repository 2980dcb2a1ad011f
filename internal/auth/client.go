// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"net/http"

	"github.com/taibuivan/aidash/internal/gateway"
	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/session"
)

const loginFallback = "Login failed"

// Client is the dashboard side of the credential exchange.
type Client struct {
	gateway *gateway.Gateway
}

// NewClient wraps the gateway.
func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gateway: gw}
}

var _ session.Authenticator = (*Client)(nil)

/*
Login implements [session.Authenticator].

Description: Any response other than a success envelope carrying a token is
a rejection (INVALID_CREDENTIALS, server message verbatim, "Login failed"
when absent). A request that never completes is NETWORK_ERROR.
*/
func (client *Client) Login(ctx context.Context, username, password string) (*session.LoginResult, error) {
	response, err := client.gateway.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   LoginPath,
		JSON:   LoginRequest{Username: username, Password: password},
	})
	if err != nil {
		return nil, apperr.Network(err)
	}

	envelope, err := gateway.Decode[LoginData](response.Body)
	if err != nil {
		return nil, apperr.InvalidCredentials(loginFallback)
	}

	message := envelope.Message
	if message == "" {
		message = loginFallback
	}

	ok := response.StatusCode >= 200 && response.StatusCode < 300 && envelope.Success
	if !ok || envelope.Data == nil {
		return nil, apperr.InvalidCredentials(message)
	}
	if envelope.Data.Token == "" || !envelope.Data.User.Valid() {
		return nil, apperr.InvalidCredentials(loginFallback)
	}

	return &session.LoginResult{Token: envelope.Data.Token, User: envelope.Data.User}, nil
}
