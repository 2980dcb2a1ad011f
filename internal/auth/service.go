// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/sec"
)

// InvalidCredentialsMessage is returned for unknown users and wrong passwords alike.
const InvalidCredentialsMessage = "Invalid username or password"

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	GenerateAccessToken(userID int, username string, role sec.Role, timeToLive time.Duration) (string, error)
}

// Service implements the stub API's login use case.
type Service struct {
	directory     Directory
	tokenProvider TokenProvider
	tokenTTL      time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(directory Directory, tokenProvider TokenProvider, tokenTTL time.Duration) *Service {
	return &Service{
		directory:     directory,
		tokenProvider: tokenProvider,
		tokenTTL:      tokenTTL,
	}
}

// Login validates credentials and issues a bearer token.
//
// # Returns
//   - [LoginData] with the token and the public profile.
//   - [apperr.Unauthorized] if credentials do not match.
//
// # Flow
//  1. Lookup account by username.
//  2. Verify password hash using Bcrypt.
//  3. Sign an HS256 access token with the configured TTL.
func (service *Service) Login(ctx context.Context, input LoginRequest) (*LoginData, error) {

	// ── 1. Fetch Account ──────────────────────────────────────────────────
	account, err := service.directory.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized(InvalidCredentialsMessage)
	}

	// ── 2. Security Verification ──────────────────────────────────────────
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized(InvalidCredentialsMessage)
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────
	token, err := service.tokenProvider.GenerateAccessToken(account.ID, account.Username, account.Role, service.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginData{Token: token, User: account.Profile()}, nil
}
