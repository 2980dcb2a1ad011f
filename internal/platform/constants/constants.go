// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines storage keys, headers, timeouts and rate limits that are shared
between the dashboard client and the stub remote API.

Categories:

  - Session Storage: the two keys of the persisted session record.
  - Wire: header names and the bearer scheme.
  - Server Timing: Read/Write/Idle timeouts for the stub HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "aidash"
	AppVersion = "0.1.0-dev"
)

// # Session Storage

const (
	// TokenStorageKey holds the bearer token.
	TokenStorageKey = "jwt_token"

	// UserStorageKey holds the serialized user record.
	UserStorageKey = "user_data"

	// RedisPrefixSession namespaces session hashes per profile.
	RedisPrefixSession = "aidash:session:"

	// SessionFileName is the per-profile document used by the file backend.
	SessionFileName = "session.json"
)

// # Wire

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	BearerScheme = "Bearer"
	ContentJSON  = "application/json"
)

// # Routes

const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 15 * time.Second

	// MaxUploadBytes caps multipart bodies accepted by the stub API.
	MaxUploadBytes = 32 << 20
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in stub-issued tokens.
	AuthIssuer = "aidash.local"
)

// # JSON Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)
