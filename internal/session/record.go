// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the client-side session and request-authorization
lifecycle of the dashboard.

It owns three pieces, leaf-first:

  - [Store]: the Persistent Session Store, a both-or-neither mirror of
    {token, user} on top of a key-value storage [Area].
  - [State]: the in-memory Session State Container read by the route guard,
    the navigation filter and the panels.
  - [Controller]: the Session Lifecycle Controller, the only writer of both.

# Invariant

IsAuthenticated is true if and only if both the token and the user are
present. The two are set and cleared together, in storage and in memory.
*/
package session

import (
	"github.com/taibuivan/aidash/internal/platform/sec"
)

// # Domain Entities

// User is the profile returned by the authentication endpoint.
type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Role     sec.Role `json:"role"`
}

// Valid reports whether the user has the fields the dashboard relies on.
func (u User) Valid() bool {
	return u.Username != "" && u.Role.Valid()
}

// Record is the persisted mirror of an authenticated session.
type Record struct {
	Token string
	User  User
}

// # Lifecycle Phases

// Phase is the controller's state machine position.
type Phase int

const (
	PhaseAnonymous Phase = iota
	PhaseAuthenticating
	PhaseAuthenticated

	// PhaseAuthenticationFailed is anonymous with the rejection message
	// attached. It collapses to PhaseAnonymous on ClearError or the next login.
	PhaseAuthenticationFailed
)

// String returns a log-friendly phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAuthenticationFailed:
		return "authentication_failed"
	default:
		return "unknown"
	}
}
