// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth owns the credential exchange on both sides of the wire.
//
// # Architecture
//
// The stub remote API serves POST /api/auth/login through [Handler] and
// [Service] over an in-memory [Directory]. The dashboard calls the same
// endpoint through [Client], which implements [session.Authenticator].
// [LoginRequest] and [LoginData] are the single definition of that payload.
package auth

import (
	"fmt"
	"strings"

	"github.com/taibuivan/aidash/internal/platform/sec"
	"github.com/taibuivan/aidash/internal/session"
)

// LoginPath is the authentication endpoint.
const LoginPath = "/api/auth/login"

// LoginRequest is the JSON payload of a login call.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginData is the envelope data of a successful login.
type LoginData struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// Account is a directory entry of the stub remote API.
//
// # Rules
//   - Username is unique.
//   - PasswordHash is generated via Bcrypt exclusively.
type Account struct {
	ID           int
	Username     string
	PasswordHash string
	Role         sec.Role
}

// Profile returns the public user record sent to clients.
func (account *Account) Profile() session.User {
	return session.User{ID: account.ID, Username: account.Username, Role: account.Role}
}

// Seed is one "username:password:role" entry of STUB_USERS.
type Seed struct {
	Username string
	Password string
	Role     sec.Role
}

// ParseSeed splits a seed entry. The role is the remainder after the second
// colon, so "HR Manager" keeps its space.
func ParseSeed(entry string) (Seed, error) {
	parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return Seed{}, fmt.Errorf("auth: malformed user seed %q", entry)
	}
	role, err := sec.ParseRole(parts[2])
	if err != nil {
		return Seed{}, err
	}
	return Seed{Username: parts[0], Password: parts[1], Role: role}, nil
}
