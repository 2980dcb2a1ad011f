// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"encoding/json"
	"fmt"
)

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is closed: adding a role means adding a constant here and a case to
// every exhaustive switch over [Role].
type Role string

const (
	// Manages hiring, policy documents and technical interviews
	RoleHRManager Role = "HR Manager"

	// Default role for staff accounts
	RoleEmployee Role = "Employee"
)

// ParseRole converts a wire value into a [Role]. Unknown values are rejected.
func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.Valid() {
		return "", fmt.Errorf("sec: unknown role %q", value)
	}
	return role, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHRManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// String returns the wire value.
func (r Role) String() string { return string(r) }

// UnmarshalJSON rejects roles outside the closed set so a stored or received
// user with a foreign role never decodes successfully.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("sec: role must be a string: %w", err)
	}
	role, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// UnmarshalText mirrors UnmarshalJSON for text decoders (YAML, env).
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}
