// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/aidash/internal/platform/sec"
)

/*
TestParseRole accepts exactly the closed set.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    sec.Role
		wantErr bool
	}{
		{"hr_manager", "HR Manager", sec.RoleHRManager, false},
		{"employee", "Employee", sec.RoleEmployee, false},
		{"lowercase_rejected", "employee", "", true},
		{"empty_rejected", "", "", true},
		{"foreign_rejected", "admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := sec.ParseRole(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

/*
TestRole_UnmarshalJSON rejects a foreign role inside a document.
*/
func TestRole_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Role sec.Role `json:"role"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"role":"HR Manager"}`), &payload))
	assert.Equal(t, sec.RoleHRManager, payload.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"root"}`), &payload))
	assert.Error(t, json.Unmarshal([]byte(`{"role":7}`), &payload))
}

/*
TestTokenService_RoundTrip signs and verifies a token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("secret", "aidash.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken(7, "alice", sec.RoleEmployee, time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, sec.RoleEmployee, claims.Role)

	other, err := sec.NewTokenService("other", "aidash.test")
	require.NoError(t, err)
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Expired verifies that an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService("secret", "aidash.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken(1, "bob", sec.RoleHRManager, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestPeekExpiry reads exp without verification and tolerates opaque tokens.
*/
func TestPeekExpiry(t *testing.T) {
	service, err := sec.NewTokenService("secret", "aidash.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken(1, "bob", sec.RoleHRManager, time.Hour)
	require.NoError(t, err)

	expiry, ok := sec.PeekExpiry(token)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)

	_, ok = sec.PeekExpiry("t1")
	assert.False(t, ok)
}

/*
TestPasswordHash verifies bcrypt round trip.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("password123", hash))
	assert.False(t, sec.CheckPasswordHash("password124", hash))
	assert.False(t, sec.CheckPasswordHash("password123", "not-a-hash"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, sec.SeedHashCost, cost)
}

/*
TestPasswordHash_TooLong wraps the bcrypt rejection of passwords over 72 bytes.
*/
func TestPasswordHash_TooLong(t *testing.T) {
	_, err := sec.HashPassword(strings.Repeat("x", 73))

	require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
	assert.True(t, strings.HasPrefix(err.Error(), "sec_hash_failed: "))
}
