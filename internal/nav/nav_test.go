// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package nav_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/nav"
	"github.com/taibuivan/aidash/internal/platform/sec"
	"github.com/taibuivan/aidash/internal/session"
)

func user(role sec.Role) *session.User {
	return &session.User{ID: 1, Username: "u", Role: role}
}

func labels(entries []nav.Entry) []string {
	out := []string{}
	for _, entry := range entries {
		out = append(out, entry.Label)
	}
	return out
}

/*
TestVisible_RoleMembership checks the A / B[HR Manager] table.
*/
func TestVisible_RoleMembership(t *testing.T) {
	entries := []nav.Entry{
		{Label: "A", Path: "/a"},
		{Label: "B", Path: "/b", Roles: []sec.Role{sec.RoleHRManager}},
	}

	tests := []struct {
		name string
		user *session.User
		want []string
	}{
		{"employee", user(sec.RoleEmployee), []string{"A"}},
		{"hr_manager", user(sec.RoleHRManager), []string{"A", "B"}},
		{"no_user", nil, []string{"A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels(nav.Visible(entries, tt.user)))
		})
	}
}

/*
TestVisible_DefaultTable preserves order and hides HR-only tools from employees.
*/
func TestVisible_DefaultTable(t *testing.T) {
	assert.Equal(t,
		[]string{"Dashboard", "CV Evaluation", "AI Chat", "Bookings"},
		labels(nav.Visible(nav.Default(), user(sec.RoleEmployee))),
	)
	assert.Len(t, nav.Visible(nav.Default(), user(sec.RoleHRManager)), 6)
}

/*
TestVisible_UnknownRoleSeesUnrestrictedOnly fails closed.
*/
func TestVisible_UnknownRoleSeesUnrestrictedOnly(t *testing.T) {
	entries := []nav.Entry{
		{Label: "A", Path: "/a"},
		{Label: "B", Path: "/b", Roles: []sec.Role{sec.RoleHRManager, sec.RoleEmployee}},
	}
	assert.Equal(t, []string{"A"}, labels(nav.Visible(entries, user(sec.Role("Admin")))))
}

/*
TestGrouped keeps section order.
*/
func TestGrouped(t *testing.T) {
	groups := nav.Grouped(nav.Default())
	require.Len(t, groups, 3)
	assert.Equal(t, "", groups[0].Section)
	assert.Equal(t, nav.SectionHR, groups[1].Section)
	assert.Len(t, groups[1].Entries, 3)
	assert.Equal(t, nav.SectionAutoSphere, groups[2].Section)
}

/*
TestGuard covers every redirect rule.
*/
func TestGuard(t *testing.T) {
	anonymous := session.Snapshot{}
	employee := session.Snapshot{IsAuthenticated: true, Token: "t", User: user(sec.RoleEmployee)}
	manager := session.Snapshot{IsAuthenticated: true, Token: "t", User: user(sec.RoleHRManager)}

	tests := []struct {
		name     string
		snapshot session.Snapshot
		path     string
		want     string
		err      error
	}{
		{"anonymous_protected", anonymous, "/hr/cv-evaluation", "/login", nil},
		{"anonymous_login", anonymous, "/login", "/login", nil},
		{"authenticated_login", employee, "/login", "/dashboard", nil},
		{"root", employee, "/", "/dashboard", nil},
		{"unknown", employee, "/nowhere", "/dashboard", nil},
		{"trailing_slash", employee, "/autosphere/chat/", "/autosphere/chat", nil},
		{"forbidden", employee, "/hr/policy", "", nav.ErrForbiddenRoute},
		{"allowed", manager, "hr/policy", "/hr/policy", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nav.Guard(nav.Default(), tt.snapshot, tt.path)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestLoad parses roles through the closed enum.
*/
func TestLoad(t *testing.T) {
	entries, err := nav.Load(strings.NewReader(`
entries:
  - label: Home
    path: /dashboard
  - label: Policy
    path: /hr/policy
    section: HR AI Platform
    roles: [HR Manager]
`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []sec.Role{sec.RoleHRManager}, entries[1].Roles)

	_, err = nav.Load(strings.NewReader("entries:\n  - label: X\n    path: /x\n    roles: [Admin]\n"))
	assert.Error(t, err)

	_, err = nav.Load(strings.NewReader("entries:\n  - label: X\n    path: /x\n  - label: Y\n    path: /x/\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = nav.Load(strings.NewReader(""))
	assert.Error(t, err)
}
