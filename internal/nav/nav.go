// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package nav is the Role-Scoped Navigation Filter and the route guard.

Both are pure readers of the session: [Visible] maps a user to the entries
they may see, [Guard] decides where a requested path actually lands.
*/
package nav

import (
	"github.com/taibuivan/aidash/internal/platform/sec"
	"github.com/taibuivan/aidash/internal/session"
	"github.com/taibuivan/aidash/pkg/slice"
)

// # Sections

const (
	SectionHR         = "HR AI Platform"
	SectionAutoSphere = "AutoSphere Motors"
)

// # Entries

// Entry is one navigation item. An empty Roles means unrestricted.
type Entry struct {
	Label   string     `yaml:"label"`
	Path    string     `yaml:"path"`
	Section string     `yaml:"section,omitempty"`
	Roles   []sec.Role `yaml:"roles,omitempty"`
}

// Restricted reports whether the entry names any role.
func (entry Entry) Restricted() bool {
	return len(entry.Roles) > 0
}

// Allows reports whether role is a member of the entry's role set.
// Unrestricted entries allow every known role.
func (entry Entry) Allows(role sec.Role) bool {
	switch role {
	case sec.RoleHRManager, sec.RoleEmployee:
	default:
		return false
	}
	if !entry.Restricted() {
		return true
	}
	for _, candidate := range entry.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

// visibleTo is the single visibility rule shared by [Visible] and [Guard].
func (entry Entry) visibleTo(user *session.User) bool {
	if !entry.Restricted() {
		return true
	}
	return user != nil && entry.Allows(user.Role)
}

// Visible returns the subsequence of entries the user may see, in input order.
// A nil user sees only unrestricted entries.
func Visible(entries []Entry, user *session.User) []Entry {
	return slice.Filter(entries, func(entry Entry) bool {
		return entry.visibleTo(user)
	})
}

// Default returns the dashboard's navigation table.
func Default() []Entry {
	hrOnly := []sec.Role{sec.RoleHRManager}
	return []Entry{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "CV Evaluation", Path: "/hr/cv-evaluation", Section: SectionHR},
		{Label: "Policy Management", Path: "/hr/policy", Section: SectionHR, Roles: hrOnly},
		{Label: "Technical Evaluation", Path: "/hr/technical", Section: SectionHR, Roles: hrOnly},
		{Label: "AI Chat", Path: "/autosphere/chat", Section: SectionAutoSphere},
		{Label: "Bookings", Path: "/autosphere/bookings", Section: SectionAutoSphere},
	}
}

// Group is one titled block of the sidebar.
type Group struct {
	Section string
	Entries []Entry
}

// Grouped returns entries bucketed by [Entry.Section] in first-seen order.
func Grouped(entries []Entry) []Group {
	index := map[string]int{}
	var groups []Group
	for _, entry := range entries {
		position, ok := index[entry.Section]
		if !ok {
			position = len(groups)
			index[entry.Section] = position
			groups = append(groups, Group{Section: entry.Section})
		}
		groups[position].Entries = append(groups[position].Entries, entry)
	}
	return groups
}
