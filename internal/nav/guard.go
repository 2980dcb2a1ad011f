// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package nav

import (
	"errors"
	"strings"

	"github.com/taibuivan/aidash/internal/platform/constants"
	"github.com/taibuivan/aidash/internal/session"
)

// ErrForbiddenRoute is returned for a known path the user's role may not open.
var ErrForbiddenRoute = errors.New("nav: route is not available for this role")

/*
Guard resolves a requested path against the session snapshot.

Rules, in order:
  - unauthenticated: any path lands on /login
  - authenticated on /login or "/": /dashboard
  - unknown path: /dashboard
  - restricted path the role may not see: ErrForbiddenRoute

Returns:
  - string: The path to render
  - error: ErrForbiddenRoute
*/
func Guard(entries []Entry, snapshot session.Snapshot, path string) (string, error) {
	path = normalize(path)

	if !snapshot.IsAuthenticated {
		return constants.PathLogin, nil
	}
	if path == constants.PathLogin || path == "/" {
		return constants.PathDashboard, nil
	}

	for _, entry := range entries {
		if normalize(entry.Path) != path {
			continue
		}
		if !entry.visibleTo(snapshot.User) {
			return "", ErrForbiddenRoute
		}
		return entry.Path, nil
	}
	return constants.PathDashboard, nil
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
