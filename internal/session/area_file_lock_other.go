// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build !unix

package session

// lockFile is a no-op where flock is unavailable; writes are then serialised
// within one process only.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
