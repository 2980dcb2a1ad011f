// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// The stub API keys bookings by UUIDv7 so listing in key order is listing in
// creation order, and derives the short display ID shown to customers.
package uuidv7

import (
	"strings"

	"github.com/google/uuid"
)

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// DisplayID derives "<prefix>-XXXXXXXX" from the random tail of a UUIDv7.
//
// The leading bits of a v7 value are the timestamp, so two IDs minted in the
// same millisecond share them; the last eight hex digits do not.
func DisplayID(prefix, id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[len(compact)-8:]
	}
	return prefix + "-" + strings.ToUpper(compact)
}
