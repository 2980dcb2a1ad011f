// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer helps with the optional fields of wire payloads, where a nil
pointer means "omitted" and a non-nil pointer carries a value.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Dereferences a pointer, returning the zero value if nil.
  - NonBlank: Maps blank strings to nil so they are omitted on the wire.
*/
package pointer

import "strings"

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value of T when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonBlank returns nil for a nil or whitespace-only string, otherwise a
// pointer to the trimmed value.
func NonBlank(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// FromString is [NonBlank] for a plain string, as read from a flag or form field.
func FromString(value string) *string {
	return NonBlank(&value)
}
