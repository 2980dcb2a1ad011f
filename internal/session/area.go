// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"sync"
)

// # Storage Area Contract

// Area is a key-value storage mechanism scoped to one dashboard "tab".
//
// The file and redis backends may be shared by several processes, so every
// method is a single atomic step against the backing storage: a reader never
// observes half of a SetAll or Delete, and DeleteIf decides and deletes with
// no write from another process in between.
type Area interface {

	/*
		GetAll reads keys in one snapshot.

		Returns:
		  - map[string]string: Present keys only; absent keys are omitted
		  - error: Storage failures
	*/
	GetAll(ctx context.Context, keys ...string) (map[string]string, error)

	/*
		SetAll writes every pair in values as one unit.

		Returns:
		  - error: Storage failures (no pair is written)
	*/
	SetAll(ctx context.Context, values map[string]string) error

	/*
		Delete removes the given keys as one unit. Absent keys are ignored.

		Returns:
		  - error: Storage failures
	*/
	Delete(ctx context.Context, keys ...string) error

	/*
		DeleteIf removes keys only while key holds expected. An absent key
		matches an empty expected value.

		Returns:
		  - bool: Whether the condition held (and the keys were removed)
		  - error: Storage failures
	*/
	DeleteIf(ctx context.Context, key, expected string, keys ...string) (bool, error)
}

// # Process-Scoped Area

// MemoryArea keeps values for the lifetime of the process, the analogue of a
// browser tab's session storage.
type MemoryArea struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryArea creates an empty [MemoryArea].
func NewMemoryArea() *MemoryArea {
	return &MemoryArea{values: make(map[string]string)}
}

// GetAll implements [Area].
func (area *MemoryArea) GetAll(_ context.Context, keys ...string) (map[string]string, error) {
	area.mu.RLock()
	defer area.mu.RUnlock()

	return pick(area.values, keys), nil
}

// SetAll implements [Area].
func (area *MemoryArea) SetAll(_ context.Context, values map[string]string) error {
	area.mu.Lock()
	defer area.mu.Unlock()

	for key, value := range values {
		area.values[key] = value
	}
	return nil
}

// Delete implements [Area].
func (area *MemoryArea) Delete(_ context.Context, keys ...string) error {
	area.mu.Lock()
	defer area.mu.Unlock()

	for _, key := range keys {
		delete(area.values, key)
	}
	return nil
}

// DeleteIf implements [Area].
func (area *MemoryArea) DeleteIf(_ context.Context, key, expected string, keys ...string) (bool, error) {
	area.mu.Lock()
	defer area.mu.Unlock()

	if area.values[key] != expected {
		return false, nil
	}
	for _, name := range keys {
		delete(area.values, name)
	}
	return true, nil
}

// pick copies the present keys of values.
func pick(values map[string]string, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := values[key]; ok {
			out[key] = value
		}
	}
	return out
}
