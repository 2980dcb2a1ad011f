// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/sec"
)

// Directory defines the data access contract for accounts.
//
// # Implementations
//
// The stub API ships [MemoryDirectory] only; accounts are seeded at startup.
type Directory interface {
	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if no account exists.
	FindByUsername(ctx context.Context, username string) (*Account, error)

	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id int) (*Account, error)
}

// MemoryDirectory is a process-local [Directory].
type MemoryDirectory struct {
	mu         sync.RWMutex
	byUsername map[string]*Account
	byID       map[int]*Account
	nextID     int
}

// NewMemoryDirectory hashes and registers every seed in order. IDs start at 1.
func NewMemoryDirectory(seeds []Seed) (*MemoryDirectory, error) {
	directory := &MemoryDirectory{
		byUsername: make(map[string]*Account, len(seeds)),
		byID:       make(map[int]*Account, len(seeds)),
		nextID:     1,
	}
	for _, seed := range seeds {
		if err := directory.add(seed); err != nil {
			return nil, err
		}
	}
	return directory, nil
}

func (directory *MemoryDirectory) add(seed Seed) error {
	hash, err := sec.HashPassword(seed.Password)
	if err != nil {
		return fmt.Errorf("auth_directory_hash_failed: %w", err)
	}

	directory.mu.Lock()
	defer directory.mu.Unlock()

	if _, exists := directory.byUsername[seed.Username]; exists {
		return fmt.Errorf("auth: duplicate user seed %q", seed.Username)
	}
	account := &Account{
		ID:           directory.nextID,
		Username:     seed.Username,
		PasswordHash: hash,
		Role:         seed.Role,
	}
	directory.nextID++
	directory.byUsername[account.Username] = account
	directory.byID[account.ID] = account
	return nil
}

// FindByUsername implements [Directory].
func (directory *MemoryDirectory) FindByUsername(_ context.Context, username string) (*Account, error) {
	directory.mu.RLock()
	defer directory.mu.RUnlock()

	account, ok := directory.byUsername[username]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	copied := *account
	return &copied, nil
}

// FindByID implements [Directory].
func (directory *MemoryDirectory) FindByID(_ context.Context, id int) (*Account, error) {
	directory.mu.RLock()
	defer directory.mu.RUnlock()

	account, ok := directory.byID[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	copied := *account
	return &copied, nil
}
