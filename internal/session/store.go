// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/aidash/internal/platform/constants"
)

// ErrInvalidRecord is returned by [Store.Put] for a record that could never
// be loaded back (empty token or incomplete user).
var ErrInvalidRecord = errors.New("session: token and a complete user are required")

// Store is the Persistent Session Store.
//
// It mirrors {token, user} in an [Area] under two keys and guarantees that a
// reader never observes one without the other. The mutex orders operations
// within one Store; across processes the guarantee rests on the [Area]
// methods being atomic.
type Store struct {
	mu     sync.Mutex
	area   Area
	logger *slog.Logger
}

// NewStore wraps an [Area] with both-or-neither semantics.
func NewStore(area Area, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{area: area, logger: logger}
}

/*
Put writes the token and the serialized user together.

Parameters:
  - ctx: context.Context
  - token: string (opaque bearer token)
  - user: User

Returns:
  - error: ErrInvalidRecord or storage failures
*/
func (store *Store) Put(ctx context.Context, token string, user User) error {
	if token == "" || !user.Valid() {
		return ErrInvalidRecord
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session_store_encode_failed: %w", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.area.SetAll(ctx, map[string]string{
		constants.TokenStorageKey: token,
		constants.UserStorageKey:  string(encoded),
	}); err != nil {
		return fmt.Errorf("session_store_put_failed: %w", err)
	}
	return nil
}

// Clear deletes both keys. Clearing an empty store is a no-op.
func (store *Store) Clear(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.clearLocked(ctx)
}

/*
Load returns the persisted record, or nil when there is none.

Description: If either key is missing, or the user value does not decode to a
complete [User], the pair is treated as absent and both keys are cleared.

Returns:
  - *Record: Fully-populated record or nil
  - error: Storage failures
*/
func (store *Store) Load(ctx context.Context) (*Record, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.loadLocked(ctx)
}

// Token returns the current bearer token, read fresh from storage.
// A partial record yields "" (and is cleaned up, like [Store.Load]).
func (store *Store) Token(ctx context.Context) (string, error) {
	record, err := store.Load(ctx)
	if err != nil || record == nil {
		return "", err
	}
	return record.Token, nil
}

/*
ClearIfToken clears the store only while it still holds token.

Description: Used on authorization failures. A 401 for a request sent with
an older token must not erase a session written after that request left,
including one written by another process sharing the area.

Returns:
  - bool: Whether the store was cleared
  - error: Storage failures
*/
func (store *Store) ClearIfToken(ctx context.Context, token string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	cleared, err := store.area.DeleteIf(ctx, constants.TokenStorageKey, token, recordKeys...)
	if err != nil {
		return false, fmt.Errorf("session_store_clear_failed: %w", err)
	}
	return cleared, nil
}

// recordKeys are the two keys of a persisted record.
var recordKeys = []string{constants.TokenStorageKey, constants.UserStorageKey}

/*
loadLocked decides on one snapshot of both keys.

Description: A partial or corrupt snapshot is cleared only if the token key
still holds what was read, so a record another process wrote in the meantime
survives.
*/
func (store *Store) loadLocked(ctx context.Context) (*Record, error) {
	values, err := store.area.GetAll(ctx, recordKeys...)
	if err != nil {
		return nil, fmt.Errorf("session_store_get_failed: %w", err)
	}
	token, hasToken := values[constants.TokenStorageKey]
	rawUser, hasUser := values[constants.UserStorageKey]

	if !hasToken && !hasUser {
		return nil, nil
	}

	var user User
	complete := hasToken && hasUser && token != ""
	if complete {
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil || !user.Valid() {
			complete = false
		}
	}

	if !complete {
		cleared, err := store.area.DeleteIf(ctx, constants.TokenStorageKey, token, recordKeys...)
		if err != nil {
			return nil, fmt.Errorf("session_store_clear_failed: %w", err)
		}
		store.logger.WarnContext(ctx, "session_store_partial_record_cleared",
			slog.Bool("has_token", hasToken),
			slog.Bool("has_user", hasUser),
			slog.Bool("cleared", cleared),
		)
		return nil, nil
	}

	return &Record{Token: token, User: user}, nil
}

func (store *Store) clearLocked(ctx context.Context) error {
	if err := store.area.Delete(ctx, recordKeys...); err != nil {
		return fmt.Errorf("session_store_clear_failed: %w", err)
	}
	return nil
}
