// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"sync"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	User            *User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
	Phase           Phase
}

// Role returns the user's role, or "" when anonymous.
func (snapshot Snapshot) Role() string {
	if snapshot.User == nil {
		return ""
	}
	return snapshot.User.Role.String()
}

// Observer is notified after every state change with the new snapshot.
type Observer func(Snapshot)

// State is the Session State Container.
//
// Consumers hold a *State and read it through [State.Snapshot]; only the
// [Controller] in this package mutates it.
type State struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	observers map[int]Observer
	nextID    int
}

// NewState creates an empty, anonymous container.
func NewState() *State {
	return &State{observers: make(map[int]Observer)}
}

// Snapshot returns a copy of the current state.
func (state *State) Snapshot() Snapshot {
	state.mu.RLock()
	defer state.mu.RUnlock()

	return state.copyLocked()
}

// IsAuthenticated is the route guard's single input.
func (state *State) IsAuthenticated() bool {
	state.mu.RLock()
	defer state.mu.RUnlock()

	return state.snapshot.IsAuthenticated
}

// Subscribe registers an observer and returns a function that removes it.
func (state *State) Subscribe(observer Observer) (unsubscribe func()) {
	state.mu.Lock()
	id := state.nextID
	state.nextID++
	state.observers[id] = observer
	state.mu.Unlock()

	return func() {
		state.mu.Lock()
		delete(state.observers, id)
		state.mu.Unlock()
	}
}

// # Mutations (controller only)

func (state *State) setAuthenticating() {
	state.update(func(snapshot *Snapshot) {
		snapshot.Loading = true
		snapshot.Error = ""
		snapshot.Phase = PhaseAuthenticating
	})
}

func (state *State) setAuthenticated(token string, user User) {
	state.update(func(snapshot *Snapshot) {
		snapshot.Token = token
		snapshot.User = &user
		snapshot.IsAuthenticated = true
		snapshot.Loading = false
		snapshot.Error = ""
		snapshot.Phase = PhaseAuthenticated
	})
}

func (state *State) setFailed(message string) {
	state.update(func(snapshot *Snapshot) {
		snapshot.Token = ""
		snapshot.User = nil
		snapshot.IsAuthenticated = false
		snapshot.Loading = false
		snapshot.Error = message
		snapshot.Phase = PhaseAuthenticationFailed
	})
}

func (state *State) setAnonymous() {
	state.update(func(snapshot *Snapshot) {
		*snapshot = Snapshot{Phase: PhaseAnonymous}
	})
}

func (state *State) clearError() {
	state.update(func(snapshot *Snapshot) {
		snapshot.Error = ""
		if snapshot.Phase == PhaseAuthenticationFailed {
			snapshot.Phase = PhaseAnonymous
		}
	})
}

// update applies fn under the write lock, then notifies observers outside it.
func (state *State) update(fn func(*Snapshot)) {
	state.mu.Lock()
	fn(&state.snapshot)
	next := state.copyLocked()
	observers := make([]Observer, 0, len(state.observers))
	for _, observer := range state.observers {
		observers = append(observers, observer)
	}
	state.mu.Unlock()

	for _, observer := range observers {
		observer(next)
	}
}

func (state *State) copyLocked() Snapshot {
	out := state.snapshot
	if out.User != nil {
		user := *out.User
		out.User = &user
	}
	return out
}
