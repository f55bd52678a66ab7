// Package session keeps the current actor for each live session. A
// session record is the serialized user snapshot taken at login,
// keyed by the hash of the bearer token and expiring with it. Logout
// deletes the record, which revokes the token server-side regardless
// of its remaining JWT lifetime.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/navetta/shuttle-booking/internal/model"
)

// ErrNotFound is returned by Get when no live session exists for the
// key, either because it never did or because it expired or was
// logged out.
var ErrNotFound = errors.New("session not found")

// Store holds at most one user snapshot per session key.
type Store interface {
	Put(ctx context.Context, key string, u model.User, ttl time.Duration) error
	Get(ctx context.Context, key string) (model.User, error)
	Delete(ctx context.Context, key string) error
}

type memoryEntry struct {
	user model.User
	exp  time.Time
}

// Memory is an in-process session store for tests and single-node
// dev setups. Expired entries are dropped lazily on access.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemory returns an empty in-memory session store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Put stores the snapshot under key for ttl.
func (m *Memory) Put(_ context.Context, key string, u model.User, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{user: u, exp: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Get returns the live snapshot for key or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return model.User{}, ErrNotFound
	}
	if time.Now().After(e.exp) {
		delete(m.entries, key)
		return model.User{}, ErrNotFound
	}
	return e.user, nil
}

// Delete removes the session for key. Deleting an absent session is
// not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
