// Package cache provides an explicit in-memory TTL store for
// normalized device profiles. It is passed by reference to its
// consumers, never held as ambient global state.
package cache

import (
	"sync"
	"time"

	"github.com/secwatch/posture-backend/model"
)

// DefaultTTL is the default profile time-to-live
const DefaultTTL = 15 * time.Minute

type entry struct {
	profile   *model.NormalizedProfile
	expiresAt time.Time
}

// Store is a keyed TTL cache of normalized profiles
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// New creates a store with the specified TTL. A zero TTL selects
// DefaultTTL; a negative TTL expires everything immediately.
func New(ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get retrieves a profile if it exists and is not expired.
func (s *Store) Get(key string) (*model.NormalizedProfile, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.profile, true
}

// Set stores a profile under key for the store's TTL.
func (s *Store) Set(key string, profile *model.NormalizedProfile) {
	s.mu.Lock()
	s.entries[key] = entry{profile: profile, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

// Invalidate removes one key.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}
