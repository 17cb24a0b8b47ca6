package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	id        Identity
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore. A ttl of zero keeps sessions until
// they are invalidated.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, id Identity) (string, error) {
	if id.UserID == 0 {
		return "", ErrEmptyIdentity
	}
	token := newToken()
	now := s.now()

	entry := memoryEntry{id: id}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[token] = entry
	if s.ttl > 0 {
		s.sweepLocked(now)
	}
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryStore) Resolve(_ context.Context, token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return Identity{}, false
	}
	if entry.expired(s.now()) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return Identity{}, false
	}
	return entry.id, true
}

func (s *MemoryStore) Invalidate(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for token, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, token)
		}
	}
}
