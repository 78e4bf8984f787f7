package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. It mirrors the redis
// semantics, including TTL expiry on every write, and exists for tests and
// local development without a Redis instance.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry

	// now is replaceable in tests to exercise expiry without sleeping.
	now func() time.Time
}

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultConfig().TTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Save stores a copy of the record and restarts its expiry window.
func (s *MemoryStore) Save(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[rec.ID] = memoryEntry{
		rec:       rec,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Fetch returns the stored record or ErrNotFound when absent or expired.
// Expired entries are dropped lazily on access.
func (s *MemoryStore) Fetch(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return Record{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return Record{}, ErrNotFound
	}
	return entry.rec, nil
}

// Delete removes the record; deleting a missing identifier succeeds.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// SetClock replaces the store's time source. Test helper.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
