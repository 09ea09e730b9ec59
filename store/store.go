package store

import (
	"sync"

	"github.com/encryptedtouhid/SmartZone/model"
)

// Store is an identity-keyed collection of one entity domain.
// Insertion order is preserved so that snapshots have a stable default
// ordering; updating an existing identity keeps its original slot.
type Store[T model.Entity] struct {
	mu      sync.RWMutex
	entries map[string]T
	order   []string
}

// New creates an empty store.
func New[T model.Entity]() *Store[T] {
	return &Store[T]{entries: map[string]T{}}
}

// Upsert inserts or fully replaces the payload for the entity's identity.
func (s *Store[T]) Upsert(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := e.Key()
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entries[key] = e
}

// Remove deletes the identity if present. Removing an absent identity is
// a no-op.
func (s *Store[T]) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// ReplaceAll clears the store and inserts the given entries in order.
// Used when a stream tick carries the complete current set for the
// domain rather than a delta.
func (s *Store[T]) ReplaceAll(entries []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]T, len(entries))
	s.order = s.order[:0]
	for _, e := range entries {
		key := e.Key()
		if _, ok := s.entries[key]; !ok {
			s.order = append(s.order, key)
		}
		s.entries[key] = e
	}
}

// Get returns the payload for an identity.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Snapshot returns the current full set in insertion order. The slice is
// the caller's to keep; later mutations do not affect it.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}

// Len returns the number of entities in the store.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
