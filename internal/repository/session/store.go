// Package session keeps short-lived per-client state in memory, keyed by a
// random id and evicted after a period of inactivity.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kailas-cloud/eacsearch/internal/domain"
)

// Store holds at most size sessions. A session expires ttl after it was
// created or last replaced; reads do not extend it.
type Store[V any] struct {
	cache *expirable.LRU[string, V]
}

// New creates a store. onEvict, when set, runs for every session leaving the
// store: expired, evicted for room, or deleted.
func New[V any](size int, ttl time.Duration, onEvict func(V)) *Store[V] {
	var cb expirable.EvictCallback[string, V]
	if onEvict != nil {
		cb = func(_ string, v V) { onEvict(v) }
	}
	return &Store[V]{cache: expirable.NewLRU[string, V](size, cb, ttl)}
}

// Create stores v under a new id and returns the id.
func (s *Store[V]) Create(v V) string {
	id := uuid.NewString()
	s.cache.Add(id, v)
	return id
}

// Get returns the session with the given id.
func (s *Store[V]) Get(id string) (V, error) {
	if _, err := uuid.Parse(id); err != nil {
		var zero V
		return zero, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	v, ok := s.cache.Get(id)
	if !ok {
		var zero V
		return zero, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	return v, nil
}

// Delete removes a session. Returns false if it was not there.
func (s *Store[V]) Delete(id string) bool {
	return s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *Store[V]) Len() int {
	return s.cache.Len()
}
