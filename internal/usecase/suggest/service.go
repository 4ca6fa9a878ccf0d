package suggest

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/metrics"
)

// Service exposes sessions to callers that address them by id.
type Service struct {
	agg      *Aggregator
	sessions SessionStore
}

// NewService creates a session service. The store must call Evicted for
// every session it drops.
func NewService(agg *Aggregator, sessions SessionStore) *Service {
	return &Service{agg: agg, sessions: sessions}
}

// Open starts a session for userID and returns its id.
func (s *Service) Open(ctx context.Context, userID string) (string, *Session) {
	sess := s.agg.NewSession(ctx, userID)
	id := s.sessions.Create(sess)
	metrics.SuggestSessions.Inc()
	return id, sess
}

// Get returns an open session.
func (s *Service) Get(id string) (*Session, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get suggest session: %w", err)
	}
	return sess, nil
}

// Close tears a session down and forgets it.
func (s *Service) Close(id string) error {
	if !s.sessions.Delete(id) {
		return fmt.Errorf("close suggest session %s: %w", id, domain.ErrSessionNotFound)
	}
	return nil
}

// Evicted is the store's eviction hook.
func Evicted(sess *Session) {
	sess.Close()
	metrics.SuggestSessions.Dec()
}
