// Package history persists each user's recent searches in the key-value store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/eacsearch/internal/db"
	"github.com/kailas-cloud/eacsearch/internal/domain"
)

var keyPrefix = domain.KeyPrefix + "history:"

// store is the consumer interface for history persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Repo stores a user's history as a JSON array, most recent first.
type Repo struct {
	store store
	ttl   time.Duration
}

// New creates a history repository. Entries expire ttl after the last write.
func New(s store, ttl time.Duration) *Repo {
	return &Repo{store: s, ttl: ttl}
}

// Load returns the stored entries. A user without history gets nil.
func (r *Repo) Load(ctx context.Context, userID string) ([]string, error) {
	data, err := r.store.Get(ctx, key(userID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load history: %w", err)
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

// Save replaces the stored entries.
func (r *Repo) Save(ctx context.Context, userID string, entries []string) error {
	if len(entries) == 0 {
		return r.Clear(ctx, userID)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := r.store.Put(ctx, key(userID), data, r.ttl); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Clear removes the stored entries.
func (r *Repo) Clear(ctx context.Context, userID string) error {
	if err := r.store.Del(ctx, key(userID)); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func key(userID string) string {
	return keyPrefix + userID
}
