// Package db holds the storage contracts of the search service. One
// Redis-compatible engine with the search module serves the offer and venue
// indexes, the keyword dictionary, category labels, per-user history and
// cached query embeddings.
package db

import (
	"context"
	"time"
)

// Store is what the composition root gets from a driver. Repositories
// declare the narrow subset they use.
//
//nolint:interfacebloat // composition root only
type Store interface {
	Pinger
	HashReader
	KVStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashReader reads lookup hashes written by the indexing pipeline.
type HashReader interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// KVStore holds opaque values. A non-positive ttl keeps the value forever.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// IndexManager creates the search indexes at startup.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher queries the offer and venue indexes and the keyword dictionary.
type Searcher interface {
	SearchFacets(ctx context.Context, q *FacetQuery) (*SearchResult, error)
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	SuggestGet(ctx context.Context, q *SuggestQuery) ([]Suggestion, error)
}
