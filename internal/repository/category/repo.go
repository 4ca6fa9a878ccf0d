// Package category resolves subcategory ids to category labels.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kailas-cloud/eacsearch/internal/domain"
)

// Key is the hash mapping subcategory id to category label.
var Key = domain.KeyPrefix + "subcategories"

const cacheKey = "all"

// store is the consumer interface for the category mapping (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo reads the subcategory mapping and keeps it in memory for ttl.
type Repo struct {
	store store
	cache *expirable.LRU[string, map[string]string]
}

// New creates a category repository. A non-positive ttl disables caching.
func New(s store, ttl time.Duration) *Repo {
	r := &Repo{store: s}
	if ttl > 0 {
		r.cache = expirable.NewLRU[string, map[string]string](1, nil, ttl)
	}
	return r
}

// CategoriesForSubcategories returns the distinct category labels of ids, in
// the order first seen. Unknown ids are skipped.
func (r *Repo) CategoriesForSubcategories(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	mapping, err := r.mapping(ctx)
	if err != nil {
		return nil, err
	}

	var labels []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		label, ok := mapping[id]
		if !ok || label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels, nil
}

func (r *Repo) mapping(ctx context.Context) (map[string]string, error) {
	if r.cache != nil {
		if m, ok := r.cache.Get(cacheKey); ok {
			return m, nil
		}
	}

	m, err := r.store.HGetAll(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load subcategories: %w", err)
	}

	// an empty mapping is not cached so a late seed is picked up
	if r.cache != nil && len(m) > 0 {
		r.cache.Add(cacheKey, m)
	}
	return m, nil
}
