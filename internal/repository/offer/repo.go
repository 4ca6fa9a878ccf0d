// Package offer runs offer searches against the search index.
package offer

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/eacsearch/internal/db"
	"github.com/kailas-cloud/eacsearch/internal/domain/geo"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/result"
)

// store is the consumer interface for offer searches (ISP).
type store interface {
	SearchFacets(ctx context.Context, q *db.FacetQuery) (*db.SearchResult, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the offer search repository.
type Repo struct {
	store store
	index string
}

// New creates an offer repository over the given index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// SearchFacets runs a text query narrowed by compiled facet groups.
// near is nil when no radius applies.
func (r *Repo) SearchFacets(
	ctx context.Context, text string, facets [][]string, near *geo.Circle, limit, offset int,
) ([]result.Result, int, error) {
	q := &db.FacetQuery{
		IndexName:    r.index,
		Text:         text,
		Facets:       facets,
		Offset:       offset,
		Limit:        limit,
		ReturnFields: ReturnFields,
	}
	if near != nil {
		q.Geo = &db.GeoFilter{
			Field:     FieldGeoloc,
			Longitude: near.Center.Longitude,
			Latitude:  near.Center.Latitude,
			RadiusKm:  near.RadiusKm,
		}
	}

	sr, err := r.store.SearchFacets(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search offers: %w", err)
	}
	return toResults(sr), sr.Total, nil
}

// SearchKNN returns the k offers closest to vector, ignoring facets.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, k int) ([]result.Result, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.index,
		Vector:       vector,
		K:            k,
		ReturnFields: ReturnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("knn offers: %w", err)
	}
	return toResults(sr), nil
}

func toResults(sr *db.SearchResult) []result.Result {
	out := make([]result.Result, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id := strings.TrimPrefix(e.Key, KeyPrefix)
		r := result.New(id, e.Score, e.Fields)
		if p, ok := geo.ParseLonLat(e.Fields[FieldGeoloc]); ok {
			r = r.WithLocation(p)
		}
		out = append(out, r)
	}
	return out
}
