package venue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/eacsearch/internal/db"
	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
)

// searcher is the consumer interface for venue name lookups (ISP).
type searcher interface {
	SearchFacets(ctx context.Context, q *db.FacetQuery) (*db.SearchResult, error)
}

// Matcher finds venues whose name starts with the typed text.
type Matcher struct {
	store searcher
	index string
	limit int
}

// NewMatcher creates a venue matcher over the given index.
func NewMatcher(s searcher, index string, limit int) *Matcher {
	return &Matcher{store: s, index: index, limit: limit}
}

// MatchVenues returns at most limit venues matching text, best first.
func (m *Matcher) MatchVenues(ctx context.Context, text string) ([]suggestion.VenueMatch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	sr, err := m.store.SearchFacets(ctx, &db.FacetQuery{
		IndexName:    m.index,
		Text:         text,
		Prefix:       true,
		Limit:        m.limit,
		ReturnFields: []string{FieldID, FieldName, FieldPublicName, FieldOffererName},
	})
	if err != nil {
		return nil, fmt.Errorf("match venues: %w", err)
	}

	out := make([]suggestion.VenueMatch, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id, err := strconv.ParseInt(e.Fields[FieldID], 10, 64)
		if err != nil {
			id, err = strconv.ParseInt(strings.TrimPrefix(e.Key, KeyPrefix), 10, 64)
			if err != nil {
				continue
			}
		}
		label := e.Fields[FieldPublicName]
		if label == "" {
			label = e.Fields[FieldName]
		}
		out = append(out, suggestion.VenueMatch{
			ID:           id,
			Label:        label,
			OffererLabel: e.Fields[FieldOffererName],
		})
	}
	return out, nil
}
