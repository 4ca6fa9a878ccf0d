// Package keyword reads query suggestions from the search index dictionary.
package keyword

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/eacsearch/internal/db"
	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
)

// store is the consumer interface for the suggestion dictionary (ISP).
type store interface {
	SuggestGet(ctx context.Context, q *db.SuggestQuery) ([]db.Suggestion, error)
}

// payload is the JSON attached to each dictionary entry.
type payload struct {
	Hits           int      `json:"hits"`
	SubcategoryIDs []string `json:"subcategoryIds"`
}

// Repo matches typed text against the keyword dictionary.
type Repo struct {
	store store
	key   string
	max   int
}

// New creates a keyword repository reading dictionary key.
func New(s store, key string, max int) *Repo {
	return &Repo{store: s, key: key, max: max}
}

// MatchKeywords returns the dictionary entries completing text, best first.
// Entries with a malformed payload are kept without hit count or subcategories.
func (r *Repo) MatchKeywords(ctx context.Context, text string) ([]suggestion.KeywordMatch, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	suggestions, err := r.store.SuggestGet(ctx, &db.SuggestQuery{
		Key:    r.key,
		Prefix: text,
		Max:    r.max,
		Fuzzy:  len([]rune(text)) >= 4,
	})
	if err != nil {
		return nil, fmt.Errorf("match keywords: %w", err)
	}

	out := make([]suggestion.KeywordMatch, 0, len(suggestions))
	for _, s := range suggestions {
		m := suggestion.KeywordMatch{Text: s.Text}
		if s.Payload != "" {
			var p payload
			if json.Unmarshal([]byte(s.Payload), &p) == nil {
				m.HitCount = p.Hits
				m.SubcategoryIDs = p.SubcategoryIDs
			}
		}
		out = append(out, m)
	}
	return out, nil
}
