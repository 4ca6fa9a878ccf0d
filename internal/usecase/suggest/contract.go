package suggest

import (
	"context"

	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
)

// HistoryStore persists a user's recent searches. Any method may fail when
// the storage is unavailable.
type HistoryStore interface {
	Load(ctx context.Context, userID string) ([]string, error)
	Save(ctx context.Context, userID string, entries []string) error
	Clear(ctx context.Context, userID string) error
}

// VenueSource finds venues whose name matches the typed text.
type VenueSource interface {
	MatchVenues(ctx context.Context, text string) ([]suggestion.VenueMatch, error)
}

// KeywordSource returns query suggestions for the typed text.
type KeywordSource interface {
	MatchKeywords(ctx context.Context, text string) ([]suggestion.KeywordMatch, error)
}

// CategoryAnnotator resolves subcategory ids to category labels.
type CategoryAnnotator interface {
	CategoriesForSubcategories(ctx context.Context, ids []string) ([]string, error)
}

// Notifier raises a non-blocking notification to the user.
type Notifier interface {
	Error(ctx context.Context, message string)
}

// SessionStore keeps open search boxes by id.
type SessionStore interface {
	Create(s *Session) string
	Get(id string) (*Session, error)
	Delete(id string) bool
}
