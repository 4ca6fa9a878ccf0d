package suggest

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
)

type mockHistory struct {
	loadFn  func(ctx context.Context, userID string) ([]string, error)
	saveFn  func(ctx context.Context, userID string, entries []string) error
	clearFn func(ctx context.Context, userID string) error

	loads  atomic.Int32
	saved  [][]string
	clears int
}

func (m *mockHistory) Load(ctx context.Context, userID string) ([]string, error) {
	m.loads.Add(1)
	if m.loadFn != nil {
		return m.loadFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockHistory) Save(ctx context.Context, userID string, entries []string) error {
	m.saved = append(m.saved, entries)
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, entries)
	}
	return nil
}

func (m *mockHistory) Clear(ctx context.Context, userID string) error {
	m.clears++
	if m.clearFn != nil {
		return m.clearFn(ctx, userID)
	}
	return nil
}

type mockVenues struct {
	fn    func(ctx context.Context, text string) ([]suggestion.VenueMatch, error)
	calls atomic.Int32
}

func (m *mockVenues) MatchVenues(ctx context.Context, text string) ([]suggestion.VenueMatch, error) {
	m.calls.Add(1)
	if m.fn != nil {
		return m.fn(ctx, text)
	}
	return nil, nil
}

type mockKeywords struct {
	fn    func(ctx context.Context, text string) ([]suggestion.KeywordMatch, error)
	calls atomic.Int32
}

func (m *mockKeywords) MatchKeywords(ctx context.Context, text string) ([]suggestion.KeywordMatch, error) {
	m.calls.Add(1)
	if m.fn != nil {
		return m.fn(ctx, text)
	}
	return nil, nil
}

type mockCategories struct {
	fn func(ctx context.Context, ids []string) ([]string, error)
}

func (m *mockCategories) CategoriesForSubcategories(ctx context.Context, ids []string) ([]string, error) {
	if m.fn != nil {
		return m.fn(ctx, ids)
	}
	return nil, nil
}

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockNotifier) Error(_ context.Context, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

type mockSessions struct {
	sessions map[string]*Session
	next     int
}

func (m *mockSessions) Create(s *Session) string {
	if m.sessions == nil {
		m.sessions = map[string]*Session{}
	}
	m.next++
	id := "s" + strconv.Itoa(m.next)
	m.sessions[id] = s
	return id
}

func (m *mockSessions) Get(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessions) Delete(id string) bool {
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	delete(m.sessions, id)
	Evicted(s)
	return true
}

type fixture struct {
	agg        *Aggregator
	history    *mockHistory
	venues     *mockVenues
	keywords   *mockKeywords
	categories *mockCategories
	notifier   *mockNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		history:    &mockHistory{},
		venues:     &mockVenues{},
		keywords:   &mockKeywords{},
		categories: &mockCategories{},
		notifier:   &mockNotifier{},
	}
	f.agg = New(f.history, f.venues, f.keywords, f.categories,
		Config{HistoryEnabled: true, Capacity: 10, DisplayLimit: 5}, zap.NewNop()).
		WithNotifier(f.notifier)
	return f
}
