package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/feature"
	"github.com/kailas-cloud/eacsearch/internal/domain/geo"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/result"
	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
	"github.com/kailas-cloud/eacsearch/internal/repository/session"
	"github.com/kailas-cloud/eacsearch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/eacsearch/internal/usecase/health"
	locuc "github.com/kailas-cloud/eacsearch/internal/usecase/localisation"
	offersuc "github.com/kailas-cloud/eacsearch/internal/usecase/offers"
	suggestuc "github.com/kailas-cloud/eacsearch/internal/usecase/suggest"
	venueuc "github.com/kailas-cloud/eacsearch/internal/usecase/venue"
)

// --- Fakes ---

type fakeOffers struct {
	searchFn func(text string, facets [][]string, near *geo.Circle, limit, offset int) ([]result.Result, int, error)
	knnFn    func(vector []float32, k int) ([]result.Result, error)
}

func (f *fakeOffers) SearchFacets(
	_ context.Context, text string, facets [][]string, near *geo.Circle, limit, offset int,
) ([]result.Result, int, error) {
	if f.searchFn != nil {
		return f.searchFn(text, facets, near, limit, offset)
	}
	return nil, 0, nil
}

func (f *fakeOffers) SearchKNN(_ context.Context, vector []float32, k int) ([]result.Result, error) {
	if f.knnFn != nil {
		return f.knnFn(vector, k)
	}
	return nil, nil
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1}, TotalTokens: 4}, nil
}

type fakeHistory struct {
	entries map[string][]string
	loadErr error
}

func (f *fakeHistory) Load(_ context.Context, userID string) ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.entries[userID], nil
}

func (f *fakeHistory) Save(_ context.Context, userID string, entries []string) error {
	f.entries[userID] = entries
	return nil
}

func (f *fakeHistory) Clear(_ context.Context, userID string) error {
	delete(f.entries, userID)
	return nil
}

type fakeVenues struct {
	err error
}

func (f *fakeVenues) MatchVenues(_ context.Context, text string) ([]suggestion.VenueMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []suggestion.VenueMatch{{ID: 7, Label: "Théâtre " + text, OffererLabel: "Ville de Montpellier"}}, nil
}

type fakeKeywords struct{}

func (fakeKeywords) MatchKeywords(_ context.Context, text string) ([]suggestion.KeywordMatch, error) {
	return []suggestion.KeywordMatch{{Text: text + " forum", HitCount: 3, SubcategoryIDs: []string{"SPECTACLE"}}}, nil
}

type fakeCategories struct{}

func (fakeCategories) CategoriesForSubcategories(_ context.Context, _ []string) ([]string, error) {
	return []string{"Spectacle vivant"}, nil
}

type fakeCatalog struct{}

func (fakeCatalog) FindByID(_ context.Context, id int64, withRelatives bool) (filter.Venue, error) {
	if id != 12 {
		return filter.Venue{}, domain.ErrNotFound
	}
	v := filter.Venue{ID: 12, Name: "MO.CO", DepartmentCode: "34"}
	if withRelatives {
		v.RelativeIDs = []int64{13}
	}
	return v, nil
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

// --- Harness ---

type harness struct {
	handler  http.Handler
	offers   *fakeOffers
	embedder *fakeEmbedder
	history  *fakeHistory
	venues   *fakeVenues
	index    *fakePinger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		offers:   &fakeOffers{},
		embedder: &fakeEmbedder{},
		history:  &fakeHistory{entries: map[string][]string{}},
		venues:   &fakeVenues{},
		index:    &fakePinger{},
	}
	toggles := feature.Toggles{GeolocationEnabled: true, SearchHistoryEnabled: true}
	logger := zap.NewNop()

	agg := suggestuc.New(h.history, h.venues, fakeKeywords{}, fakeCategories{},
		suggestuc.Config{HistoryEnabled: toggles.SearchHistoryEnabled}, logger)

	server := NewServer(
		offersuc.New(h.offers, embedding.NewInstrumentedEmbedder(h.embedder, "fake", "fake-model", logger), toggles),
		locuc.New(session.New[*locuc.Session](100, time.Minute, nil), toggles),
		suggestuc.NewService(agg, session.New(100, time.Minute, suggestuc.Evicted)),
		venueuc.New(fakeCatalog{}),
		healthuc.New(h.index, nil, nil),
		logger,
	)
	r := chi.NewRouter()
	server.Routes(r)
	h.handler = r
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func f64(v float64) *float64 { return &v }
