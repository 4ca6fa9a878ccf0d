package offer

import (
	"context"
	"testing"

	"github.com/kailas-cloud/eacsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFacetsFn func(ctx context.Context, q *db.FacetQuery) (*db.SearchResult, error)
	searchKNNFn    func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchFacets(ctx context.Context, q *db.FacetQuery) (*db.SearchResult, error) {
	if m.searchFacetsFn != nil {
		return m.searchFacetsFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "eacsearch:offers"), ms
}
