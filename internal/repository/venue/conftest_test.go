package venue

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/kailas-cloud/eacsearch/internal/db"
)

// mockSearcher implements the searcher consumer interface for tests.
type mockSearcher struct {
	searchFn func(ctx context.Context, q *db.FacetQuery) (*db.SearchResult, error)
}

func (m *mockSearcher) SearchFacets(ctx context.Context, q *db.FacetQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

// fakeRow scans fixed values into the destinations in order.
type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *[]int64:
			*p = r.values[i].([]int64)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

// mockQuerier implements the querier consumer interface for tests.
type mockQuerier struct {
	row   pgx.Row
	sql   string
	args  []interface{}
	calls int
}

func (m *mockQuerier) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	m.calls++
	m.sql = sql
	m.args = args
	return m.row
}
