package venue

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v4"

	"github.com/kailas-cloud/eacsearch/internal/db"
	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
)

// --- Matcher ---

func TestMatchVenues(t *testing.T) {
	ms := &mockSearcher{searchFn: func(_ context.Context, q *db.FacetQuery) (*db.SearchResult, error) {
		if q.IndexName != "eacsearch:venues" || !q.Prefix || q.Limit != 5 {
			t.Errorf("unexpected query: %+v", q)
		}
		if q.Text != "théâtre du" {
			t.Errorf("text = %q", q.Text)
		}
		return &db.SearchResult{Total: 3, Entries: []db.SearchEntry{
			{Key: "eacsearch:venue:12", Fields: map[string]string{
				FieldID: "12", FieldName: "SARL TDR", FieldPublicName: "Théâtre du Rond-Point", FieldOffererName: "TDR",
			}},
			{Key: "eacsearch:venue:13", Fields: map[string]string{
				FieldName: "Théâtre du Soleil",
			}},
			{Key: "eacsearch:venue:bad", Fields: map[string]string{FieldName: "ignored"}},
		}}, nil
	}}

	got, err := NewMatcher(ms, "eacsearch:venues", 5).MatchVenues(context.Background(), "théâtre du")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []suggestion.VenueMatch{
		{ID: 12, Label: "Théâtre du Rond-Point", OffererLabel: "TDR"},
		{ID: 13, Label: "Théâtre du Soleil"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestMatchVenues_BlankText(t *testing.T) {
	ms := &mockSearcher{searchFn: func(_ context.Context, _ *db.FacetQuery) (*db.SearchResult, error) {
		t.Error("store must not be queried for blank text")
		return nil, nil
	}}
	got, err := NewMatcher(ms, "idx", 5).MatchVenues(context.Background(), "  ")
	if err != nil || got != nil {
		t.Errorf("got %v, %v", got, err)
	}
}

func TestMatchVenues_Error(t *testing.T) {
	ms := &mockSearcher{searchFn: func(_ context.Context, _ *db.FacetQuery) (*db.SearchResult, error) {
		return nil, &db.Error{Op: db.OpSearch, Err: context.DeadlineExceeded}
	}}
	if _, err := NewMatcher(ms, "idx", 5).MatchVenues(context.Background(), "a"); err == nil {
		t.Fatal("expected error")
	}
}

func TestIndex(t *testing.T) {
	idx := Index("eacsearch:venues")
	if idx.Prefixes[0] != "eacsearch:venue:" {
		t.Errorf("prefix = %v", idx.Prefixes)
	}
	if !strings.Contains(idx.String(), "venue.publicName AS venue_publicName TEXT") {
		t.Errorf("unexpected schema: %s", idx.String())
	}
}

// --- Catalog ---

func TestFindByID(t *testing.T) {
	mq := &mockQuerier{row: fakeRow{values: []interface{}{int64(7), "Cinéma", "Le Diagonal", "34"}}}

	v, err := NewCatalog(mq).FindByID(context.Background(), 7, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID != 7 || v.Name != "Cinéma" || v.PublicName != "Le Diagonal" || v.DepartmentCode != "34" {
		t.Errorf("venue = %+v", v)
	}
	if v.RelativeIDs != nil {
		t.Errorf("relatives = %v, want nil without getRelative", v.RelativeIDs)
	}
	if mq.sql != venueQuery || mq.args[0] != int64(7) {
		t.Errorf("unexpected query %q %v", mq.sql, mq.args)
	}
}

func TestFindByID_WithRelatives(t *testing.T) {
	mq := &mockQuerier{row: fakeRow{values: []interface{}{
		int64(7), "Cinéma", "", "34", []int64{8, 9},
	}}}

	v, err := NewCatalog(mq).FindByID(context.Background(), 7, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(v.RelativeIDs, []int64{8, 9}) {
		t.Errorf("relatives = %v", v.RelativeIDs)
	}
	if mq.sql != venueWithRelativesQuery {
		t.Error("expected the relatives query")
	}
}

func TestFindByID_NoRelatives(t *testing.T) {
	mq := &mockQuerier{row: fakeRow{values: []interface{}{int64(7), "Cinéma", "", "34", []int64(nil)}}}

	v, err := NewCatalog(mq).FindByID(context.Background(), 7, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.RelativeIDs == nil || len(v.RelativeIDs) != 0 {
		t.Errorf("relatives = %#v, want empty non-nil", v.RelativeIDs)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	mq := &mockQuerier{row: fakeRow{err: pgx.ErrNoRows}}

	_, err := NewCatalog(mq).FindByID(context.Background(), 404, false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByID_Error(t *testing.T) {
	dbErr := errors.New("connection reset")
	mq := &mockQuerier{row: fakeRow{err: dbErr}}

	_, err := NewCatalog(mq).FindByID(context.Background(), 1, true)
	if !errors.Is(err, dbErr) || errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unexpected error: %v", err)
	}
}
