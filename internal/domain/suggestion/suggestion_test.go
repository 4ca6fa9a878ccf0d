package suggestion

import (
	"reflect"
	"testing"
)

func TestHistoryPush_Deduplicates(t *testing.T) {
	h := NewHistory(nil, 0)
	h = h.Push("Paris")
	h = h.Push("Paris")

	if got := h.Entries(); !reflect.DeepEqual(got, []string{"Paris"}) {
		t.Errorf("entries = %v, want [Paris]", got)
	}
}

func TestHistoryPush_MovesToFront(t *testing.T) {
	h := NewHistory([]string{"théâtre", "Paris", "danse"}, 0)
	h = h.Push("Paris")

	want := []string{"Paris", "théâtre", "danse"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestHistoryPush_TruncatesToCapacity(t *testing.T) {
	h := NewHistory([]string{"c", "b", "a"}, 3)
	h = h.Push("d")

	want := []string{"d", "c", "b"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestHistoryPush_Blank(t *testing.T) {
	h := NewHistory([]string{"a"}, 0)
	h = h.Push("   ")
	if h.Len() != 1 {
		t.Errorf("blank query changed history: %v", h.Entries())
	}
}

func TestHistoryPush_DoesNotMutateReceiver(t *testing.T) {
	h := NewHistory([]string{"a"}, 0)
	_ = h.Push("b")
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("receiver mutated: %v", got)
	}
}

func TestNewHistory_Sanitizes(t *testing.T) {
	h := NewHistory([]string{"a", "", " a ", "b", "c"}, 2)
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("entries = %v", got)
	}
}

func TestHistoryRecent(t *testing.T) {
	h := NewHistory([]string{"1", "2", "3", "4", "5", "6", "7"}, 0)

	tests := []struct {
		limit int
		want  int
	}{
		{DefaultDisplayLimit, 5},
		{0, 7},
		{100, 7},
	}
	for _, tt := range tests {
		if got := h.Recent(tt.limit); len(got) != tt.want {
			t.Errorf("Recent(%d) returned %d entries, want %d", tt.limit, len(got), tt.want)
		}
	}
	if got := NewHistory(nil, 0).Recent(5); got != nil {
		t.Errorf("empty history Recent = %v, want nil", got)
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory([]string{"a", "b"}, 4).Clear()
	if h.Len() != 0 {
		t.Errorf("len = %d after clear", h.Len())
	}
	for _, q := range []string{"1", "2", "3", "4", "5"} {
		h = h.Push(q)
	}
	if h.Len() != 4 {
		t.Errorf("capacity lost after clear: len = %d", h.Len())
	}
}

func TestPanelTransitions(t *testing.T) {
	tests := []struct {
		from Panel
		ev   Event
		want Panel
	}{
		{Closed, EventFocus, Open},
		{Closed, EventKeystroke, Open},
		{Open, EventKeystroke, Open},
		{Open, EventEscape, Closed},
		{Open, EventBlur, Closed},
		{Open, EventSubmit, Closed},
		{Closed, EventEscape, Closed},
		{Open, Event("hover"), Open},
		{"", Event("hover"), Closed},
	}
	for _, tt := range tests {
		if got := tt.from.On(tt.ev); got != tt.want {
			t.Errorf("%q.On(%q) = %q, want %q", tt.from, tt.ev, got, tt.want)
		}
	}
}

func TestEventIsValid(t *testing.T) {
	if !EventBlur.IsValid() {
		t.Error("blur should be valid")
	}
	if Event("hover").IsValid() {
		t.Error("hover should be invalid")
	}
}

func TestSetItems(t *testing.T) {
	s := Set{
		History: []string{"théâtre"},
		Venues:  []VenueMatch{{ID: 12, Label: "Théâtre du Rond-Point", OffererLabel: "SARL Rond-Point"}},
		Keywords: []KeywordMatch{
			{Text: "théâtre", HitCount: 40},
			{Text: "théâtre d'objets", HitCount: 3, CategoryLabels: []string{"Spectacle vivant"}},
		},
	}

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Source != SourceHistory || items[1].Source != SourceVenue || items[2].Source != SourceKeyword {
		t.Errorf("unexpected order: %+v", items)
	}
	if items[1].VenueID != 12 || items[1].Detail != "SARL Rond-Point" {
		t.Errorf("venue item = %+v", items[1])
	}
	if items[2].Detail != "Spectacle vivant" {
		t.Errorf("keyword detail = %q", items[2].Detail)
	}
}

func TestSetIsEmpty(t *testing.T) {
	if !(Set{}).IsEmpty() {
		t.Error("zero set should be empty")
	}
	if (Set{History: []string{"a"}}).IsEmpty() {
		t.Error("set with history is not empty")
	}
}
