// Package suggestion holds the autocomplete values: the merged suggestion
// set, the recent-search history and the panel visibility machine.
package suggestion

// Source identifies where a suggestion item comes from.
type Source string

// Suggestion sources, in display order.
const (
	SourceHistory Source = "history"
	SourceVenue   Source = "venue"
	SourceKeyword Source = "keyword"
)

// VenueMatch is a venue whose name matches the typed text.
type VenueMatch struct {
	ID           int64
	Label        string
	OffererLabel string
}

// KeywordMatch is a query suggestion from the index.
type KeywordMatch struct {
	Text           string
	HitCount       int
	SubcategoryIDs []string
	// CategoryLabels is empty when annotation failed.
	CategoryLabels []string
}

// Set is the suggestion list recomputed on every keystroke.
type Set struct {
	History  []string
	Venues   []VenueMatch
	Keywords []KeywordMatch
}

// IsEmpty reports whether no source produced anything.
func (s Set) IsEmpty() bool {
	return len(s.History) == 0 && len(s.Venues) == 0 && len(s.Keywords) == 0
}

// Item is one row of the flattened dropdown.
type Item struct {
	Source Source
	Text   string
	// VenueID is set for venue rows only.
	VenueID int64
	Detail  string
}

// Items flattens the set into dropdown rows: history first, then venues,
// then keywords. A keyword equal to a history entry is shown once, as history.
func (s Set) Items() []Item {
	out := make([]Item, 0, len(s.History)+len(s.Venues)+len(s.Keywords))
	seen := make(map[string]struct{}, len(s.History))
	for _, h := range s.History {
		seen[h] = struct{}{}
		out = append(out, Item{Source: SourceHistory, Text: h})
	}
	for _, v := range s.Venues {
		out = append(out, Item{Source: SourceVenue, Text: v.Label, VenueID: v.ID, Detail: v.OffererLabel})
	}
	for _, k := range s.Keywords {
		if _, dup := seen[k.Text]; dup {
			continue
		}
		seen[k.Text] = struct{}{}
		var detail string
		if len(k.CategoryLabels) > 0 {
			detail = k.CategoryLabels[0]
		}
		out = append(out, Item{Source: SourceKeyword, Text: k.Text, Detail: detail})
	}
	return out
}
