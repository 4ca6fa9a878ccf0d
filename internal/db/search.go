package db

// GeoFilter restricts hits to a radius around a point.
type GeoFilter struct {
	Field     string
	Longitude float64
	Latitude  float64
	RadiusKm  int
}

// FacetQuery is the input for a text search narrowed by facet groups.
// Groups are AND'd and the values inside a group are OR'd.
type FacetQuery struct {
	IndexName string
	Text      string
	// Prefix turns the last word of Text into a prefix match.
	Prefix       bool
	Facets       [][]string
	Geo          *GeoFilter
	Offset       int
	Limit        int
	ReturnFields []string
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SuggestQuery is the input for a suggestion dictionary lookup.
type SuggestQuery struct {
	Key    string
	Prefix string
	Max    int
	Fuzzy  bool
}

// Suggestion is one dictionary entry.
type Suggestion struct {
	Text    string
	Score   float64
	Payload string
}

// FieldName maps a facet attribute such as "offer.students" to its index
// field alias "offer_students".
func FieldName(attribute string) string {
	out := []byte(attribute)
	for i, c := range out {
		if c == '.' {
			out[i] = '_'
		}
	}
	return string(out)
}
