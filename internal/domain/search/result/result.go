package result

import (
	"github.com/kailas-cloud/eacsearch/internal/domain/geo"
)

// Result is a single offer hit.
type Result struct {
	id         string
	score      float64
	fields     map[string]string
	location   *geo.Point
	distanceKm *float64
}

// New creates a search result.
func New(id string, score float64, fields map[string]string) Result {
	return Result{id: id, score: score, fields: fields}
}

// ID returns the offer identifier.
func (r *Result) ID() string { return r.id }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Fields returns the stored offer attributes.
func (r *Result) Fields() map[string]string { return r.fields }

// Field returns one attribute, empty when absent.
func (r *Result) Field(name string) string { return r.fields[name] }

// DistanceKm returns the distance to the institution, nil when unknown.
func (r *Result) DistanceKm() *float64 { return r.distanceKm }

// WithDistanceKm returns a copy carrying the distance to the institution.
func (r Result) WithDistanceKm(km float64) Result {
	r.distanceKm = &km
	return r
}

// Location returns the venue position of the offer, when indexed.
func (r *Result) Location() (geo.Point, bool) {
	if r.location == nil {
		return geo.Point{}, false
	}
	return *r.location, true
}

// WithLocation returns a copy carrying the venue position.
func (r Result) WithLocation(p geo.Point) Result {
	r.location = &p
	return r
}

// Mode is how a page was produced.
type Mode string

const (
	// ModeFaceted is the text query narrowed by facet filters.
	ModeFaceted Mode = "faceted"
	// ModeSemantic is the KNN fallback run when the faceted query matched nothing.
	ModeSemantic Mode = "semantic"
)

// Page is one page of hits and how it was produced.
type Page struct {
	Hits  []Result
	Total int
	Mode  Mode
}

// IsFallback reports whether the page comes from the semantic fallback.
func (p Page) IsFallback() bool { return p.Mode == ModeSemantic }
