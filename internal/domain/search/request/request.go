package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/institution"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	MaxLimit       = 100
	MaxOffset      = 1000
)

// Request is a validated offer search.
type Request struct {
	selection   filter.Selection
	institution institution.Institution
	limit       int
	offset      int
}

// New validates and normalizes search parameters. An empty query is allowed:
// the facets alone then drive the search.
func New(sel filter.Selection, inst institution.Institution, limit, offset int) (Request, error) {
	sel = sel.Clone()
	sel.Query = strings.TrimSpace(sel.Query)
	if len(sel.Query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidSelection)
	}
	if sel.EventAddressType == "" {
		sel.EventAddressType = filter.AddressOther
	}
	if !sel.EventAddressType.IsValid() {
		return Request{}, fmt.Errorf("invalid event address type %q: %w", sel.EventAddressType, domain.ErrInvalidSelection)
	}
	if sel.GeolocRadius == 0 {
		sel.GeolocRadius = filter.DefaultGeolocRadius
	}
	if sel.GeolocRadius < filter.MinGeolocRadius || sel.GeolocRadius > filter.MaxGeolocRadius {
		return Request{}, fmt.Errorf("geoloc radius must be between %d and %d: %w",
			filter.MinGeolocRadius, filter.MaxGeolocRadius, domain.ErrInvalidSelection)
	}
	if sel.Venue != nil && sel.Venue.ID <= 0 {
		return Request{}, fmt.Errorf("venue id must be positive: %w", domain.ErrInvalidSelection)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("offset must not be negative: %w", domain.ErrInvalidSelection)
	}
	if offset > MaxOffset {
		return Request{}, fmt.Errorf("offset too large (max %d): %w", MaxOffset, domain.ErrInvalidSelection)
	}

	return Request{selection: sel, institution: inst, limit: limit, offset: offset}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.selection.Query }

// Selection returns the normalized filter selection.
func (r *Request) Selection() filter.Selection { return r.selection }

// Institution returns the institution the search is made for.
func (r *Request) Institution() institution.Institution { return r.institution }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of results to skip.
func (r *Request) Offset() int { return r.offset }

// RadiusKm returns the geolocation radius and whether it applies: the radius
// panel must be committed and the institution located.
func (r *Request) RadiusKm() (int, bool) {
	if !r.selection.Geoloc || !r.institution.HasValidLocation() {
		return 0, false
	}
	return r.selection.GeolocRadius, true
}
