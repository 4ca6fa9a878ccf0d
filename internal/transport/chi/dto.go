package chi

import (
	"github.com/kailas-cloud/eacsearch/internal/domain/institution"
	"github.com/kailas-cloud/eacsearch/internal/domain/notice"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/result"
	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
	locuc "github.com/kailas-cloud/eacsearch/internal/usecase/localisation"
	offersuc "github.com/kailas-cloud/eacsearch/internal/usecase/offers"
)

// ErrorCode is the machine-readable error kind in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest             ErrorCode = "bad_request"
	ErrorCodeUnauthorized           ErrorCode = "unauthorized"
	ErrorCodeValidationFailed       ErrorCode = "validation_failed"
	ErrorCodeNotFound               ErrorCode = "not_found"
	ErrorCodeSessionNotFound        ErrorCode = "session_not_found"
	ErrorCodeUnknownAction          ErrorCode = "unknown_action"
	ErrorCodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	ErrorCodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// --- Requests ---

// Selection is the filter selection of the search form.
type Selection struct {
	Query            string     `json:"query"`
	Domains          []string   `json:"domains,omitempty"`
	Students         []string   `json:"students,omitempty"`
	Categories       [][]string `json:"categories,omitempty"`
	Formats          []string   `json:"formats,omitempty"`
	EventAddressType string     `json:"event_address_type,omitempty"`
	Departments      []string   `json:"departments,omitempty"`
	Academies        []string   `json:"academies,omitempty"`
	Geoloc           bool       `json:"geoloc,omitempty"`
	GeolocRadius     int        `json:"geoloc_radius,omitempty"`
	Venue            *Venue     `json:"venue,omitempty"`
	UAICodes         []string   `json:"uai_codes,omitempty"`
}

// Venue is a venue filter.
type Venue struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name,omitempty"`
	PublicName     string  `json:"public_name,omitempty"`
	DepartmentCode string  `json:"department_code,omitempty"`
	RelativeIDs    []int64 `json:"relative_ids,omitempty"`
}

// Institution is the school the user searches for.
type Institution struct {
	UAI            string   `json:"uai,omitempty"`
	Name           string   `json:"name,omitempty"`
	DepartmentCode string   `json:"department_code,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

// SearchOffersRequest is the body of POST /v1/offers/search and /v1/offers/facets.
type SearchOffersRequest struct {
	Selection   Selection   `json:"selection"`
	Institution Institution `json:"institution"`
	Limit       int         `json:"limit,omitempty"`
	Offset      int         `json:"offset,omitempty"`
}

// OpenLocalisationRequest is the body of POST /v1/localisation/sessions.
type OpenLocalisationRequest struct {
	Institution Institution `json:"institution"`
	Selection   Selection   `json:"selection"`
}

// LocalisationValuesRequest is the body of PUT /v1/localisation/sessions/{id}/values.
type LocalisationValuesRequest struct {
	Departments []string `json:"departments,omitempty"`
	Academies   []string `json:"academies,omitempty"`
	RadiusKm    *int     `json:"radius_km,omitempty"`
}

// CommitLocalisationRequest is the body of POST /v1/localisation/sessions/{id}/commit.
type CommitLocalisationRequest struct {
	Selection Selection `json:"selection"`
}

// SubmitQueryRequest is the body of POST /v1/suggest/sessions/{id}/submit.
type SubmitQueryRequest struct {
	Query string `json:"query"`
}

// --- Responses ---

// FacetsResponse is the compiled facet expression.
type FacetsResponse struct {
	Facets        [][]string `json:"facets"`
	ActiveFilters []string   `json:"active_filters"`
}

// OfferItem is one search hit.
type OfferItem struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Fields     map[string]string `json:"fields,omitempty"`
	DistanceKm *float64          `json:"distance_km,omitempty"`
}

// SearchOffersResponse is a page of offers.
type SearchOffersResponse struct {
	FacetsResponse
	Items    []OfferItem     `json:"items"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
	Mode     string          `json:"mode"`
	Fallback bool            `json:"fallback"`
	Notices  []notice.Notice `json:"notices,omitempty"`
}

// LocalisationSession is the state of a localisation modal.
type LocalisationSession struct {
	ID           string   `json:"id"`
	Mode         string   `json:"mode"`
	Departments  []string `json:"departments"`
	Academies    []string `json:"academies"`
	RadiusKm     int      `json:"radius_km"`
	CanGeolocate bool     `json:"can_geolocate"`
	// Refused is set when the requested transition was not applied.
	Refused bool `json:"refused,omitempty"`
}

// CommitLocalisationResponse carries the selection to search with.
type CommitLocalisationResponse struct {
	Selection Selection           `json:"selection"`
	Session   LocalisationSession `json:"session"`
}

// VenueMatch is a venue suggestion.
type VenueMatch struct {
	ID           int64  `json:"id"`
	Label        string `json:"label"`
	OffererLabel string `json:"offerer_label,omitempty"`
}

// KeywordMatch is a query suggestion.
type KeywordMatch struct {
	Text           string   `json:"text"`
	HitCount       int      `json:"hit_count"`
	SubcategoryIDs []string `json:"subcategory_ids,omitempty"`
	CategoryLabels []string `json:"category_labels,omitempty"`
}

// SuggestionItem is one dropdown row.
type SuggestionItem struct {
	Source  string `json:"source"`
	Text    string `json:"text"`
	VenueID int64  `json:"venue_id,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// SuggestionsResponse is the suggestion list for one keystroke.
type SuggestionsResponse struct {
	SessionID        string           `json:"session_id"`
	Seq              uint64           `json:"seq"`
	Stale            bool             `json:"stale"`
	Panel            string           `json:"panel"`
	HistoryAvailable bool             `json:"history_available"`
	History          []string         `json:"history"`
	Venues           []VenueMatch     `json:"venues"`
	Keywords         []KeywordMatch   `json:"keywords"`
	Items            []SuggestionItem `json:"items"`
	Notices          []notice.Notice  `json:"notices,omitempty"`
}

// PanelResponse is the suggestion panel visibility.
type PanelResponse struct {
	Panel string `json:"panel"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// --- Conversions ---

func selectionFromDTO(s Selection) filter.Selection {
	sel := filter.Selection{
		Query:            s.Query,
		Domains:          s.Domains,
		Students:         s.Students,
		Categories:       s.Categories,
		Formats:          s.Formats,
		EventAddressType: filter.AddressType(s.EventAddressType),
		Departments:      s.Departments,
		Academies:        s.Academies,
		Geoloc:           s.Geoloc,
		GeolocRadius:     s.GeolocRadius,
		UAICodes:         s.UAICodes,
	}
	if s.Venue != nil {
		v := venueFromDTO(*s.Venue)
		sel.Venue = &v
	}
	return sel
}

func selectionToDTO(sel filter.Selection) Selection {
	s := Selection{
		Query:            sel.Query,
		Domains:          sel.Domains,
		Students:         sel.Students,
		Categories:       sel.Categories,
		Formats:          sel.Formats,
		EventAddressType: string(sel.EventAddressType),
		Departments:      sel.Departments,
		Academies:        sel.Academies,
		Geoloc:           sel.Geoloc,
		GeolocRadius:     sel.GeolocRadius,
		UAICodes:         sel.UAICodes,
	}
	if sel.Venue != nil {
		v := venueToDTO(*sel.Venue)
		s.Venue = &v
	}
	return s
}

func venueFromDTO(v Venue) filter.Venue {
	return filter.Venue{
		ID:             v.ID,
		Name:           v.Name,
		PublicName:     v.PublicName,
		DepartmentCode: v.DepartmentCode,
		RelativeIDs:    v.RelativeIDs,
	}
}

func venueToDTO(v filter.Venue) Venue {
	return Venue{
		ID:             v.ID,
		Name:           v.Name,
		PublicName:     v.PublicName,
		DepartmentCode: v.DepartmentCode,
		RelativeIDs:    v.RelativeIDs,
	}
}

func institutionFromDTO(i Institution) institution.Institution {
	return institution.Institution{
		UAI:            i.UAI,
		Name:           i.Name,
		DepartmentCode: i.DepartmentCode,
		Latitude:       i.Latitude,
		Longitude:      i.Longitude,
	}
}

func facetsToDTO(c filter.Compiled) FacetsResponse {
	active := c.ActiveKeys
	if active == nil {
		active = []string{}
	}
	return FacetsResponse{Facets: c.Facets(), ActiveFilters: active}
}

func offersToDTO(out offersuc.Outcome) SearchOffersResponse {
	items := make([]OfferItem, len(out.Page.Hits))
	for i := range out.Page.Hits {
		items[i] = offerToDTO(&out.Page.Hits[i])
	}
	return SearchOffersResponse{
		FacetsResponse: facetsToDTO(out.Compiled),
		Items:          items,
		Total:          out.Page.Total,
		Mode:           string(out.Page.Mode),
		Fallback:       out.Page.IsFallback(),
	}
}

func offerToDTO(r *result.Result) OfferItem {
	return OfferItem{
		ID:         r.ID(),
		Score:      r.Score(),
		Fields:     r.Fields(),
		DistanceKm: r.DistanceKm(),
	}
}

func localisationToDTO(v locuc.View) LocalisationSession {
	return LocalisationSession{
		ID:           v.ID,
		Mode:         string(v.Mode),
		Departments:  nonNil(v.Departments),
		Academies:    nonNil(v.Academies),
		RadiusKm:     v.RadiusKm,
		CanGeolocate: v.CanGeolocate,
	}
}

func suggestionsToDTO(set suggestion.Set) SuggestionsResponse {
	resp := SuggestionsResponse{
		History:  nonNil(set.History),
		Venues:   make([]VenueMatch, len(set.Venues)),
		Keywords: make([]KeywordMatch, len(set.Keywords)),
	}
	for i, v := range set.Venues {
		resp.Venues[i] = VenueMatch{ID: v.ID, Label: v.Label, OffererLabel: v.OffererLabel}
	}
	for i, k := range set.Keywords {
		resp.Keywords[i] = KeywordMatch{
			Text:           k.Text,
			HitCount:       k.HitCount,
			SubcategoryIDs: k.SubcategoryIDs,
			CategoryLabels: k.CategoryLabels,
		}
	}
	items := set.Items()
	resp.Items = make([]SuggestionItem, len(items))
	for i, it := range items {
		resp.Items[i] = SuggestionItem{Source: string(it.Source), Text: it.Text, VenueID: it.VenueID, Detail: it.Detail}
	}
	return resp
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
