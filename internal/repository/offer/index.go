package offer

import (
	"github.com/kailas-cloud/eacsearch/internal/db"
	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
)

// KeyPrefix is the hash key prefix of indexed offers.
var KeyPrefix = domain.KeyPrefix + "offer:"

// Stored offer fields returned with each hit.
const (
	FieldName            = "offer.name"
	FieldDescription     = "offer.description"
	FieldVenueName       = "venue.name"
	FieldVenuePublicName = "venue.publicName"
	FieldOffererName     = "offerer.name"
	FieldGeoloc          = "venue.geoloc"
	FieldVector          = "vector"
)

// ReturnFields are the offer attributes shown on result cards.
var ReturnFields = []string{
	FieldName,
	FieldDescription,
	FieldVenueName,
	FieldVenuePublicName,
	FieldOffererName,
	filter.FacetSubcategory,
	filter.FacetEventAddressType,
	filter.FacetVenueDepartment,
	FieldGeoloc,
}

// facetAttributes lists every attribute the filter compiler can emit.
var facetAttributes = []string{
	filter.FacetEventAddressType,
	filter.FacetStudents,
	filter.FacetDomains,
	filter.FacetSchoolIntervention,
	filter.FacetInterventionArea,
	filter.FacetVenueDepartment,
	filter.FacetVenueAcademy,
	filter.FacetSubcategory,
	filter.FacetFormats,
	filter.FacetInstitutionUAICode,
	filter.FacetVenueID,
}

// Index returns the offers index definition. A non-nil vector adds the
// embedding field searched by the semantic fallback.
func Index(name string, vector *db.VectorOptions) *db.IndexDefinition {
	b := db.NewIndex(name).
		Prefix(KeyPrefix).
		Language(db.LanguageFrench).
		Text(FieldName, 3).
		Text(FieldDescription, 1).
		ProperName(FieldVenuePublicName, 1).
		ProperName(FieldVenueName, 0.5).
		ProperName(FieldOffererName, 0.5)

	for _, attr := range facetAttributes {
		b = b.Facet(attr)
	}

	b = b.Geo(FieldGeoloc)

	if vector != nil {
		b = b.Vector(FieldVector, *vector)
	}
	return b.MustBuild()
}
