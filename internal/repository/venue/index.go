package venue

import (
	"github.com/kailas-cloud/eacsearch/internal/db"
	"github.com/kailas-cloud/eacsearch/internal/domain"
)

// KeyPrefix is the hash key prefix of indexed venues.
var KeyPrefix = domain.KeyPrefix + "venue:"

// Indexed hash fields.
const (
	FieldID             = "venue.id"
	FieldName           = "venue.name"
	FieldPublicName     = "venue.publicName"
	FieldDepartmentCode = "venue.departmentCode"
	FieldOffererName    = "offerer.name"
)

// Index returns the definition of the venue name index used for suggestions.
func Index(name string) *db.IndexDefinition {
	return db.NewIndex(name).
		Prefix(KeyPrefix).
		Language(db.LanguageFrench).
		ProperName(FieldPublicName, 2).
		ProperName(FieldName, 1).
		ProperName(FieldOffererName, 0.5).
		Facet(FieldID).
		Facet(FieldDepartmentCode).
		MustBuild()
}
