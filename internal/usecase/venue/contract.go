package venue

import (
	"context"

	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
)

// Catalog reads venues from the catalogue database.
type Catalog interface {
	FindByID(ctx context.Context, id int64, withRelatives bool) (filter.Venue, error)
}
