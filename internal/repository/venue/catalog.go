package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
)

// querier is the consumer interface over a pgx pool (ISP).
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const venueQuery = `
	SELECT v.id, v.name, COALESCE(v.public_name, ''), COALESCE(v.department_code, '')
	FROM venue v
	WHERE v.id = $1`

// Relatives are the other venues of the same managing offerer.
const venueWithRelativesQuery = `
	SELECT v.id, v.name, COALESCE(v.public_name, ''), COALESCE(v.department_code, ''),
		ARRAY(
			SELECT r.id FROM venue r
			WHERE r.managing_offerer_id = v.managing_offerer_id AND r.id <> v.id
			ORDER BY r.id
		)
	FROM venue v
	WHERE v.id = $1`

// Catalog reads venues from the catalogue database.
type Catalog struct {
	db querier
}

// NewCatalog creates a catalogue reader.
func NewCatalog(q querier) *Catalog {
	return &Catalog{db: q}
}

// FindByID returns the venue used as a search filter. With withRelatives the
// ids of the venues sharing its offerer are attached.
func (c *Catalog) FindByID(ctx context.Context, id int64, withRelatives bool) (filter.Venue, error) {
	var v filter.Venue
	var err error
	if withRelatives {
		var relatives []int64
		err = c.db.QueryRow(ctx, venueWithRelativesQuery, id).
			Scan(&v.ID, &v.Name, &v.PublicName, &v.DepartmentCode, &relatives)
		v.RelativeIDs = relatives
	} else {
		err = c.db.QueryRow(ctx, venueQuery, id).
			Scan(&v.ID, &v.Name, &v.PublicName, &v.DepartmentCode)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return filter.Venue{}, fmt.Errorf("venue %d: %w", id, domain.ErrNotFound)
		}
		return filter.Venue{}, fmt.Errorf("find venue %d: %w", id, err)
	}
	if v.RelativeIDs == nil && withRelatives {
		v.RelativeIDs = []int64{}
	}
	return v, nil
}
