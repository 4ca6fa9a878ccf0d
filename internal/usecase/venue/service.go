// Package venue resolves the venue filter picked from the suggestion list.
package venue

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/eacsearch/internal/logger"
)

// Service handles venue filter lookups.
type Service struct {
	catalog Catalog
}

// New creates a venue service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Get returns the venue filter for id. With relatives the venues of the same
// offerer are attached, so the search also covers them.
func (s *Service) Get(ctx context.Context, id int64, relatives bool) (filter.Venue, error) {
	if id <= 0 {
		return filter.Venue{}, fmt.Errorf("venue id must be positive: %w", domain.ErrInvalidSelection)
	}
	v, err := s.catalog.FindByID(ctx, id, relatives)
	if err != nil {
		return filter.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	logger.FromContext(ctx).Debug("venue resolved",
		zap.Int64("venue_id", id), zap.Int("relatives", len(v.RelativeIDs)))
	return v, nil
}
