// Package offers runs the offer search: compile the selection into facet
// groups, query the index, and fall back to a semantic search when nothing
// matches.
package offers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain/feature"
	"github.com/kailas-cloud/eacsearch/internal/domain/geo"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/request"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/result"
	"github.com/kailas-cloud/eacsearch/internal/logger"
	"github.com/kailas-cloud/eacsearch/internal/metrics"
)

// Outcome is a result page together with the facets that produced it.
type Outcome struct {
	Compiled filter.Compiled
	Page     result.Page
}

// Service handles offer searches.
type Service struct {
	repo            Repository
	embed           Embedder
	toggles         feature.Toggles
	defaultPageSize int
	maxPageSize     int
}

// New creates an offer search service. embed may be nil, which disables
// the semantic fallback.
func New(repo Repository, embed Embedder, toggles feature.Toggles) *Service {
	return &Service{
		repo:            repo,
		embed:           embed,
		toggles:         toggles,
		defaultPageSize: request.DefaultLimit,
		maxPageSize:     request.MaxLimit,
	}
}

// WithPagination overrides the default and maximum page sizes.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 && maxPageSize <= request.MaxLimit {
		s.maxPageSize = maxPageSize
	}
	return s
}

// PageSize resolves a requested page size against the configured bounds.
func (s *Service) PageSize(requested int) int {
	if requested <= 0 {
		requested = s.defaultPageSize
	}
	return min(requested, s.maxPageSize)
}

// Compile turns a selection into facet groups without searching.
func (s *Service) Compile(sel filter.Selection) filter.Compiled {
	return filter.Compile(sel, s.toggles)
}

// Search runs a faceted search. When it matches nothing on the first page
// and a query was typed, the query is embedded and the closest offers are
// returned instead, ignoring facets.
func (s *Service) Search(ctx context.Context, req *request.Request) (Outcome, error) {
	compiled := s.Compile(req.Selection())
	out := Outcome{Compiled: compiled}

	near := s.nearFor(req)

	start := time.Now()
	hits, total, err := s.repo.SearchFacets(ctx, req.Query(), compiled.Facets(), near, req.Limit(), req.Offset())
	observe(result.ModeFaceted, start, err)
	if err != nil {
		return Outcome{}, fmt.Errorf("search offers: %w", err)
	}
	out.Page = result.Page{Hits: hits, Total: total, Mode: result.ModeFaceted}

	if total == 0 && req.Query() != "" && req.Offset() == 0 && s.embed != nil {
		if page, ok := s.fallback(ctx, req); ok {
			out.Page = page
		}
	}

	out.Page.Hits = withDistances(out.Page.Hits, req)

	logger.FromContext(ctx).Info("offer search",
		zap.String("mode", string(out.Page.Mode)),
		zap.Strings("active_filters", compiled.ActiveKeys),
		zap.Int("groups", len(compiled.Groups)),
		zap.Bool("geoloc", near != nil),
		zap.Int("total", out.Page.Total),
	)
	return out, nil
}

// fallback runs the semantic search. Failures are logged and leave the
// empty faceted page in place.
func (s *Service) fallback(ctx context.Context, req *request.Request) (result.Page, bool) {
	start := time.Now()

	emb, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		observe(result.ModeSemantic, start, err)
		logger.FromContext(ctx).Warn("semantic fallback: embed failed", zap.Error(err))
		return result.Page{}, false
	}

	hits, err := s.repo.SearchKNN(ctx, emb.Embedding, req.Limit())
	observe(result.ModeSemantic, start, err)
	if err != nil {
		logger.FromContext(ctx).Warn("semantic fallback: knn failed", zap.Error(err))
		return result.Page{}, false
	}
	return result.Page{Hits: hits, Total: len(hits), Mode: result.ModeSemantic}, true
}

// nearFor returns the radius clause of a geolocated selection. Without the
// geolocation toggle the selection's radius is ignored.
func (s *Service) nearFor(req *request.Request) *geo.Circle {
	if !s.toggles.GeolocationEnabled {
		return nil
	}
	radius, ok := req.RadiusKm()
	if !ok {
		return nil
	}
	center, _ := req.Institution().Location()
	return &geo.Circle{Center: center, RadiusKm: radius}
}

// withDistances fills the distance to the institution on hits with a known
// location.
func withDistances(hits []result.Result, req *request.Request) []result.Result {
	from, ok := req.Institution().Location()
	if !ok {
		return hits
	}
	for i, h := range hits {
		if to, ok := h.Location(); ok {
			hits[i] = h.WithDistanceKm(geo.DistanceKm(from, to))
		}
	}
	return hits
}

func observe(m result.Mode, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.OfferSearchTotal.WithLabelValues(string(m), status).Inc()
	metrics.OfferSearchDuration.WithLabelValues(string(m)).Observe(time.Since(start).Seconds())
}
