package chi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/logger"
)

// GetVenue handles GET /v1/venues/{id}?relative=true.
func (s *Server) GetVenue(w http.ResponseWriter, r *http.Request) {
	var (
		id       int64
		relative bool
	)
	if !pathParam(w, r, "id", &id) || !queryParam(w, r, "relative", &relative) {
		return
	}

	ctx := logger.With(r.Context(), zap.Int64("venue_id", id))
	v, err := s.venues.Get(ctx, id, relative)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venueToDTO(v))
}
