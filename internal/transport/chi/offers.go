package chi

import (
	"net/http"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/notice"
	"github.com/kailas-cloud/eacsearch/internal/domain/search/request"
)

// SearchOffers handles POST /v1/offers/search.
func (s *Server) SearchOffers(w http.ResponseWriter, r *http.Request) {
	var req SearchOffersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	searchReq, err := request.New(
		selectionFromDTO(req.Selection), institutionFromDTO(req.Institution),
		s.offers.PageSize(req.Limit), req.Offset,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	ctx, notices := notice.NewContext(ctx)
	out, err := s.offers.Search(ctx, &searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := offersToDTO(out)
	resp.Limit = searchReq.Limit()
	resp.Offset = searchReq.Offset()
	resp.Notices = notices.Notices()

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, resp)
}

// CompileFacets handles POST /v1/offers/facets.
func (s *Server) CompileFacets(w http.ResponseWriter, r *http.Request) {
	var req SearchOffersRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, facetsToDTO(s.offers.Compile(selectionFromDTO(req.Selection))))
}
