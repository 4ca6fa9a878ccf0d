package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/logger"
	locuc "github.com/kailas-cloud/eacsearch/internal/usecase/localisation"
)

// OpenLocalisation handles POST /v1/localisation/sessions.
func (s *Server) OpenLocalisation(w http.ResponseWriter, r *http.Request) {
	var req OpenLocalisationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v := s.localisation.Open(r.Context(), institutionFromDTO(req.Institution), selectionFromDTO(req.Selection))
	writeJSON(w, http.StatusCreated, localisationToDTO(v))
}

// GetLocalisation handles GET /v1/localisation/sessions/{id}.
func (s *Server) GetLocalisation(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "id", &id) {
		return
	}
	v, err := s.localisation.Get(id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, localisationToDTO(v))
}

// ApplyLocalisation handles POST /v1/localisation/sessions/{id}/{action}.
// A refused transition is not an error: the unchanged state comes back
// flagged as refused.
func (s *Server) ApplyLocalisation(w http.ResponseWriter, r *http.Request) {
	var id, action string
	if !pathParam(w, r, "id", &id) || !pathParam(w, r, "action", &action) {
		return
	}
	ctx := logger.With(r.Context(), zap.String("action", action))
	v, err := s.localisation.Apply(ctx, id, locuc.Action(action))
	s.writeLocalisation(w, v, err)
}

// SetLocalisationValues handles PUT /v1/localisation/sessions/{id}/values.
func (s *Server) SetLocalisationValues(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "id", &id) {
		return
	}
	var req LocalisationValuesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := s.localisation.SetValues(r.Context(), id, locuc.Values{
		Departments: req.Departments,
		Academies:   req.Academies,
		RadiusKm:    req.RadiusKm,
	})
	s.writeLocalisation(w, v, err)
}

// CommitLocalisation handles POST /v1/localisation/sessions/{id}/commit.
func (s *Server) CommitLocalisation(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "id", &id) {
		return
	}
	var req CommitLocalisationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sel, v, err := s.localisation.Commit(r.Context(), id, selectionFromDTO(req.Selection))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CommitLocalisationResponse{
		Selection: selectionToDTO(sel),
		Session:   localisationToDTO(v),
	})
}

func (s *Server) writeLocalisation(w http.ResponseWriter, v locuc.View, err error) {
	if err != nil && !errors.Is(err, domain.ErrTransitionRefused) {
		s.handleDomainError(w, err)
		return
	}
	resp := localisationToDTO(v)
	resp.Refused = err != nil
	writeJSON(w, http.StatusOK, resp)
}
