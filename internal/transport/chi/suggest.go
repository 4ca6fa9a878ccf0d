package chi

import (
	"fmt"
	"net/http"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	"github.com/kailas-cloud/eacsearch/internal/domain/notice"
	"github.com/kailas-cloud/eacsearch/internal/domain/suggestion"
	suggestuc "github.com/kailas-cloud/eacsearch/internal/usecase/suggest"
)

// OpenSuggest handles POST /v1/suggest/sessions. The response carries the
// history-only suggestions shown before anything is typed.
func (s *Server) OpenSuggest(w http.ResponseWriter, r *http.Request) {
	ctx, notices := notice.NewContext(r.Context())
	id, sess := s.suggest.Open(ctx, r.Header.Get(UserIDHeader))

	set, _ := sess.Suggest(ctx, "")
	writeJSON(w, http.StatusCreated, suggestionsResponse(id, sess, set, false, notices))
}

// GetSuggestions handles GET /v1/suggest/sessions/{id}?q=&seq=. Without seq
// the server issues the next sequence number.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	var (
		id  string
		q   string
		seq uint64
	)
	if !pathParam(w, r, "id", &id) || !queryParam(w, r, "q", &q) || !queryParam(w, r, "seq", &seq) {
		return
	}
	sess, err := s.suggest.Get(id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx, notices := notice.NewContext(r.Context())
	var (
		set suggestion.Set
		ok  bool
	)
	if seq == 0 {
		set, ok = sess.Suggest(ctx, q)
		seq = sess.Latest()
	} else {
		set, ok = sess.SuggestSeq(ctx, seq, q)
	}

	resp := suggestionsResponse(id, sess, set, !ok, notices)
	resp.Seq = seq
	writeJSON(w, http.StatusOK, resp)
}

// SubmitQuery handles POST /v1/suggest/sessions/{id}/submit. The submitted
// query moves to the front of the history and the panel closes.
func (s *Server) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := s.suggestSession(w, r)
	if !ok {
		return
	}
	var req SubmitQueryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess.Submit(r.Context(), req.Query)

	set, fresh := sess.Suggest(r.Context(), "")
	writeJSON(w, http.StatusOK, suggestionsResponse(id, sess, set, !fresh, nil))
}

// ClearHistory handles DELETE /v1/suggest/sessions/{id}/history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := s.suggestSession(w, r)
	if !ok {
		return
	}
	sess.ClearHistory(r.Context())

	set, fresh := sess.Suggest(r.Context(), "")
	writeJSON(w, http.StatusOK, suggestionsResponse(id, sess, set, !fresh, nil))
}

// PanelEvent handles POST /v1/suggest/sessions/{id}/panel/{event}.
func (s *Server) PanelEvent(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.suggestSession(w, r)
	if !ok {
		return
	}
	var event string
	if !pathParam(w, r, "event", &event) {
		return
	}
	e := suggestion.Event(event)
	if !e.IsValid() {
		s.handleDomainError(w, fmt.Errorf("panel event %q: %w", event, domain.ErrUnknownAction))
		return
	}
	writeJSON(w, http.StatusOK, PanelResponse{Panel: string(sess.On(e))})
}

// CloseSuggest handles DELETE /v1/suggest/sessions/{id}.
func (s *Server) CloseSuggest(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "id", &id) {
		return
	}
	if err := s.suggest.Close(id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) suggestSession(w http.ResponseWriter, r *http.Request) (*suggestuc.Session, string, bool) {
	var id string
	if !pathParam(w, r, "id", &id) {
		return nil, "", false
	}
	sess, err := s.suggest.Get(id)
	if err != nil {
		s.handleDomainError(w, err)
		return nil, "", false
	}
	return sess, id, true
}

func suggestionsResponse(
	id string, sess *suggestuc.Session, set suggestion.Set, stale bool, notices *notice.Collector,
) SuggestionsResponse {
	resp := suggestionsToDTO(set)
	resp.SessionID = id
	resp.Seq = sess.Latest()
	resp.Stale = stale
	resp.Panel = string(sess.Panel())
	resp.HistoryAvailable = sess.HistoryAvailable()
	resp.Notices = notices.Notices()
	return resp
}
