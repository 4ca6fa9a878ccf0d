package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/eacsearch/internal/domain"
	healthuc "github.com/kailas-cloud/eacsearch/internal/usecase/health"
	locuc "github.com/kailas-cloud/eacsearch/internal/usecase/localisation"
	offersuc "github.com/kailas-cloud/eacsearch/internal/usecase/offers"
	suggestuc "github.com/kailas-cloud/eacsearch/internal/usecase/suggest"
	venueuc "github.com/kailas-cloud/eacsearch/internal/usecase/venue"
	"github.com/kailas-cloud/eacsearch/internal/version"
)

// UserIDHeader scopes the search history to a user.
const UserIDHeader = "X-User-ID"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search API.
type Server struct {
	offers        *offersuc.Service
	localisation  *locuc.Service
	suggest       *suggestuc.Service
	venues        *venueuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	offers *offersuc.Service,
	localisation *locuc.Service,
	suggest *suggestuc.Service,
	venues *venueuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		offers:       offers,
		localisation: localisation,
		suggest:      suggest,
		venues:       venues,
		health:       health,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, ErrorCodeSessionNotFound),
		sentinelHandler(domain.ErrInvalidSelection, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrUnknownAction, http.StatusBadRequest, ErrorCodeUnknownAction),
		sentinelHandler(domain.ErrEmbeddingProviderError,
			http.StatusBadGateway, ErrorCodeEmbeddingProviderError),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/offers/search", s.SearchOffers)
		r.Post("/offers/facets", s.CompileFacets)

		r.Route("/localisation/sessions", func(r chi.Router) {
			r.Post("/", s.OpenLocalisation)
			r.Get("/{id}", s.GetLocalisation)
			r.Put("/{id}/values", s.SetLocalisationValues)
			r.Post("/{id}/commit", s.CommitLocalisation)
			r.Post("/{id}/{action}", s.ApplyLocalisation)
		})

		r.Route("/suggest/sessions", func(r chi.Router) {
			r.Post("/", s.OpenSuggest)
			r.Get("/{id}", s.GetSuggestions)
			r.Delete("/{id}", s.CloseSuggest)
			r.Post("/{id}/submit", s.SubmitQuery)
			r.Delete("/{id}/history", s.ClearHistory)
			r.Post("/{id}/panel/{event}", s.PanelEvent)
		})

		r.Get("/venues/{id}", s.GetVenue)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.String(),
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathParam binds a path parameter the way generated chi wrappers do.
func pathParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
			fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		return false
	}
	return true
}

func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
			fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		return false
	}
	return true
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage.Used() {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrSessionNotFound,
		domain.ErrInvalidSelection,
		domain.ErrUnknownAction,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
