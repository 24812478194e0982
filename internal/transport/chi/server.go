package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/itemsearch/internal/domain"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/itemsearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
	healthuc "github.com/kailas-cloud/itemsearch/internal/usecase/health"
)

// Searcher runs hybrid searches.
type Searcher interface {
	Search(ctx context.Context, query string, filters filter.Filters) (result.Response, error)
	ExpandQuery(query string) domsyn.ExpandedQuery
}

// SynonymIndex is the in-memory synonym index.
type SynonymIndex interface {
	Refresh(ctx context.Context) error
	FindGroupsContaining(term string) []domsyn.Group
	Vocabulary() []string
}

// SynonymWriter changes stored synonym groups.
type SynonymWriter interface {
	Deactivate(ctx context.Context, category, canonical string) error
}

// HealthReporter aggregates component health.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}

// SearchDefaults apply when a search request leaves limit or fuzzy_threshold unset.
type SearchDefaults struct {
	Limit          int
	MaxLimit       int
	FuzzyThreshold int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface.
type Server struct {
	search        Searcher
	synonyms      SynonymIndex
	synonymStore  SynonymWriter
	health        HealthReporter
	defaults      SearchDefaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	synonyms SynonymIndex,
	synonymStore SynonymWriter,
	health HealthReporter,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:       search,
		synonyms:     synonyms,
		synonymStore: synonymStore,
		health:       health,
		logger:       logger,
		defaults: SearchDefaults{
			Limit:          filter.DefaultLimit,
			MaxLimit:       filter.MaxLimit,
			FuzzyThreshold: filter.DefaultFuzzyThreshold,
		},
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidSynonymGroup, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, ErrorCodeIndexUnavailable),
	}
	return s
}

// WithSearchDefaults overrides the request defaults.
// Non-positive limits and a negative threshold keep the current value.
func (s *Server) WithSearchDefaults(d SearchDefaults) *Server {
	if d.Limit > 0 {
		s.defaults.Limit = d.Limit
	}
	if d.MaxLimit > 0 {
		s.defaults.MaxLimit = d.MaxLimit
	}
	if d.FuzzyThreshold >= 0 {
		s.defaults.FuzzyThreshold = d.FuzzyThreshold
	}
	return s
}

// SearchItems handles GET /api/v1/search.
func (s *Server) SearchItems(w http.ResponseWriter, r *http.Request, params SearchItemsParams) {
	filters, err := filtersFromParams(params, s.defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), deref(params.Q), filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseToAPI(resp))
}

// ExpandSynonyms handles GET /api/v1/synonyms/expand.
func (s *Server) ExpandSynonyms(w http.ResponseWriter, _ *http.Request, params ExpandSynonymsParams) {
	eq := s.search.ExpandQuery(params.Q)
	terms := eq.Terms()
	if terms == nil {
		terms = []string{}
	}
	writeJSON(w, http.StatusOK, ExpandResponse{
		OriginalQuery: eq.Original(),
		ExpandedTerms: terms,
		SynonymsFound: eq.SynonymsFound(),
	})
}

// ListSynonymGroups handles GET /api/v1/synonyms/groups.
func (s *Server) ListSynonymGroups(w http.ResponseWriter, _ *http.Request, params ListSynonymGroupsParams) {
	groups := s.synonyms.FindGroupsContaining(params.Term)
	out := make([]SynonymGroup, len(groups))
	for i := range groups {
		out[i] = synonymGroupToAPI(&groups[i])
	}
	writeJSON(w, http.StatusOK, SynonymGroupsResponse{Groups: out})
}

// RefreshSynonyms handles POST /api/v1/synonyms/refresh.
func (s *Server) RefreshSynonyms(w http.ResponseWriter, r *http.Request) {
	if err := s.synonyms.Refresh(r.Context()); err != nil {
		s.logger.Error("synonym refresh failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, ErrorCodeIndexUnavailable, "synonym refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, RefreshResponse{Status: "ok", Terms: len(s.synonyms.Vocabulary())})
}

// DeactivateSynonymGroup handles POST /api/v1/synonyms/deactivate.
// The group stays stored but is excluded from expansion after the index reloads.
func (s *Server) DeactivateSynonymGroup(w http.ResponseWriter, r *http.Request) {
	var req DeactivateSynonymGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if domsyn.Normalize(req.Canonical) == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "canonical name is required")
		return
	}

	if err := s.synonymStore.Deactivate(r.Context(), req.Category, req.Canonical); err != nil {
		s.handleDomainError(w, err)
		return
	}
	if err := s.synonyms.Refresh(r.Context()); err != nil {
		// the periodic refresher will pick the change up
		s.logger.Warn("synonym refresh after deactivate failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
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
		domain.ErrInvalidFilter,
		domain.ErrInvalidSynonymGroup,
		domain.ErrNotFound,
		domain.ErrIndexUnavailable,
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
