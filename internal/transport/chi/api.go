package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorCode is a machine-readable error code returned in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeIndexUnavailable ErrorCode = "index_unavailable"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchItemsParams are the query parameters of GET /api/v1/search.
type SearchItemsParams struct {
	Q              *string   `form:"q,omitempty" json:"q,omitempty"`
	Location       *[]string `form:"location,omitempty" json:"location,omitempty"`
	AllLocations   *bool     `form:"all_locations,omitempty" json:"all_locations,omitempty"`
	Category       *string   `form:"category,omitempty" json:"category,omitempty"`
	StorageType    *string   `form:"storage_type,omitempty" json:"storage_type,omitempty"`
	Expiration     *string   `form:"expiration,omitempty" json:"expiration,omitempty"`
	Limit          *int      `form:"limit,omitempty" json:"limit,omitempty"`
	FuzzyThreshold *int      `form:"fuzzy_threshold,omitempty" json:"fuzzy_threshold,omitempty"`
}

// ExpandSynonymsParams are the query parameters of GET /api/v1/synonyms/expand.
type ExpandSynonymsParams struct {
	Q string `form:"q" json:"q"`
}

// ListSynonymGroupsParams are the query parameters of GET /api/v1/synonyms/groups.
type ListSynonymGroupsParams struct {
	Term string `form:"term" json:"term"`
}

// DeactivateSynonymGroupRequest is the body of POST /api/v1/synonyms/deactivate.
type DeactivateSynonymGroupRequest struct {
	Category  string `json:"category"`
	Canonical string `json:"canonical"`
}

// SearchItem is a single search hit.
type SearchItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	AlternateNames []string `json:"alternateNames,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	Model          string   `json:"model,omitempty"`
	Description    string   `json:"description,omitempty"`
	LocationID     string   `json:"locationId,omitempty"`
	CategoryID     string   `json:"categoryId,omitempty"`
	StorageType    string   `json:"storageType,omitempty"`
	ExpiresAt      *int64   `json:"expiresAt,omitempty"`
	Perishable     bool     `json:"perishable"`
	Score          float64  `json:"score"`
	MatchedField   string   `json:"matchedField,omitempty"`
	Source         string   `json:"source"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Items        []SearchItem `json:"items"`
	FuzzyMatches int          `json:"fuzzyMatches"`
	Suggestions  []string     `json:"suggestions"`
	SynonymsUsed []string     `json:"synonymsUsed"`
	SearchMethod string       `json:"searchMethod"`
}

// ExpandResponse is the body of GET /api/v1/synonyms/expand.
type ExpandResponse struct {
	OriginalQuery string   `json:"originalQuery"`
	ExpandedTerms []string `json:"expandedTerms"`
	SynonymsFound bool     `json:"synonymsFound"`
}

// SynonymGroup is the wire form of a synonym group.
type SynonymGroup struct {
	CanonicalName string   `json:"canonicalName"`
	Synonyms      []string `json:"synonyms"`
	Category      string   `json:"category,omitempty"`
	IsSystem      bool     `json:"isSystem"`
	IsActive      bool     `json:"isActive"`
}

// SynonymGroupsResponse is the body of GET /api/v1/synonyms/groups.
type SynonymGroupsResponse struct {
	Groups []SynonymGroup `json:"groups"`
}

// RefreshResponse is the body of POST /api/v1/synonyms/refresh.
type RefreshResponse struct {
	Status string `json:"status"`
	Terms  int    `json:"terms"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ServerInterface is implemented by the HTTP handlers.
type ServerInterface interface {
	// (GET /api/v1/search)
	SearchItems(w http.ResponseWriter, r *http.Request, params SearchItemsParams)
	// (GET /api/v1/synonyms/expand)
	ExpandSynonyms(w http.ResponseWriter, r *http.Request, params ExpandSynonymsParams)
	// (GET /api/v1/synonyms/groups)
	ListSynonymGroups(w http.ResponseWriter, r *http.Request, params ListSynonymGroupsParams)
	// (POST /api/v1/synonyms/refresh)
	RefreshSynonyms(w http.ResponseWriter, r *http.Request)
	// (POST /api/v1/synonyms/deactivate)
	DeactivateSynonymGroup(w http.ResponseWriter, r *http.Request)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a query parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts every route of si on options.BaseRouter.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		}
	}
	wrapper := serverInterfaceWrapper{handler: si, errorHandlerFunc: options.ErrorHandlerFunc}

	r.Get("/api/v1/search", wrapper.SearchItems)
	r.Get("/api/v1/synonyms/expand", wrapper.ExpandSynonyms)
	r.Get("/api/v1/synonyms/groups", wrapper.ListSynonymGroups)
	r.Post("/api/v1/synonyms/refresh", si.RefreshSynonyms)
	r.Post("/api/v1/synonyms/deactivate", si.DeactivateSynonymGroup)
	r.Get("/health", si.HealthCheck)
	r.Get("/metrics", si.Metrics)
	return r
}

type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// bindQuery binds a form-style exploded query parameter into dest.
func bindQuery(r *http.Request, name string, required bool, dest any) error {
	if err := runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest); err != nil {
		return &InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func (siw *serverInterfaceWrapper) SearchItems(w http.ResponseWriter, r *http.Request) {
	var params SearchItemsParams
	bindings := []struct {
		name     string
		required bool
		dest     any
	}{
		{"q", false, &params.Q},
		{"location", false, &params.Location},
		{"all_locations", false, &params.AllLocations},
		{"category", false, &params.Category},
		{"storage_type", false, &params.StorageType},
		{"expiration", false, &params.Expiration},
		{"limit", false, &params.Limit},
		{"fuzzy_threshold", false, &params.FuzzyThreshold},
	}
	for _, b := range bindings {
		if err := bindQuery(r, b.name, b.required, b.dest); err != nil {
			siw.errorHandlerFunc(w, r, err)
			return
		}
	}
	siw.handler.SearchItems(w, r, params)
}

func (siw *serverInterfaceWrapper) ExpandSynonyms(w http.ResponseWriter, r *http.Request) {
	var params ExpandSynonymsParams
	if err := bindQuery(r, "q", true, &params.Q); err != nil {
		siw.errorHandlerFunc(w, r, err)
		return
	}
	siw.handler.ExpandSynonyms(w, r, params)
}

func (siw *serverInterfaceWrapper) ListSynonymGroups(w http.ResponseWriter, r *http.Request) {
	var params ListSynonymGroupsParams
	if err := bindQuery(r, "term", true, &params.Term); err != nil {
		siw.errorHandlerFunc(w, r, err)
		return
	}
	siw.handler.ListSynonymGroups(w, r, params)
}
