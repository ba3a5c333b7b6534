package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quarrylabs/quarry/internal/domain"
	"github.com/quarrylabs/quarry/internal/domain/search/direction"
	"github.com/quarrylabs/quarry/internal/domain/search/request"
	"github.com/quarrylabs/quarry/internal/domain/search/result"
	"github.com/quarrylabs/quarry/internal/metrics"
	healthuc "github.com/quarrylabs/quarry/internal/usecase/health"
	searchuc "github.com/quarrylabs/quarry/internal/usecase/search"
)

// Error response codes.
const (
	codeBadRequest             = "bad_request"
	codeValidationFailed       = "validation_failed"
	codeRetrievalFailed        = "retrieval_failed"
	codeEmbeddingProviderError = "embedding_provider_error"
	codeInternalError          = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidDirection, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrRetrievalFailed, http.StatusServiceUnavailable, codeRetrievalFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
	}
	return s
}

// Routes mounts the API handlers onto a router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/v1/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchRequest is the inbound search payload.
type searchRequest struct {
	Query      string `json:"query"`
	Pagination *struct {
		Limit     int    `json:"limit,omitempty"`
		Cursor    string `json:"cursor,omitempty"`
		Direction string `json:"direction,omitempty"`
	} `json:"pagination,omitempty"`
}

// searchResponse is the response envelope.
type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Meta  searchMeta         `json:"meta"`
}

type searchResultItem struct {
	ObjectID     string   `json:"object_id"`
	FusedScore   float64  `json:"fused_score"`
	LexicalScore *float64 `json:"lexical_score,omitempty"`
	VectorScore  *float64 `json:"vector_score,omitempty"`
}

type searchMeta struct {
	TotalEstimate int             `json:"total_estimate"`
	NextCursor    *string         `json:"nextCursor"`
	PrevCursor    *string         `json:"prevCursor"`
	HasNext       bool            `json:"hasNext"`
	HasPrev       bool            `json:"hasPrev"`
	Request       searchMetaQuery `json:"request"`
}

type searchMetaQuery struct {
	Limit          int    `json:"limit"`
	RequestedLimit int    `json:"requested_limit"`
	Direction      string `json:"direction"`
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	limit := 0
	cursor := ""
	dir := direction.Direction("")
	if req.Pagination != nil {
		limit = req.Pagination.Limit
		cursor = req.Pagination.Cursor
		dir = direction.Direction(req.Pagination.Direction)
	}

	searchReq, err := request.New(req.Query, limit, cursor, dir)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(dir), "invalid").Inc()
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &searchReq)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(searchReq.Direction()), "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(searchReq.Direction()), "success").Inc()
	writeJSON(w, http.StatusOK, toSearchResponse(resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func toSearchResponse(resp *searchuc.Response) searchResponse {
	items := make([]searchResultItem, len(resp.Items))
	for i := range resp.Items {
		items[i] = toSearchResultItem(&resp.Items[i])
	}

	return searchResponse{
		Items: items,
		Meta: searchMeta{
			TotalEstimate: resp.Meta.TotalEstimate,
			NextCursor:    optString(resp.Meta.NextCursor),
			PrevCursor:    optString(resp.Meta.PrevCursor),
			HasNext:       resp.Meta.HasNext,
			HasPrev:       resp.Meta.HasPrev,
			Request: searchMetaQuery{
				Limit:          resp.Meta.Limit,
				RequestedLimit: resp.Meta.RequestedLimit,
				Direction:      string(resp.Meta.Direction),
			},
		},
	}
}

func toSearchResultItem(r *result.Result) searchResultItem {
	item := searchResultItem{
		ObjectID:   r.ObjectID(),
		FusedScore: r.FusedScore(),
	}
	if lex, ok := r.LexicalScore(); ok {
		item.LexicalScore = &lex
	}
	if vec, ok := r.VectorScore(); ok {
		item.VectorScore = &vec
	}
	return item
}

// optString maps an empty cursor to JSON null.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidDirection,
		domain.ErrRetrievalFailed,
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
func sentinelHandler(sentinel error, status int, code string) errorHandler {
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
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
