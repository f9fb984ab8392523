package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pagetrail/pagetrail/internal/domain"
	healthuc "github.com/pagetrail/pagetrail/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search service over HTTP.
type Server struct {
	orchestrator Searcher
	ingest       Ingester
	embedder     domain.BatchEmbedder
	health       HealthChecker

	model      string
	dimensions int

	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. model and dimensions describe the
// configured embedding space for the health endpoint.
func NewServer(
	orchestrator Searcher,
	ingest Ingester,
	embedder domain.BatchEmbedder,
	health HealthChecker,
	model string,
	dimensions int,
	logger *zap.Logger,
) *Server {
	s := &Server{
		orchestrator: orchestrator,
		ingest:       ingest,
		embedder:     embedder,
		health:       health,
		model:        model,
		dimensions:   dimensions,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyChunk, http.StatusBadRequest, "validation_failed"),
		sentinelHandler(domain.ErrPageNotFound, http.StatusNotFound, "page_not_found"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, "index_unavailable"),
	}
	return s
}

// Routes mounts all API handlers on a fresh router. Middleware is the
// caller's concern.
func (s *Server) Routes() chirouter.Router {
	r := chirouter.NewRouter()
	r.Post("/search", s.Search)
	r.Post("/compare", s.Compare)
	r.Post("/pages", s.AddPages)
	r.Post("/embed", s.Embed)
	r.Get("/stats", s.Stats)
	r.Get("/health", s.Health)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	return r
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}

	resp, err := s.orchestrator.Search(r.Context(), req.Query, req.Category)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseToDTO(resp))
}

// Compare handles POST /compare.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}

	resp, err := s.orchestrator.Compare(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, compareResponseToDTO(resp))
}

// AddPages handles POST /pages.
func (s *Server) AddPages(w http.ResponseWriter, r *http.Request) {
	var req addPagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if len(req.Pages) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "pages is required")
		return
	}

	pages := make([]domain.Page, len(req.Pages))
	for i, p := range req.Pages {
		pages[i] = pageFromDTO(p)
	}

	result, err := s.ingest.AddPages(r.Context(), pages)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, addPagesResponse{
		Added:      result.Added,
		TokensUsed: result.TokensUsed,
		IDs:        result.IDs,
	})
}

// Embed handles POST /embed.
func (s *Server) Embed(w http.ResponseWriter, r *http.Request) {
	var req embedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "texts is required")
		return
	}

	result, err := s.embedder.BatchEmbed(r.Context(), req.Texts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	dimension := 0
	if len(result.Embeddings) > 0 {
		dimension = len(result.Embeddings[0])
	}

	writeJSON(w, http.StatusOK, embedResponse{
		Embeddings:  result.Embeddings,
		Dimension:   dimension,
		TotalTokens: result.TotalTokens,
	})
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.orchestrator.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Health handles GET /health. Degraded reports return 503 with per-check detail.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:       string(report.Status),
		Model:        s.model,
		TotalVectors: report.Vectors,
		Dimension:    s.dimensions,
		Checks:       checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyChunk,
		domain.ErrPageNotFound,
		domain.ErrEmbeddingProviderError,
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
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
