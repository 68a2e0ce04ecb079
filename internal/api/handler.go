package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"searchrank/internal/api/middleware"
	"searchrank/internal/domain"
)

const Version = "1.0.0"

// Recommender produces ranked results for a query.
type Recommender interface {
	Recommend(ctx context.Context, query string, topK int) ([]domain.RankedResult, error)
}

type Handler struct {
	recommender Recommender
	defaultTopK int
	maxTopK     int
	metrics     *Metrics
	logger      *zerolog.Logger
}

func NewHandler(recommender Recommender, defaultTopK, maxTopK int, metrics *Metrics, logger *zerolog.Logger) *Handler {
	if maxTopK < defaultTopK {
		maxTopK = defaultTopK
	}
	return &Handler{
		recommender: recommender,
		defaultTopK: defaultTopK,
		maxTopK:     maxTopK,
		metrics:     metrics,
		logger:      logger,
	}
}

// Recommend handles GET /api/ai-recommendation?query=...&top_k=...
func (h *Handler) Recommend(req *restful.Request, resp *restful.Response) {
	query := req.QueryParameter("query")

	topK, err := h.parseTopK(req.QueryParameter("top_k"))
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	results, err := h.recommender.Recommend(req.Request.Context(), query, topK)
	elapsed := time.Since(start)

	if err != nil {
		f := classify(err)
		h.metrics.observeRecommendation(f.outcome, elapsed)

		event := h.logger.Warn()
		if f.status >= http.StatusInternalServerError {
			event = h.logger.Error()
		}
		event.Err(err).Str("query", query).Int("status", f.status).Msg("Recommendation failed")

		middleware.HandleError(resp, f.public, f.status)
		return
	}

	h.metrics.observeRecommendation("ok", elapsed)
	h.logger.Info().
		Str("query", query).
		Int("top_k", topK).
		Int("results", len(results)).
		Dur("duration", elapsed).
		Msg("Recommendation complete")

	resp.WriteHeaderAndEntity(http.StatusOK, RecommendationResponse{
		Code:   http.StatusOK,
		Status: "OK",
		Data:   results,
	})
}

// Health handler GET /api/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

func (h *Handler) parseTopK(raw string) (int, error) {
	if raw == "" {
		return h.defaultTopK, nil
	}
	topK, err := strconv.Atoi(raw)
	if err != nil || topK <= 0 {
		return 0, fmt.Errorf("top_k must be a positive integer")
	}
	if topK > h.maxTopK {
		topK = h.maxTopK
	}
	return topK, nil
}

// failure is how a recommendation error is reported.
type failure struct {
	status  int
	public  error
	outcome string
}

// classify maps an error to its HTTP status, the sentinel that is safe to
// show to clients and its metrics outcome. Provider detail stays in the logs.
func classify(err error) failure {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return failure{http.StatusBadRequest, domain.ErrInvalidQuery, "invalid_query"}
	case errors.Is(err, domain.ErrNoCandidates):
		return failure{http.StatusNotFound, domain.ErrNoCandidates, "no_candidates"}
	case errors.Is(err, domain.ErrFetchFailure):
		return failure{http.StatusBadGateway, domain.ErrFetchFailure, "fetch_failure"}
	case errors.Is(err, domain.ErrSimilarityUnavailable):
		return failure{http.StatusInternalServerError, domain.ErrSimilarityUnavailable, "similarity_unavailable"}
	default:
		return failure{http.StatusInternalServerError, errors.New("internal server error"), "internal_error"}
	}
}
