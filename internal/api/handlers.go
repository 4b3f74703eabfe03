// Package api exposes the import pipeline over HTTP. Pipeline errors map to
// status codes by their taxonomy kind; rejections are 422 responses with the
// classification attached. Upstream detail never reaches the caller.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/job-importer/internal/domain"
	"github.com/jonesrussell/job-importer/internal/httpserver"
	"github.com/jonesrussell/job-importer/internal/logger"
	"github.com/jonesrussell/job-importer/internal/metrics"
)

// Pipeline runs one import end to end.
type Pipeline interface {
	Run(ctx context.Context, rawURL string, clean bool) (*domain.Outcome, error)
}

// Handler serves the import endpoints.
type Handler struct {
	pipeline Pipeline
	metrics  *metrics.Metrics
	log      logger.Logger
}

func NewHandler(p Pipeline, m *metrics.Metrics, log logger.Logger) *Handler {
	return &Handler{pipeline: p, metrics: m, log: log}
}

// Scrape handles POST /scrape.
func (h *Handler) Scrape(c *gin.Context) {
	start := time.Now()

	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordScrape("invalid_request", time.Since(start))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "request body must be JSON with a url field",
			RequestID: httpserver.RequestID(c),
		})
		return
	}

	clean := req.Clean == nil || *req.Clean
	outcome, err := h.pipeline.Run(c.Request.Context(), req.URL, clean)
	if err != nil {
		h.respondError(c, err, start)
		return
	}

	if outcome.Status == domain.OutcomeRejected {
		h.respondRejected(c, outcome, start)
		return
	}
	h.respondAccepted(c, outcome, start)
}

// respondError maps a tagged pipeline error to a status code and a generic
// message. The underlying detail goes to the request log only.
func (h *Handler) respondError(c *gin.Context, err error, start time.Time) {
	kind := domain.KindOf(err)

	var status int
	var message string
	switch kind {
	case domain.KindInvalidURL:
		status = http.StatusBadRequest
		message = "url must be an absolute http or https URL"
	case domain.KindSSRFBlocked:
		status = http.StatusBadRequest
		message = "url is not allowed"
	case domain.KindFetchFailed:
		status = http.StatusInternalServerError
		message = "failed to fetch the job posting"
	case domain.KindCleanupFailed, domain.KindUnknown:
		status = http.StatusInternalServerError
		message = "import failed"
	default:
		status = http.StatusInternalServerError
		message = "import failed"
	}

	_ = c.Error(err)
	h.metrics.RecordScrape(string(kind), time.Since(start))
	c.JSON(status, ErrorResponse{Error: message, RequestID: httpserver.RequestID(c)})
}

func (h *Handler) respondRejected(c *gin.Context, outcome *domain.Outcome, start time.Time) {
	result := outcome.Classification

	h.metrics.RecordScrape(string(outcome.Status), time.Since(start))
	c.JSON(http.StatusUnprocessableEntity, RejectionResponse{
		Error:              outcome.UserMessage,
		RequestID:          httpserver.RequestID(c),
		GarbageDetected:    true,
		Confidence:         result.Confidence,
		Reasons:            result.Reasons,
		SuggestManualPaste: result.SuggestManualPaste,
	})
}

func (h *Handler) respondAccepted(c *gin.Context, outcome *domain.Outcome, start time.Time) {
	raw := outcome.Raw

	h.metrics.RecordScrape(string(outcome.Status), time.Since(start))
	c.JSON(http.StatusOK, ScrapeResponse{
		RequestID:        httpserver.RequestID(c),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Title:            raw.Title,
		Company:          raw.Company,
		Location:         raw.Location,
		Description:      raw.Description,
		SourceURL:        raw.SourceURL,
		Structured:       outcome.Structured,
		CleanupFailed:    outcome.CleanupFailed,
	})
}
