package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/job-importer/internal/httpserver"
	"github.com/jonesrussell/job-importer/internal/logger"
	"github.com/jonesrussell/job-importer/internal/metrics"
)

// SetupRoutes registers the service routes. The rate limiter applies to the
// import endpoint only; health and metrics stay unthrottled.
func SetupRoutes(router *gin.Engine, handler *Handler, limiter *rate.Limiter, m *metrics.Metrics) {
	scrape := router.Group("")
	if limiter != nil {
		scrape.Use(httpserver.RateLimitMiddleware(limiter))
	}
	scrape.POST("/scrape", handler.Scrape)

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
}

// NewServer assembles the HTTP server shell with the import routes attached.
func NewServer(cfg *httpserver.Config, handler *Handler, limiter *rate.Limiter, m *metrics.Metrics, log logger.Logger) *httpserver.Server {
	return httpserver.NewServer(cfg, log, func(router *gin.Engine) {
		SetupRoutes(router, handler, limiter, m)
	})
}
