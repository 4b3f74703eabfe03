package bootstrap

import (
	"golang.org/x/time/rate"

	"github.com/jonesrussell/job-importer/internal/api"
	"github.com/jonesrussell/job-importer/internal/config"
	"github.com/jonesrussell/job-importer/internal/httpserver"
	"github.com/jonesrussell/job-importer/internal/logger"
	"github.com/jonesrussell/job-importer/internal/metrics"
	"github.com/jonesrussell/job-importer/internal/pipeline"
)

// SetupHTTPServer creates the HTTP server with the scrape routes mounted.
func SetupHTTPServer(cfg *config.Config, pipe *pipeline.Pipeline, m *metrics.Metrics, log logger.Logger) *httpserver.Server {
	serverCfg := httpserver.NewConfig(cfg.Service.Name, cfg.Service.Port)
	serverCfg.Debug = cfg.Service.Debug
	serverCfg.ServiceVersion = cfg.Service.Version

	var limiter *rate.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}

	handler := api.NewHandler(pipe, m, log)

	return api.NewServer(serverCfg, handler, limiter, m, log)
}
