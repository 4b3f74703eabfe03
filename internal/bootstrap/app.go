// Package bootstrap handles application initialization and lifecycle
// management for the job-importer service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/job-importer/internal/logger"
	"github.com/jonesrussell/job-importer/internal/metrics"
	"github.com/jonesrussell/job-importer/internal/profiling"
)

const version = "dev"

// Start initializes and runs the job-importer application.
func Start() error {
	// Phase 0: Start profiling server (if enabled)
	profiling.StartPprofServer()

	// Phase 1: Load configuration and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Build the import pipeline
	m := metrics.New()
	pipe := SetupPipeline(cfg, m, log)

	// Phase 3: Set up and run the HTTP server
	server := SetupHTTPServer(cfg, pipe, m, log)

	log.Info("Starting job-importer",
		logger.Int("port", cfg.Service.Port),
		logger.Bool("cleanup_enabled", cfg.Cleanup.Enabled),
		logger.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
	)

	if runErr := server.RunWithGracefulShutdown(context.Background()); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
