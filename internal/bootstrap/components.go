package bootstrap

import (
	"github.com/jonesrussell/job-importer/internal/classifier"
	"github.com/jonesrussell/job-importer/internal/cleanup"
	"github.com/jonesrussell/job-importer/internal/config"
	"github.com/jonesrussell/job-importer/internal/fetcher"
	"github.com/jonesrussell/job-importer/internal/logger"
	"github.com/jonesrussell/job-importer/internal/metrics"
	"github.com/jonesrussell/job-importer/internal/pipeline"
	"github.com/jonesrussell/job-importer/internal/urlguard"
)

// SetupPipeline wires the URL guard, fetcher, classifier, and cleanup
// service into the import pipeline.
func SetupPipeline(cfg *config.Config, m *metrics.Metrics, log logger.Logger) *pipeline.Pipeline {
	guard := urlguard.New(log)
	fetch := fetcher.New(cfg.Fetch, guard, log)

	classify := classifier.New(classifier.Config{
		MinContentLength: cfg.Classify.MinContentLength,
		RejectScore:      cfg.Classify.RejectScore,
		HighScore:        cfg.Classify.HighScore,
		ATSDomains:       cfg.Classify.ATSDomains,
	}, log)

	return pipeline.New(guard, fetch, classify, SetupCleanup(cfg, log), m, log)
}

// SetupCleanup creates the LLM cleanup service, or returns nil when cleanup
// is disabled. The pipeline accepts raw content when no service is wired.
func SetupCleanup(cfg *config.Config, log logger.Logger) cleanup.Service {
	if !cfg.Cleanup.Enabled {
		log.Info("LLM cleanup disabled, imports return raw content")
		return nil
	}

	return cleanup.NewAnthropicService(cleanup.Config{
		APIKey:        cfg.Cleanup.APIKey,
		Model:         cfg.Cleanup.Model,
		Timeout:       cfg.Cleanup.Timeout,
		MaxInputChars: cfg.Cleanup.MaxInputChars,
		MaxTokens:     cfg.Cleanup.MaxTokens,
	}, log)
}
