package bootstrap

import (
	"flag"
	"fmt"

	"github.com/jonesrussell/job-importer/internal/config"
	"github.com/jonesrussell/job-importer/internal/logger"
)

// LoadConfig loads and validates the service configuration from the path
// given by the -config flag.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.Path("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}

	return cfg, nil
}

// CreateLogger creates the service logger with service identity fields
// attached to every entry.
func CreateLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return log.With(
		logger.String("service", cfg.Service.Name),
		logger.String("version", version),
	), nil
}
