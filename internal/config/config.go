// Package config loads job-importer configuration from a YAML file with
// environment variable overrides. A .env file is loaded first when present.
package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName       = "job-importer"
	defaultServiceVersion    = "1.0.0"
	defaultServicePort       = 8085
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultFetchTimeoutSec   = 10
	defaultMaxBodyBytes      = 2 * 1024 * 1024
	defaultMaxRedirects      = 5
	defaultUserAgent         = "Mozilla/5.0 (compatible; JobImporter/1.0)"
	defaultMinContentLength  = 200
	defaultRejectScore       = 35
	defaultHighScore         = 60
	defaultCleanupModel      = "claude-sonnet-4-5"
	defaultCleanupTimeoutSec = 120
	defaultCleanupMaxInput   = 20000
	defaultCleanupMaxTokens  = 2048
	defaultRateLimitRPS      = 5
	defaultRateLimitBurst    = 10
)

// Config holds all configuration for the job-importer service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Logging   LoggingConfig   `yaml:"logging"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Classify  ClassifyConfig  `yaml:"classify"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"IMPORTER_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"     yaml:"debug"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// FetchConfig bounds the guarded outbound fetch.
type FetchConfig struct {
	Timeout      time.Duration `env:"FETCH_TIMEOUT"        yaml:"timeout"`
	MaxBodyBytes int64         `env:"FETCH_MAX_BODY_BYTES" yaml:"max_body_bytes"`
	MaxRedirects int           `env:"FETCH_MAX_REDIRECTS"  yaml:"max_redirects"`
	UserAgent    string        `yaml:"user_agent"`
}

// ClassifyConfig holds garbage-classifier thresholds and the ATS domain
// list. Injected into the classifier at construction; immutable afterwards.
type ClassifyConfig struct {
	MinContentLength int      `yaml:"min_content_length"`
	RejectScore      int      `yaml:"reject_score"`
	HighScore        int      `yaml:"high_score"`
	ATSDomains       []string `env:"ATS_DOMAINS" yaml:"ats_domains"`
}

// CleanupConfig holds the LLM cleanup adapter settings.
type CleanupConfig struct {
	Enabled       bool          `env:"CLEANUP_ENABLED"   yaml:"enabled"`
	APIKey        string        `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Model         string        `env:"CLEANUP_MODEL"     yaml:"model"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxInputChars int           `yaml:"max_input_chars"`
	MaxTokens     int64         `yaml:"max_tokens"`
}

// RateLimitConfig holds inbound admission-control settings for /scrape.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// DefaultATSDomains returns the vendor domains known to serve
// client-rendered postings. Matched by suffix/containment against the
// lowercased hostname.
func DefaultATSDomains() []string {
	return []string{
		"myworkday",
		"workday",
		"brassring",
		"taleo",
		"icims",
		"greenhouse",
		"lever.co",
		"smartrecruiters",
		"ashbyhq",
	}
}

// Load loads configuration from the specified path, applies defaults, and
// re-applies environment overrides so env always wins.
func Load(path string) (*Config, error) {
	cfg, err := loadYAML(path)
	if err != nil {
		return nil, err
	}
	setDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setLoggingDefaults(&cfg.Logging)
	setFetchDefaults(&cfg.Fetch)
	setClassifyDefaults(&cfg.Classify)
	setCleanupDefaults(&cfg.Cleanup)
	setRateLimitDefaults(&cfg.RateLimit)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setFetchDefaults(f *FetchConfig) {
	if f.Timeout == 0 {
		f.Timeout = defaultFetchTimeoutSec * time.Second
	}
	if f.MaxBodyBytes == 0 {
		f.MaxBodyBytes = defaultMaxBodyBytes
	}
	if f.MaxRedirects == 0 {
		f.MaxRedirects = defaultMaxRedirects
	}
	if f.UserAgent == "" {
		f.UserAgent = defaultUserAgent
	}
}

func setClassifyDefaults(c *ClassifyConfig) {
	if c.MinContentLength == 0 {
		c.MinContentLength = defaultMinContentLength
	}
	if c.RejectScore == 0 {
		c.RejectScore = defaultRejectScore
	}
	if c.HighScore == 0 {
		c.HighScore = defaultHighScore
	}
	if len(c.ATSDomains) == 0 {
		c.ATSDomains = DefaultATSDomains()
	}
}

func setCleanupDefaults(c *CleanupConfig) {
	if c.Model == "" {
		c.Model = defaultCleanupModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultCleanupTimeoutSec * time.Second
	}
	if c.MaxInputChars == 0 {
		c.MaxInputChars = defaultCleanupMaxInput
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultCleanupMaxTokens
	}
}

func setRateLimitDefaults(r *RateLimitConfig) {
	if r.RPS == 0 {
		r.RPS = defaultRateLimitRPS
	}
	if r.Burst == 0 {
		r.Burst = defaultRateLimitBurst
	}
}

// Validate checks configuration consistency. Called once at startup.
func (c *Config) Validate() error {
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("service.port out of range: %d", c.Service.Port)
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetch.max_body_bytes must be positive")
	}
	if c.Fetch.MaxRedirects < 0 {
		return fmt.Errorf("fetch.max_redirects must not be negative")
	}
	if c.Classify.RejectScore > c.Classify.HighScore {
		return fmt.Errorf("classify.reject_score (%d) exceeds classify.high_score (%d)",
			c.Classify.RejectScore, c.Classify.HighScore)
	}
	if c.Cleanup.Enabled && c.Cleanup.APIKey == "" {
		return fmt.Errorf("cleanup.api_key required when cleanup is enabled")
	}
	return nil
}
