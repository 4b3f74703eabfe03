// Package pipeline orchestrates one import run: validate the URL, fetch the
// page, classify the extracted text, optionally clean it up, and re-check the
// cleaned output. Stages run strictly in order and each run terminates in
// exactly one Outcome or one tagged error.
package pipeline

import (
	"context"
	"net/url"
	"time"

	"github.com/jonesrussell/job-importer/internal/classifier"
	"github.com/jonesrussell/job-importer/internal/cleanup"
	"github.com/jonesrussell/job-importer/internal/domain"
	"github.com/jonesrussell/job-importer/internal/logger"
	"github.com/jonesrussell/job-importer/internal/metrics"
)

// ReasonCleanupUnusable leads the rejection reasons when cleanup output
// failed re-classification, so callers can tell this apart from a raw
// content rejection.
const ReasonCleanupUnusable = "AI cleanup produced unusable output"

const (
	stageRaw     = "raw"
	stageCleaned = "cleaned"
)

// Validator checks and normalizes a candidate URL.
type Validator interface {
	Validate(ctx context.Context, rawURL string) (*url.URL, error)
}

// Fetcher retrieves a page and extracts its text content.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL *url.URL) (*domain.RawContent, error)
}

// Classifier scores extracted text for garbage signals.
type Classifier interface {
	Classify(text, sourceURL string) domain.ClassificationResult
}

// Pipeline wires the import stages together. The cleanup service may be nil,
// which disables the cleanup stage entirely; metrics may be nil in tests.
type Pipeline struct {
	guard      Validator
	fetcher    Fetcher
	classifier Classifier
	cleanup    cleanup.Service
	metrics    *metrics.Metrics
	log        logger.Logger
}

func New(guard Validator, fetcher Fetcher, cls Classifier, cleanupSvc cleanup.Service, m *metrics.Metrics, log logger.Logger) *Pipeline {
	return &Pipeline{
		guard:      guard,
		fetcher:    fetcher,
		classifier: cls,
		cleanup:    cleanupSvc,
		metrics:    m,
		log:        log,
	}
}

// Run imports one job posting URL. clean requests the cleanup stage; it is
// ignored when no cleanup service is configured. Rejections are outcomes,
// not errors: Run returns an error only for invalid input, blocked targets,
// and fetch failures.
func (p *Pipeline) Run(ctx context.Context, rawURL string, clean bool) (*domain.Outcome, error) {
	start := time.Now()

	pageURL, err := p.guard.Validate(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	raw, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	p.log.Debug("Fetched content",
		logger.String("url", raw.SourceURL),
		logger.Int("length", len(raw.Description)),
	)

	result := p.classifier.Classify(raw.Description, raw.SourceURL)
	if result.IsGarbage {
		p.metrics.RecordGarbage(string(result.Confidence), stageRaw)
		p.log.Info("Rejected fetched content as garbage",
			logger.String("url", raw.SourceURL),
			logger.String("confidence", string(result.Confidence)),
			logger.Int("score", result.Score),
			logger.Strings("reasons", result.Reasons),
			logger.Duration("duration", time.Since(start)),
		)
		return p.reject(result, raw.SourceURL), nil
	}

	if !clean || p.cleanup == nil {
		p.log.Info("Accepted raw content",
			logger.String("url", raw.SourceURL),
			logger.Duration("duration", time.Since(start)),
		)
		return &domain.Outcome{Status: domain.OutcomeAcceptedRaw, Raw: raw}, nil
	}

	structured, err := p.cleanup.Clean(ctx, raw.Description)
	if err != nil {
		p.metrics.RecordCleanupFailure()
		p.log.Warn("Cleanup failed, returning raw content",
			logger.String("url", raw.SourceURL),
			logger.Error(err),
			logger.Duration("duration", time.Since(start)),
		)
		return &domain.Outcome{Status: domain.OutcomeAcceptedRaw, Raw: raw, CleanupFailed: true}, nil
	}

	// The cleaned text carries no source URL so the domain signal cannot
	// re-fire against output that already passed the raw check.
	cleaned := p.classifier.Classify(structured.Title+" "+structured.Description, "")
	if cleaned.IsGarbage && cleaned.Confidence == domain.ConfidenceHigh {
		p.metrics.RecordGarbage(string(cleaned.Confidence), stageCleaned)
		p.log.Warn("Rejected cleanup output as garbage",
			logger.String("url", raw.SourceURL),
			logger.Int("score", cleaned.Score),
			logger.Strings("reasons", cleaned.Reasons),
		)
		rejection := cleaned
		rejection.Reasons = append([]string{ReasonCleanupUnusable}, cleaned.Reasons...)
		return p.reject(rejection, raw.SourceURL), nil
	}

	p.log.Info("Accepted cleaned content",
		logger.String("url", raw.SourceURL),
		logger.String("title", structured.Title),
		logger.Duration("duration", time.Since(start)),
	)
	return &domain.Outcome{Status: domain.OutcomeAccepted, Raw: raw, Structured: structured}, nil
}

func (p *Pipeline) reject(result domain.ClassificationResult, sourceURL string) *domain.Outcome {
	return &domain.Outcome{
		Status:         domain.OutcomeRejected,
		Classification: &result,
		UserMessage:    classifier.GarbageContentErrorMessage(result, sourceURL),
	}
}
