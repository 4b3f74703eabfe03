// Package classifier scores extracted page text for signs that a scrape
// captured an unrendered client-side application instead of a job posting.
// Classification is pure and deterministic: the same text and URL always
// produce the same result, and no signal short-circuits the others.
package classifier

import (
	"fmt"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/job-importer/internal/domain"
	"github.com/jonesrussell/job-importer/internal/logger"
)

// Config carries the tunable classification thresholds. Signal weights are
// fixed; only the banding cutoffs, the minimum length, and the problematic
// domain list vary by deployment.
type Config struct {
	// MinContentLength is the length in bytes below which content cannot be
	// a usable posting.
	MinContentLength int

	// RejectScore is the score at or above which content is garbage and the
	// confidence band becomes medium.
	RejectScore int

	// HighScore is the score at or above which the confidence band becomes
	// high.
	HighScore int

	// ATSDomains are hostname fragments of job sites known to render
	// postings client-side.
	ATSDomains []string
}

// Classifier detects garbage content. Construct with New; the zero value is
// not usable.
type Classifier struct {
	cfg       Config
	domains   *DomainChecker
	jsMatcher *ahocorasick.Matcher
	log       logger.Logger
}

func New(cfg Config, log logger.Logger) *Classifier {
	return &Classifier{
		cfg:       cfg,
		domains:   NewDomainChecker(cfg.ATSDomains),
		jsMatcher: ahocorasick.NewStringMatcher(jsPhrases),
		log:       log,
	}
}

// Domains exposes the checker built from Config.ATSDomains.
func (c *Classifier) Domains() *DomainChecker {
	return c.domains
}

// Classify scores text extracted from sourceURL. sourceURL may be empty, in
// which case the domain signal never fires. All six signals are evaluated on
// every call and their weights are summed before banding.
func (c *Classifier) Classify(text, sourceURL string) domain.ClassificationResult {
	trimmed := strings.TrimSpace(text)

	score := 0
	reasons := make([]string, 0, 4)

	tooShort := len(trimmed) < c.cfg.MinContentLength
	if tooShort {
		score += tooShortWeight
		reasons = append(reasons, ReasonTooShort)
	}

	if c.domains.IsProblematicDomain(sourceURL) {
		score += knownATSDomainWeight
		reasons = append(reasons, ReasonKnownATSDomain)
	}

	markers := scanTemplateMarkers(trimmed)
	if markers.count > 0 && (markers.count > minMarkerCount || markers.density(len(trimmed)) > markerDensityFloor) {
		if markers.count > heavyMarkerCount {
			score += heavyTemplateMarkerWeight
		} else {
			score += templateMarkerWeight
		}
		reasons = append(reasons, ReasonTemplateMarkers)
	}

	if c.hasUnrenderedJS(trimmed) {
		score += unrenderedJSWeight
		reasons = append(reasons, ReasonUnrenderedJS)
	}

	if ratio, ok := plainWordRatio(trimmed); ok && ratio < minPlainWordRatio {
		score += lowWordRatioWeight
		reasons = append(reasons, ReasonLowWordRatio)
	}

	if hasTemplateSyntax(header(trimmed)) {
		score += headerTemplateWeight
		reasons = append(reasons, ReasonHeaderTemplate)
	}

	confidence := domain.ConfidenceLow
	switch {
	case score >= c.cfg.HighScore:
		confidence = domain.ConfidenceHigh
	case score >= c.cfg.RejectScore:
		confidence = domain.ConfidenceMedium
	}

	// Below-minimum-length content is garbage even when the too-short
	// signal alone leaves the score under the reject threshold.
	isGarbage := score >= c.cfg.RejectScore || tooShort

	if isGarbage && confidence != domain.ConfidenceLow {
		for _, match := range markers.snippets {
			reasons = append(reasons, fmt.Sprintf("Unrendered syntax found: %q", match))
		}
	}

	result := domain.ClassificationResult{
		IsGarbage:          isGarbage,
		Confidence:         confidence,
		Score:              score,
		Reasons:            reasons,
		SuggestManualPaste: isGarbage,
	}

	c.log.Debug("Classified content",
		logger.Int("length", len(trimmed)),
		logger.Int("score", score),
		logger.Bool("is_garbage", result.IsGarbage),
		logger.String("confidence", string(result.Confidence)),
	)
	return result
}

func (c *Classifier) hasUnrenderedJS(text string) bool {
	if len(c.jsMatcher.Match([]byte(strings.ToLower(text)))) > 0 {
		return true
	}
	for _, rule := range jsPatterns {
		if rule.pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func header(text string) string {
	if len(text) <= headerScanLength {
		return text
	}
	return text[:headerScanLength]
}
