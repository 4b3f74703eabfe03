package api

import "github.com/jonesrussell/job-importer/internal/domain"

// ScrapeRequest is the import request body.
type ScrapeRequest struct {
	// URL is the job posting to import.
	URL string `json:"url" binding:"required"`

	// Clean requests LLM cleanup of the extracted text. Defaults to true
	// when omitted.
	Clean *bool `json:"clean"`
}

// ScrapeResponse is the success payload for both accepted outcomes. The flat
// fields always mirror the fetched page; Structured is present only when
// cleanup ran and its output passed re-validation.
type ScrapeResponse struct {
	RequestID        string `json:"request_id"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`

	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`

	Structured *domain.StructuredJobDescription `json:"structured,omitempty"`

	// CleanupFailed marks the degraded path where cleanup was requested
	// but the raw content came back instead.
	CleanupFailed bool `json:"cleanup_failed,omitempty"`
}

// RejectionResponse is the 422 payload for garbage content.
type RejectionResponse struct {
	Error              string            `json:"error"`
	RequestID          string            `json:"request_id"`
	GarbageDetected    bool              `json:"garbage_detected"`
	Confidence         domain.Confidence `json:"confidence"`
	Reasons            []string          `json:"reasons"`
	SuggestManualPaste bool              `json:"suggest_manual_paste"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}
