package domain

// OutcomeStatus tags the terminal state of a pipeline run.
type OutcomeStatus string

const (
	// OutcomeAccepted means cleanup ran and its output passed re-validation.
	OutcomeAccepted OutcomeStatus = "accepted"
	// OutcomeAcceptedRaw means the raw content was accepted without a
	// structured payload, either because cleanup was not requested or
	// because it failed.
	OutcomeAcceptedRaw OutcomeStatus = "accepted_raw"
	// OutcomeRejected means the content was classified as garbage at the
	// raw or post-cleanup stage.
	OutcomeRejected OutcomeStatus = "rejected"
)

// Outcome is the tagged union a pipeline run terminates in. Exactly one of
// Structured or Classification is meaningful depending on Status; Raw is set
// for both accepted variants.
type Outcome struct {
	Status OutcomeStatus `json:"status"`

	Raw        *RawContent               `json:"raw,omitempty"`
	Structured *StructuredJobDescription `json:"structured,omitempty"`

	// CleanupFailed marks the degraded accepted_raw path where cleanup was
	// requested but the adapter failed.
	CleanupFailed bool `json:"cleanup_failed,omitempty"`

	// Classification and UserMessage accompany a rejection.
	Classification *ClassificationResult `json:"classification,omitempty"`
	UserMessage    string                `json:"user_message,omitempty"`
}
