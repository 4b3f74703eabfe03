package domain

// Confidence is the banded strength of a garbage classification.
type Confidence string

// Confidence tiers, ordered low to high.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ClassificationResult is the output of the garbage/template classifier.
// It is a pure function of its inputs and immutable once produced.
type ClassificationResult struct {
	IsGarbage          bool       `json:"is_garbage"`
	Confidence         Confidence `json:"confidence"`
	Reasons            []string   `json:"reasons"`
	SuggestManualPaste bool       `json:"suggest_manual_paste"`

	// Score is the aggregate heuristic score behind the banding. Exposed
	// for logging and metrics, not part of the caller contract.
	Score int `json:"score"`
}
