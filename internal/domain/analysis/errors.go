package analysis

import "errors"

var (
	// ErrNoReviews is returned when an analysis is requested for an empty list.
	ErrNoReviews = errors.New("no reviews to analyze")
	// ErrHistoryDisabled is returned by history queries when no database is configured.
	ErrHistoryDisabled = errors.New("analysis history is disabled")
	// ErrEmptyCompletion indicates the model answered without parseable content.
	ErrEmptyCompletion = errors.New("empty completion")
)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")
