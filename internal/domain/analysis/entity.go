package analysis

import "time"

// RecordID identifier type
type RecordID string

// Result is the summary of a batch of negative reviews.
// Degraded is set when the result is the canned fallback rather than model output.
type Result struct {
	CommonIssues []string `json:"commonIssues"`
	Suggestions  []string `json:"suggestions"`
	Degraded     bool     `json:"degraded"`
}

// Record represents an analysis kept for history and auditing
type Record struct {
	ID          RecordID  `json:"id"`
	ReviewCount int       `json:"review_count"`
	AppIDs      []string  `json:"app_ids"`
	Model       string    `json:"model"`
	Result      Result    `json:"result"`
	ReportURL   string    `json:"report_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
