package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics holds request and domain counters. The zero value is not usable;
// use NewMetrics.
type Metrics struct {
	RequestsTotal      atomic.Uint64
	RequestsInProgress atomic.Int64
	RequestsSuccess    atomic.Uint64
	RequestsFailed     atomic.Uint64

	Searches        atomic.Uint64
	Suggestions     atomic.Uint64
	ReviewPages     atomic.Uint64
	ExhaustedPages  atomic.Uint64
	NegativeReviews atomic.Uint64
	Analyses        atomic.Uint64
	Fallbacks       atomic.Uint64
	UpstreamErrors  atomic.Uint64

	StartTime time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() map[string]any {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return map[string]any{
		"requests_total":         m.RequestsTotal.Load(),
		"requests_in_progress":   m.RequestsInProgress.Load(),
		"requests_success":       m.RequestsSuccess.Load(),
		"requests_failed":        m.RequestsFailed.Load(),
		"searches_total":         m.Searches.Load(),
		"suggestions_total":      m.Suggestions.Load(),
		"review_pages_total":     m.ReviewPages.Load(),
		"review_pages_exhausted": m.ExhaustedPages.Load(),
		"negative_reviews_total": m.NegativeReviews.Load(),
		"analyses_total":         m.Analyses.Load(),
		"analyses_fallback":      m.Fallbacks.Load(),
		"upstream_errors_total":  m.UpstreamErrors.Load(),
		"uptime_seconds":         time.Since(m.StartTime).Seconds(),
		"memory": map[string]any{
			"alloc_bytes":       mem.Alloc,
			"total_alloc_bytes": mem.TotalAlloc,
			"sys_bytes":         mem.Sys,
			"num_gc":            mem.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// Middleware tracks request counters.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestsTotal.Add(1)
		m.RequestsInProgress.Add(1)
		defer m.RequestsInProgress.Add(-1)

		wrapped := wrapWriter(w)
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			m.RequestsSuccess.Add(1)
		} else {
			m.RequestsFailed.Add(1)
		}
	})
}

// Handler returns metrics as JSON
func (m *Metrics) Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m.Snapshot())
}
