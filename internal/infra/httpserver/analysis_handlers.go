package httpserver

import (
	"errors"
	"net/http"

	appanalysis "github.com/bryanwahyu/review-miner/internal/application/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/middleware"
)

type analyzeRequest struct {
	Reviews []catalog.Review `json:"reviews" validate:"required,min=1"`
}

type analyzeResponse struct {
	analysis.Result
	ID        analysis.RecordID `json:"id,omitempty"`
	ReportURL string            `json:"reportUrl,omitempty"`
}

// POST /api/analyze  {"reviews": [...]}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var in analyzeRequest
	if err := decodeJSON(w, req, &in); err != nil {
		return err
	}
	if err := validate(in, "", map[string]string{"Reviews": msgNoReviews}); err != nil {
		return err
	}

	rec, err := r.analysis.Analyze(req.Context(), in.Reviews)
	if err != nil {
		if errors.Is(err, analysis.ErrNoReviews) {
			return err
		}
		return serverError(err, msgAnalyzeFailed)
	}
	r.metrics.Analyses.Add(1)
	if rec.Result.Degraded {
		r.metrics.Fallbacks.Add(1)
	}
	return writeJSON(w, http.StatusOK, analyzeResponse{Result: rec.Result, ID: rec.ID, ReportURL: rec.ReportURL})
}

// GET /api/analyses?page=&page_size=
func (r *Router) handleAnalyses(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	page := intParam(q, "page")
	size := middleware.Clamp(intParam(q, "page_size"), appanalysis.DefaultPageSize, appanalysis.MaxPageSize)

	list, err := r.analysis.History(req.Context(), page, size)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}
