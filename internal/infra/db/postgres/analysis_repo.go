package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	domain "github.com/bryanwahyu/review-miner/internal/domain/analysis"
)

const schema = `
CREATE TABLE IF NOT EXISTS review_analyses (
  id           UUID PRIMARY KEY,
  review_count INTEGER NOT NULL,
  app_ids      TEXT[]  NOT NULL DEFAULT '{}',
  model        TEXT    NOT NULL,
  result_json  JSONB   NOT NULL,
  report_url   TEXT    NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_review_analyses_created ON review_analyses (created_at DESC);
`

type AnalysisRepository struct {
	db *sql.DB
}

var _ domain.Repository = (*AnalysisRepository)(nil)

func NewAnalysisRepository(conn *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: conn}
}

// EnsureSchema creates the review_analyses table if it is missing.
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO review_analyses
  (id, review_count, app_ids, model, result_json, report_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  result_json=EXCLUDED.result_json,
  report_url=EXCLUDED.report_url;
`
	result, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	model := a.Model
	if strings.TrimSpace(model) == "" {
		model = "-"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	appIDs := a.AppIDs
	if appIDs == nil {
		appIDs = []string{}
	}

	_, err = r.db.ExecContext(ctx, q,
		string(a.ID),
		a.ReviewCount,
		pq.Array(appIDs),
		model,
		string(result),
		a.ReportURL,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", a.ID, err)
	}
	return nil
}

// Paginate returns a page of analysis records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, review_count, app_ids, model, result_json, report_url, created_at
FROM review_analyses
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Record, 0, pageSize)
	for rows.Next() {
		var (
			a      domain.Record
			id     string
			appIDs pq.StringArray
			result []byte
		)
		if err := rows.Scan(&id, &a.ReviewCount, &appIDs, &a.Model, &result, &a.ReportURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ID = domain.RecordID(id)
		a.AppIDs = []string(appIDs)
		if err := json.Unmarshal(result, &a.Result); err != nil {
			return nil, fmt.Errorf("decode result of %s: %w", id, err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
