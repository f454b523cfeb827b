package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/review-miner/internal/domain/analysis"
)

const schema = `
CREATE TABLE IF NOT EXISTS review_analyses (
  id           VARCHAR(36)  NOT NULL PRIMARY KEY,
  review_count INT          NOT NULL,
  app_ids      JSON         NOT NULL,
  model        VARCHAR(128) NOT NULL,
  result_json  JSON         NOT NULL,
  report_url   VARCHAR(1024) NOT NULL DEFAULT '',
  created_at   DATETIME(6)  NOT NULL,
  INDEX idx_review_analyses_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
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

// Save inserts an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO review_analyses
  (id, review_count, app_ids, model, result_json, report_url, created_at)
VALUES (?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  result_json=VALUES(result_json), report_url=VALUES(report_url);
`
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	appIDs := a.AppIDs
	if appIDs == nil {
		appIDs = []string{}
	}

	_, err := r.db.ExecContext(ctx, q,
		string(a.ID),
		a.ReviewCount,
		jsonOr(appIDs, "[]"),
		stringOrDash(a.Model),
		jsonOr(a.Result, "{}"),
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
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Record, 0, pageSize)
	for rows.Next() {
		var (
			a              domain.Record
			id             string
			appIDs, result []byte
		)
		if err := rows.Scan(&id, &a.ReviewCount, &appIDs, &a.Model, &result, &a.ReportURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ID = domain.RecordID(id)
		if err := json.Unmarshal(appIDs, &a.AppIDs); err != nil {
			return nil, fmt.Errorf("decode app_ids of %s: %w", id, err)
		}
		if err := json.Unmarshal(result, &a.Result); err != nil {
			return nil, fmt.Errorf("decode result of %s: %w", id, err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
