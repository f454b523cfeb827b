package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/review-miner/internal/domain/analysis"
)

func TestAnalysisRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO review_analyses").
		WithArgs("id-1", 3, `["100","200"]`, "-", `{"commonIssues":["落ちる"],"suggestions":[],"degraded":true}`, "", created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewAnalysisRepository(db)
	err = repo.Save(context.Background(), &domain.Record{
		ID:          "id-1",
		ReviewCount: 3,
		AppIDs:      []string{"100", "200"},
		Result:      domain.Result{CommonIssues: []string{"落ちる"}, Suggestions: []string{}, Degraded: true},
		CreatedAt:   created,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepository_SaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO review_analyses").WillReturnError(errors.New("deadlock"))
	err = NewAnalysisRepository(db).Save(context.Background(), &domain.Record{ID: "id-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id-1")
}

func TestAnalysisRepository_Paginate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "review_count", "app_ids", "model", "result_json", "report_url", "created_at"}).
		AddRow("id-2", 5, []byte(`["100"]`), "gpt-4o", []byte(`{"commonIssues":["a"],"suggestions":["b"],"degraded":false}`), "http://minio/r.json", created)
	mock.ExpectQuery("SELECT (.+) FROM review_analyses").WithArgs(10, 10).WillReturnRows(rows)

	recs, err := NewAnalysisRepository(db).Paginate(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.RecordID("id-2"), recs[0].ID)
	assert.Equal(t, []string{"100"}, recs[0].AppIDs)
	assert.Equal(t, []string{"a"}, recs[0].Result.CommonIssues)
	assert.Equal(t, "http://minio/r.json", recs[0].ReportURL)
	assert.Equal(t, created, recs[0].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepository_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS review_analyses").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, NewAnalysisRepository(db).EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
