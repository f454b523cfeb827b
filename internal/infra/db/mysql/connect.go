package mysql

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bryanwahyu/review-miner/internal/infra/db"
)

// Connect opens a MySQL pool; dsn must carry parseTime=true.
func Connect(ctx context.Context, dsn string, pool db.Pool) (*sql.DB, error) {
	return db.Open(ctx, "mysql", dsn, pool)
}
