package analysis

import "context"

//go:generate mockgen -destination=../../../mocks/mock_analysis.go -package=mocks . Analyzer,Repository,ReportStore

// Analyzer turns the formatted review block into a Result.
type Analyzer interface {
	Analyze(ctx context.Context, reviewText string) (Result, error)
	Model() string
}

// Repository port for persisting and querying analyses
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Paginate(ctx context.Context, page, pageSize int) ([]*Record, error)
}

// ReportStore archives a rendered analysis and returns where it lives.
type ReportStore interface {
	UploadReport(ctx context.Context, key string, body []byte) (string, error)
}
