package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/review-miner/internal/application"
	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/infra/ai/prompt"
)

var defaultFallback = NewFallback(rand.Uint64())

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service runs review analyses. Repo and Reports are optional; without them
// records are neither persisted nor archived.
type Service struct {
	Analyzer analysis.Analyzer
	Repo     analysis.Repository
	Reports  analysis.ReportStore
	Clock    application.Clock
	Logger   *zap.SugaredLogger
	Fallback *Fallback
}

// Analyze summarises the given reviews. Analyzer failures never surface:
// the caller receives a degraded fallback result instead.
func (s *Service) Analyze(ctx context.Context, reviews []catalog.Review) (*analysis.Record, error) {
	if len(reviews) == 0 {
		return nil, analysis.ErrNoReviews
	}

	rec := &analysis.Record{
		ID:          analysis.RecordID(uuid.NewString()),
		ReviewCount: len(reviews),
		AppIDs:      distinctAppIDs(reviews),
		CreatedAt:   s.now(),
	}

	text := prompt.FormatReviews(reviews)
	if s.Analyzer == nil {
		s.log().Warnw("no analyzer configured, using fallback", "reviews", len(reviews))
		rec.Result = s.fallback().Result()
	} else {
		rec.Model = s.Analyzer.Model()
		res, err := s.Analyzer.Analyze(ctx, text)
		if err != nil {
			if errors.Is(err, analysis.ErrQuotaExceeded) {
				s.log().Warnw("analyzer quota exceeded, using fallback", "error", err)
			} else {
				s.log().Errorw("analyzer failed, using fallback", "error", err)
			}
			res = s.fallback().Result()
		}
		rec.Result = res
	}

	s.archive(ctx, rec)
	if s.Repo != nil {
		if err := s.Repo.Save(ctx, rec); err != nil {
			s.log().Errorw("failed to save analysis", "id", rec.ID, "error", err)
		}
	}
	s.log().Infow("analysis finished", "id", rec.ID, "reviews", rec.ReviewCount, "issues", len(rec.Result.CommonIssues), "degraded", rec.Result.Degraded)
	return rec, nil
}

// History pages through stored analyses, newest first.
func (s *Service) History(ctx context.Context, page, pageSize int) ([]*analysis.Record, error) {
	if s.Repo == nil {
		return nil, analysis.ErrHistoryDisabled
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	recs, err := s.Repo.Paginate(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("paginate analyses: %w", err)
	}
	if recs == nil {
		recs = []*analysis.Record{}
	}
	return recs, nil
}

func (s *Service) archive(ctx context.Context, rec *analysis.Record) {
	if s.Reports == nil {
		return
	}
	body, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		s.log().Errorw("failed to encode report", "id", rec.ID, "error", err)
		return
	}
	key := fmt.Sprintf("reports/%s/%s.json", rec.CreatedAt.UTC().Format("2006-01-02"), rec.ID)
	url, err := s.Reports.UploadReport(ctx, key, body)
	if err != nil {
		s.log().Errorw("failed to upload report", "id", rec.ID, "key", key, "error", err)
		return
	}
	rec.ReportURL = url
}

func (s *Service) fallback() *Fallback {
	if s.Fallback == nil {
		return defaultFallback
	}
	return s.Fallback
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}

func (s *Service) log() *zap.SugaredLogger {
	if s.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return s.Logger
}

func distinctAppIDs(reviews []catalog.Review) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, r := range reviews {
		id := strings.TrimSpace(r.AppID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
