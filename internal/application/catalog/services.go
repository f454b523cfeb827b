package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/locale"
)

// NoMoreReviewsMessage is returned alongside an exhausted review page.
const NoMoreReviewsMessage = "これ以上のレビューはありません"

const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 200
)

// Service implements the marketplace use-cases. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	Market domain.Marketplace
	Logger *zap.SugaredLogger
}

type SearchCommand struct {
	Term     string
	Country  locale.Country
	Language locale.Language
	Limit    int
}

type ReviewsCommand struct {
	ID       string
	AppID    string
	Country  locale.Country
	Language locale.Language
	Page     int
}

type SuggestCommand struct {
	Term     string
	Country  locale.Country
	Language locale.Language
}

type AppCommand struct {
	ID       string
	Country  locale.Country
	Language locale.Language
}

// ReviewsResult is one page of negative reviews for one app.
type ReviewsResult struct {
	Reviews []domain.Review `json:"reviews"`
	Page    int             `json:"page"`
	HasMore bool            `json:"hasMore"`
	Message string          `json:"message,omitempty"`
	// Exhausted is set when the upstream reported the end of the feed.
	Exhausted bool `json:"-"`
}

// Search forwards to the marketplace once, without retry.
func (s *Service) Search(ctx context.Context, cmd SearchCommand) ([]domain.App, error) {
	term := strings.TrimSpace(cmd.Term)
	if term == "" {
		return nil, domain.ErrMissingTerm
	}
	limit := cmd.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	s.log().Infow("searching apps", "term", term, "country", cmd.Country.String(), "language", string(cmd.Language), "limit", limit)
	apps, err := s.Market.Search(ctx, domain.SearchQuery{
		Term:     term,
		Country:  cmd.Country,
		Language: cmd.Language,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	if apps == nil {
		apps = []domain.App{}
	}
	s.log().Infow("search finished", "term", term, "found", len(apps))
	return apps, nil
}

// Reviews fetches one page for one app and keeps only negative reviews.
// Running past the end of the feed is a successful, empty result.
func (s *Service) Reviews(ctx context.Context, cmd ReviewsCommand) (ReviewsResult, error) {
	if cmd.ID == "" && cmd.AppID == "" {
		return ReviewsResult{}, domain.ErrMissingAppID
	}
	page := cmd.Page
	if page < 1 {
		page = 1
	}

	res, err := s.Market.Reviews(ctx, domain.ReviewQuery{
		ID:       cmd.ID,
		AppID:    cmd.AppID,
		Country:  cmd.Country,
		Language: cmd.Language,
		Page:     page,
	})
	if err != nil {
		if domain.IsExhausted(err) {
			s.log().Infow("review feed exhausted", "id", cmd.ID, "appId", cmd.AppID, "page", page, "reason", err.Error())
			return ReviewsResult{
				Reviews:   []domain.Review{},
				Page:      page,
				HasMore:   false,
				Message:   NoMoreReviewsMessage,
				Exhausted: true,
			}, nil
		}
		return ReviewsResult{}, fmt.Errorf("reviews page %d: %w", page, err)
	}

	negative := domain.FilterNegative(res.Reviews)
	s.log().Debugw("reviews fetched", "id", cmd.ID, "appId", cmd.AppID, "page", page, "total", len(res.Reviews), "negative", len(negative))
	return ReviewsResult{
		Reviews: negative,
		Page:    page,
		HasMore: res.HasNext && len(res.Reviews) > 0,
	}, nil
}

// Suggest returns the marketplace's search hints unmodified.
func (s *Service) Suggest(ctx context.Context, cmd SuggestCommand) ([]domain.Suggestion, error) {
	term := strings.TrimSpace(cmd.Term)
	if term == "" {
		return nil, domain.ErrMissingTerm
	}
	terms, err := s.Market.SuggestedTerms(ctx, domain.SuggestQuery{
		Term:     term,
		Country:  cmd.Country,
		Language: cmd.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", term, err)
	}
	if terms == nil {
		terms = []domain.Suggestion{}
	}
	return terms, nil
}

// App resolves one listing by numeric store id.
func (s *Service) App(ctx context.Context, cmd AppCommand) (domain.App, error) {
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return domain.App{}, domain.ErrMissingAppID
	}
	app, err := s.Market.Lookup(ctx, domain.LookupQuery{ID: id, Country: cmd.Country, Language: cmd.Language})
	if err != nil {
		return domain.App{}, fmt.Errorf("lookup %s: %w", id, err)
	}
	return app, nil
}

func (s *Service) log() *zap.SugaredLogger {
	if s.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return s.Logger
}
