// Package collector accumulates negative reviews for a set of selected apps
// page by page and hands the accumulated list to an analyzer.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/locale"
)

//go:generate mockgen -destination=../../../mocks/mock_collector.go -package=mocks -mock_names=Analyzer=MockCollectorAnalyzer . ReviewSource,Analyzer

var (
	// ErrNoSelection is returned by fetches when no app is selected.
	ErrNoSelection = errors.New("レビューを取得するアプリを選択してください")
	// ErrNothingToAnalyze is returned by Analyze when no reviews were collected.
	ErrNothingToAnalyze = errors.New("分析するレビューがありません")
)

// PageRequest asks for one page of negative reviews of one app.
type PageRequest struct {
	App      catalog.App
	Country  locale.Country
	Language locale.Language
	Page     int
}

// Page is one app's answer for a PageRequest.
type Page struct {
	Reviews []catalog.Review
	HasMore bool
	Message string
}

// ReviewSource serves single pages of negative reviews.
type ReviewSource interface {
	FetchReviews(ctx context.Context, req PageRequest) (Page, error)
}

// Analyzer summarises an accumulated review list.
type Analyzer interface {
	AnalyzeReviews(ctx context.Context, reviews []catalog.Review) (analysis.Result, error)
}

// CommitPolicy decides what happens to a round when one app fails.
type CommitPolicy int

const (
	// AllOrNothing aborts on the first failure and discards the round.
	AllOrNothing CommitPolicy = iota
	// PartialCommit skips failing apps and commits what succeeded.
	PartialCommit
)

func (p CommitPolicy) String() string {
	switch p {
	case AllOrNothing:
		return "all-or-nothing"
	case PartialCommit:
		return "partial"
	default:
		return fmt.Sprintf("CommitPolicy(%d)", int(p))
	}
}

// Round describes the outcome of one FetchPage call.
type Round struct {
	Page      int
	Fetched   int
	HasMore   bool
	Committed bool
	Notices   []string
}

// Session is the client-side state of one browsing session. It is safe for
// concurrent use; network calls run without holding the lock.
type Session struct {
	source   ReviewSource
	analyzer Analyzer
	policy   CommitPolicy
	logger   *zap.SugaredLogger

	mu       sync.Mutex
	country  locale.Country
	language locale.Language
	selected []catalog.App
	reviews  []catalog.Review
	page     int
	hasMore  bool
	result   *analysis.Result
	notices  []string
}

type Option func(*Session)

func WithPolicy(p CommitPolicy) Option { return func(s *Session) { s.policy = p } }

func WithLogger(l *zap.SugaredLogger) Option { return func(s *Session) { s.logger = l } }

func WithLocale(c locale.Country, l locale.Language) Option {
	return func(s *Session) { s.country, s.language = c, l }
}

func NewSession(source ReviewSource, analyzer Analyzer, opts ...Option) *Session {
	s := &Session{
		source:   source,
		analyzer: analyzer,
		policy:   AllOrNothing,
		country:  locale.DefaultCountry,
		language: locale.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	return s
}

// SetLocale changes the store used by subsequent fetches.
func (s *Session) SetLocale(c locale.Country, l locale.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.country, s.language = c, l
}

func (s *Session) Locale() (locale.Country, locale.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.country, s.language
}

// Toggle adds the app to the selection or removes it, and reports whether
// it is selected afterwards.
func (s *Session) Toggle(app catalog.App) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.selected {
		if a.ID == app.ID {
			s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
			return false
		}
	}
	s.selected = append(s.selected, app)
	return true
}

func (s *Session) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.selected {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Selected returns the selection in toggle order.
func (s *Session) Selected() []catalog.App {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.App(nil), s.selected...)
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Reset forgets collected reviews and the last analysis, keeping the selection.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Session) clearLocked() {
	s.reviews = nil
	s.result = nil
	s.page = 0
	s.hasMore = false
}

func (s *Session) Reviews() []catalog.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Review(nil), s.reviews...)
}

// Cursor returns the last committed page and whether another may exist.
func (s *Session) Cursor() (page int, hasMore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.hasMore
}

// Analysis returns the last analysis, or nil.
func (s *Session) Analysis() *analysis.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// TakeNotices returns and clears the pending notices.
func (s *Session) TakeNotices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notices
	s.notices = nil
	return n
}

// Start fetches the first page, replacing everything collected so far.
func (s *Session) Start(ctx context.Context) (Round, error) {
	return s.FetchPage(ctx, 1, false)
}

// LoadMore appends the page after the current cursor.
func (s *Session) LoadMore(ctx context.Context) (Round, error) {
	s.mu.Lock()
	next := s.page + 1
	s.mu.Unlock()
	return s.FetchPage(ctx, next, true)
}

// FetchPage fetches one page for every selected app, in selection order.
// Without append the collected reviews and analysis are dropped before the
// first request. The cursor only moves when the round is committed.
func (s *Session) FetchPage(ctx context.Context, page int, appendRound bool) (Round, error) {
	s.mu.Lock()
	if len(s.selected) == 0 {
		s.mu.Unlock()
		return Round{Page: page}, ErrNoSelection
	}
	if page < 1 {
		page = 1
	}
	if !appendRound {
		s.clearLocked()
	}
	apps := append([]catalog.App(nil), s.selected...)
	country, language, policy := s.country, s.language, s.policy
	s.mu.Unlock()

	round := Round{Page: page}
	var (
		collected []catalog.Review
		anyMore   bool
		errs      []error
	)
	for _, app := range apps {
		res, err := s.source.FetchReviews(ctx, PageRequest{App: app, Country: country, Language: language, Page: page})
		if err != nil {
			err = fmt.Errorf("%s: %w", app.Title, err)
			if policy == AllOrNothing {
				s.logger.Warnw("review round aborted", "page", page, "app", app.ID, "error", err)
				return round, err
			}
			s.logger.Warnw("skipping app in review round", "page", page, "app", app.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		if res.HasMore {
			anyMore = true
		}
		if res.Message != "" && len(res.Reviews) == 0 {
			round.Notices = append(round.Notices, fmt.Sprintf("%s: %s", app.Title, res.Message))
		}
		a := app
		for _, r := range res.Reviews {
			r.AppID = a.ID
			r.AppTitle = a.Title
			r.App = &a
			collected = append(collected, r)
		}
	}

	if policy == PartialCommit && len(errs) == len(apps) {
		return round, errors.Join(errs...)
	}

	round.Fetched = len(collected)
	round.HasMore = anyMore && len(collected) > 0
	round.Committed = true

	s.mu.Lock()
	if appendRound {
		s.reviews = append(s.reviews, collected...)
	} else {
		s.reviews = collected
	}
	s.page = page
	s.hasMore = round.HasMore
	s.notices = append(s.notices, round.Notices...)
	s.mu.Unlock()

	s.logger.Infow("review round committed", "page", page, "apps", len(apps), "fetched", round.Fetched, "hasMore", round.HasMore)
	return round, errors.Join(errs...)
}

// Analyze sends every collected review to the analyzer and keeps the result.
func (s *Session) Analyze(ctx context.Context) (analysis.Result, error) {
	reviews := s.Reviews()
	if len(reviews) == 0 {
		return analysis.Result{}, ErrNothingToAnalyze
	}
	res, err := s.analyzer.AnalyzeReviews(ctx, reviews)
	if err != nil {
		return analysis.Result{}, err
	}
	s.mu.Lock()
	s.result = &res
	s.mu.Unlock()
	return res, nil
}
