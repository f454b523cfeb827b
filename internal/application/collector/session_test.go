package collector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bryanwahyu/review-miner/internal/application/collector"
	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/locale"
	"github.com/bryanwahyu/review-miner/mocks"
)

var (
	memo = catalog.App{ID: "100", AppID: "com.example.memo", Title: "Memo"}
	note = catalog.App{ID: "200", AppID: "com.example.note", Title: "Note"}
)

func reviews(ids ...string) []catalog.Review {
	out := make([]catalog.Review, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.Review{ID: id, Score: 1, Text: "bad"})
	}
	return out
}

func forApp(app catalog.App, page int) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		req, ok := x.(collector.PageRequest)
		return ok && req.App.ID == app.ID && req.Page == page
	})
}

func TestToggle(t *testing.T) {
	s := collector.NewSession(nil, nil)
	assert.True(t, s.Toggle(memo))
	assert.True(t, s.Toggle(note))
	assert.True(t, s.IsSelected("100"))
	assert.Equal(t, []catalog.App{memo, note}, s.Selected())

	assert.False(t, s.Toggle(memo))
	assert.False(t, s.IsSelected("100"))
	assert.Equal(t, []catalog.App{note}, s.Selected())

	s.ClearSelection()
	assert.Empty(t, s.Selected())
}

func TestFetchPage_NoSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockReviewSource(ctrl)

	s := collector.NewSession(src, nil)
	_, err := s.Start(context.Background())
	require.ErrorIs(t, err, collector.ErrNoSelection)
	assert.Equal(t, "レビューを取得するアプリを選択してください", err.Error())
}

func TestFetchPage_TagsAndAccumulates(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockReviewSource(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		src.EXPECT().FetchReviews(ctx, forApp(memo, 1)).DoAndReturn(func(_ context.Context, req collector.PageRequest) (collector.Page, error) {
			assert.Equal(t, locale.JP, req.Country)
			assert.Equal(t, locale.Language("ja"), req.Language)
			return collector.Page{Reviews: reviews("m1", "m2"), HasMore: true}, nil
		}),
		src.EXPECT().FetchReviews(ctx, forApp(note, 1)).Return(collector.Page{Reviews: reviews("n1"), HasMore: false}, nil),
		src.EXPECT().FetchReviews(ctx, forApp(memo, 2)).Return(collector.Page{Reviews: reviews("m1"), HasMore: false}, nil),
		src.EXPECT().FetchReviews(ctx, forApp(note, 2)).Return(collector.Page{Reviews: []catalog.Review{}, Message: "これ以上のレビューはありません"}, nil),
	)

	s := collector.NewSession(src, nil, collector.WithLocale(locale.JP, "ja"))
	s.Toggle(memo)
	s.Toggle(note)

	round, err := s.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, round.Fetched)
	assert.True(t, round.HasMore)

	got := s.Reviews()
	require.Len(t, got, 3)
	assert.Equal(t, "100", got[0].AppID)
	assert.Equal(t, "Memo", got[0].AppTitle)
	require.NotNil(t, got[0].App)
	assert.Equal(t, "com.example.memo", got[0].App.AppID)
	assert.Equal(t, "Note", got[2].AppTitle)

	round, err = s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, round.Page)
	assert.False(t, round.HasMore)
	assert.Equal(t, []string{"Note: これ以上のレビューはありません"}, round.Notices)

	// pages are appended without de-duplication
	got = s.Reviews()
	require.Len(t, got, 4)
	assert.Equal(t, "m1", got[3].ID)

	page, more := s.Cursor()
	assert.Equal(t, 2, page)
	assert.False(t, more)
	assert.Equal(t, []string{"Note: これ以上のレビューはありません"}, s.TakeNotices())
	assert.Empty(t, s.TakeNotices())
}

func TestFetchPage_HasMoreNeedsReviews(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockReviewSource(ctrl)
	src.EXPECT().FetchReviews(gomock.Any(), gomock.Any()).Return(collector.Page{Reviews: []catalog.Review{}, HasMore: true}, nil)

	s := collector.NewSession(src, nil)
	s.Toggle(memo)
	round, err := s.Start(context.Background())
	require.NoError(t, err)
	assert.False(t, round.HasMore)
}

func TestFetchPage_NonAppendResets(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockReviewSource(ctrl)
	an := mocks.NewMockCollectorAnalyzer(ctrl)
	ctx := context.Background()

	src.EXPECT().FetchReviews(ctx, forApp(memo, 1)).Return(collector.Page{Reviews: reviews("a", "b"), HasMore: true}, nil)
	an.EXPECT().AnalyzeReviews(ctx, gomock.Len(2)).Return(analysis.Result{CommonIssues: []string{"x"}}, nil)
	src.EXPECT().FetchReviews(ctx, forApp(memo, 1)).Return(collector.Page{}, errors.New("boom"))

	s := collector.NewSession(src, an)
	s.Toggle(memo)
	_, err := s.Start(ctx)
	require.NoError(t, err)
	_, err = s.Analyze(ctx)
	require.NoError(t, err)
	require.NotNil(t, s.Analysis())

	_, err = s.Start(ctx)
	require.Error(t, err)
	assert.Empty(t, s.Reviews())
	assert.Nil(t, s.Analysis())
}

func TestFetchPage_AllOrNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockReviewSource(ctrl)
	ctx := context.Background()

	src.EXPECT().FetchReviews(ctx, forApp(memo, 1)).Return(collector.Page{Reviews: reviews("a"), HasMore: true}, nil)
	src.EXPECT().FetchReviews(ctx, forApp(memo, 2)).Return(collector.Page{Reviews: reviews("b")}, nil)
	src.EXPECT().FetchReviews(ctx, forApp(note, 2)).Return(collector.Page{}, errors.New("upstream 500"))

	s := collector.NewSession(src, nil)
	s.Toggle(memo)
	_, err := s.Start(ctx)
	require.NoError(t, err)
	s.Toggle(note)

	round, err := s.LoadMore(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Note")
	assert.False(t, round.Committed)

	// the failed round is discarded and the cursor stays put
	assert.Len(t, s.Reviews(), 1)
	page, more := s.Cursor()
	assert.Equal(t, 1, page)
	assert.True(t, more)
}

func TestFetchPage_PartialCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockReviewSource(ctrl)
	ctx := context.Background()
	upstream := errors.New("upstream 500")

	src.EXPECT().FetchReviews(ctx, forApp(memo, 1)).Return(collector.Page{}, upstream)
	src.EXPECT().FetchReviews(ctx, forApp(note, 1)).Return(collector.Page{Reviews: reviews("n1"), HasMore: true}, nil)

	s := collector.NewSession(src, nil, collector.WithPolicy(collector.PartialCommit))
	s.Toggle(memo)
	s.Toggle(note)

	round, err := s.Start(ctx)
	require.ErrorIs(t, err, upstream)
	assert.True(t, round.Committed)
	assert.True(t, round.HasMore)
	assert.Len(t, s.Reviews(), 1)
	page, _ := s.Cursor()
	assert.Equal(t, 1, page)
}

func TestFetchPage_PartialCommitAllFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockReviewSource(ctrl)
	src.EXPECT().FetchReviews(gomock.Any(), gomock.Any()).Return(collector.Page{}, errors.New("down")).Times(2)

	s := collector.NewSession(src, nil, collector.WithPolicy(collector.PartialCommit))
	s.Toggle(memo)
	s.Toggle(note)
	round, err := s.Start(context.Background())
	require.Error(t, err)
	assert.False(t, round.Committed)
	page, _ := s.Cursor()
	assert.Equal(t, 0, page)
}

func TestAnalyze_RefusesEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	an := mocks.NewMockCollectorAnalyzer(ctrl)

	s := collector.NewSession(nil, an)
	_, err := s.Analyze(context.Background())
	require.ErrorIs(t, err, collector.ErrNothingToAnalyze)
}

func TestCommitPolicyString(t *testing.T) {
	assert.Equal(t, "all-or-nothing", collector.AllOrNothing.String())
	assert.Equal(t, "partial", collector.PartialCommit.String())
	assert.Equal(t, "CommitPolicy(9)", collector.CommitPolicy(9).String())
}
