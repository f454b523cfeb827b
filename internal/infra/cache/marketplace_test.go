package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/locale"
	"github.com/bryanwahyu/review-miner/mocks"
)

func TestSearchIsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMarketplace(ctrl)
	apps := []catalog.App{{ID: "1", Title: "Memo"}}
	next.EXPECT().Search(gomock.Any(), gomock.Any()).Return(apps, nil).Times(1)

	m := NewMarketplace(next, 16, time.Minute)
	q := catalog.SearchQuery{Term: "Memo", Country: locale.JP, Language: "ja", Limit: 10}

	for i := 0; i < 3; i++ {
		got, err := m.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, apps, got)
	}

	// term casing shares the entry
	q.Term = "memo"
	_, err := m.Search(context.Background(), q)
	require.NoError(t, err)
}

func TestSearchErrorsAreNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMarketplace(ctrl)
	gomock.InOrder(
		next.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom")),
		next.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]catalog.App{{ID: "1"}}, nil),
	)

	m := NewMarketplace(next, 16, time.Minute)
	q := catalog.SearchQuery{Term: "memo", Country: locale.US}
	_, err := m.Search(context.Background(), q)
	require.Error(t, err)
	got, err := m.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReviewsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMarketplace(ctrl)
	q := catalog.ReviewQuery{ID: "1", Country: locale.JP, Page: 1}
	next.EXPECT().Reviews(gomock.Any(), q).Return(catalog.ReviewPage{Page: 1}, nil).Times(2)

	m := NewMarketplace(next, 16, time.Minute)
	for i := 0; i < 2; i++ {
		_, err := m.Reviews(context.Background(), q)
		require.NoError(t, err)
	}
}

func TestSuggestIsCachedPerCountry(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMarketplace(ctrl)
	next.EXPECT().SuggestedTerms(gomock.Any(), gomock.Any()).Return([]catalog.Suggestion{{Term: "memo"}}, nil).Times(2)

	m := NewMarketplace(next, 16, time.Minute)
	for _, c := range []locale.Country{locale.JP, locale.JP, locale.US} {
		_, err := m.SuggestedTerms(context.Background(), catalog.SuggestQuery{Term: "me", Country: c})
		require.NoError(t, err)
	}
}

func TestDisabledCacheReturnsNext(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMarketplace(ctrl)
	assert.Same(t, next, NewMarketplace(next, 0, time.Minute))
}

func TestCachedSlicesAreNotShared(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMarketplace(ctrl)
	next.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]catalog.App{{ID: "1", Title: "Memo"}}, nil).Times(1)
	next.EXPECT().SuggestedTerms(gomock.Any(), gomock.Any()).Return([]catalog.Suggestion{{Term: "memo"}}, nil).Times(1)

	m := NewMarketplace(next, 16, time.Minute)
	sq := catalog.SearchQuery{Term: "memo", Country: locale.JP}
	tq := catalog.SuggestQuery{Term: "mem", Country: locale.JP}

	first, err := m.Search(context.Background(), sq)
	require.NoError(t, err)
	first[0].Title = "changed"
	terms, err := m.SuggestedTerms(context.Background(), tq)
	require.NoError(t, err)
	terms[0].Term = "changed"

	again, err := m.Search(context.Background(), sq)
	require.NoError(t, err)
	assert.Equal(t, "Memo", again[0].Title)
	again[0].Title = "changed twice"

	cached, err := m.Search(context.Background(), sq)
	require.NoError(t, err)
	assert.Equal(t, "Memo", cached[0].Title)

	termsAgain, err := m.SuggestedTerms(context.Background(), tq)
	require.NoError(t, err)
	assert.Equal(t, "memo", termsAgain[0].Term)
}

func TestLookupPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockMarketplace(ctrl)
	q := catalog.LookupQuery{ID: "1", Country: locale.JP}
	next.EXPECT().Lookup(gomock.Any(), q).Return(catalog.App{ID: "1", Title: "Memo"}, nil).Times(2)

	m := NewMarketplace(next, 16, time.Minute)
	for i := 0; i < 2; i++ {
		app, err := m.Lookup(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, "Memo", app.Title)
	}
}
