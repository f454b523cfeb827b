package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/review-miner/internal/application/collector"
	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/locale"
	"github.com/bryanwahyu/review-miner/internal/infra/apiclient"
)

func newTestModel() *model {
	client := apiclient.New("http://127.0.0.1:1", "", time.Second)
	return initialModel(ThemeSakura, client, collector.NewSession(client, client))
}

func lastLine(m *model) string {
	return m.history[len(m.history)-1]
}

func TestSearchResultUpdatesStatus(t *testing.T) {
	m := newTestModel()

	m.Update(searchDoneMsg{term: "memo", apps: []catalog.App{{ID: "1", Title: "メモ帳"}, {ID: "2", Title: "ノート"}}})
	assert.Equal(t, "2件のアプリが見つかりました", m.status)
	assert.Contains(t, lastLine(m), "メモ帳")
	assert.False(t, m.isLoading)

	m.Update(searchDoneMsg{term: "zzz"})
	assert.Equal(t, msgNoResults, m.status)
}

func TestSearchErrorIsShown(t *testing.T) {
	m := newTestModel()
	m.Update(searchDoneMsg{term: "memo", err: errors.New("boom")})
	assert.Contains(t, lastLine(m), "boom")
}

func TestSelectTogglesByIndex(t *testing.T) {
	m := newTestModel()
	m.apps = []catalog.App{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}

	assert.Nil(t, m.processCommand("/select 2"))
	require.Len(t, m.session.Selected(), 1)
	assert.Equal(t, "2", m.session.Selected()[0].ID)

	m.processCommand("/select 2 1")
	require.Len(t, m.session.Selected(), 1)
	assert.Equal(t, "1", m.session.Selected()[0].ID)

	m.processCommand("/select 9")
	assert.Equal(t, "1件のアプリを選択中", m.status)
	assert.Contains(t, strings.Join(m.history, "\n"), "無効な番号: 9")
}

func TestClearDropsSelectionAndReviews(t *testing.T) {
	m := newTestModel()
	m.apps = []catalog.App{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	m.processCommand("/select 1 2")
	require.Len(t, m.session.Selected(), 2)

	m.processCommand("/clear")
	assert.Equal(t, "選択をクリアしました", m.status)
	assert.Empty(t, m.session.Selected())
	assert.Empty(t, m.session.Reviews())
	page, more := m.session.Cursor()
	assert.Zero(t, page)
	assert.False(t, more)
}

func TestNewSearchStartsFresh(t *testing.T) {
	m := newTestModel()
	m.Update(searchDoneMsg{term: "memo", apps: []catalog.App{{ID: "1", Title: "メモ帳"}}})
	m.processCommand("/select 1")
	require.Len(t, m.session.Selected(), 1)

	assert.NotNil(t, m.processCommand("note"))
	assert.Empty(t, m.session.Selected())
	assert.Nil(t, m.apps)

	m.Update(searchDoneMsg{term: "note", apps: []catalog.App{{ID: "2", Title: "ノート"}}})
	m.processCommand("/select 1")
	sel := m.session.Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, "2", sel[0].ID)
}

func TestSelectRequiresSearch(t *testing.T) {
	m := newTestModel()
	m.processCommand("/select 1")
	assert.Contains(t, lastLine(m), "先にアプリを検索してください")
}

func TestReviewsAndAnalyzeGuards(t *testing.T) {
	m := newTestModel()

	assert.Nil(t, m.processCommand("/reviews"))
	assert.Contains(t, lastLine(m), collector.ErrNoSelection.Error())

	assert.Nil(t, m.processCommand("/analyze"))
	assert.Contains(t, lastLine(m), collector.ErrNothingToAnalyze.Error())

	assert.Nil(t, m.processCommand("/more"))
	assert.Contains(t, lastLine(m), "これ以上のレビューはありません")
}

func TestLocaleCommands(t *testing.T) {
	m := newTestModel()

	m.processCommand("/country jp")
	m.processCommand("/lang JA")
	country, lang := m.session.Locale()
	assert.Equal(t, locale.JP, country)
	assert.Equal(t, locale.Language("ja"), lang)

	m.processCommand("/country XX")
	assert.Contains(t, lastLine(m), "無効な国コード: XX")
	country, _ = m.session.Locale()
	assert.Equal(t, locale.JP, country)
}

func TestUnknownCommand(t *testing.T) {
	m := newTestModel()
	assert.Nil(t, m.processCommand("/bogus"))
	assert.Contains(t, lastLine(m), "不明なコマンドです: /bogus")
}

func TestPlainInputStartsSearch(t *testing.T) {
	m := newTestModel()
	cmd := m.processCommand("memo")
	assert.NotNil(t, cmd)
	assert.True(t, m.isLoading)
}

func TestAnalysisDoneRendersResult(t *testing.T) {
	m := newTestModel()
	m.width = 80
	m.Update(analysisDoneMsg{result: analysis.Result{CommonIssues: []string{"クラッシュ"}, Suggestions: []string{"修正"}}})
	assert.Equal(t, "分析が完了しました", m.status)
	assert.Contains(t, lastLine(m), "クラッシュ")
}

func TestStatusLine(t *testing.T) {
	m := newTestModel()
	m.session.Toggle(catalog.App{ID: "1", Title: "A"})
	m.status = "ok"
	line := m.statusLine()
	assert.Contains(t, line, "US / en-us")
	assert.Contains(t, line, "選択 1")
	assert.Contains(t, line, "ok")
}
