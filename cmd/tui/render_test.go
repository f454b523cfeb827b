package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

func TestRenderStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", renderStars(4.4))
	assert.Equal(t, "★★★★★", renderStars(4.6))
	assert.Equal(t, "☆☆☆☆☆", renderStars(-1))
	assert.Equal(t, "★★★★★", renderStars(9))
}

func TestRenderApps(t *testing.T) {
	s := GetTheme(ThemeCyan)
	assert.Contains(t, renderApps(s, nil, func(string) bool { return false }), msgNoResults)

	out := renderApps(s, []catalog.App{{ID: "1", Title: "メモ帳", Developer: "Dev"}, {ID: "2", Title: "ノート"}},
		func(id string) bool { return id == "2" })
	assert.Contains(t, out, "[ ]  1. メモ帳")
	assert.Contains(t, out, "[x]  2. ノート")
}

func TestRenderReviews(t *testing.T) {
	out := renderReviews(GetTheme(ThemeSakura), []catalog.Review{{
		Title: "落ちる", Text: "起動しない", Score: 1, UserName: "taro", Version: "1.2",
		AppTitle: "メモ帳", Updated: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "落ちる")
	assert.Contains(t, out, "起動しない")
	assert.Contains(t, out, "taro · v1.2 · 2024-03-01")
}

func TestAnalysisMarkdown(t *testing.T) {
	md := analysisMarkdown(analysis.Result{CommonIssues: []string{"a"}, Suggestions: []string{"b"}})
	assert.Equal(t, "## よくある問題点\n\n- a\n\n## 改善提案\n\n- b\n", md)

	md = analysisMarkdown(analysis.Result{Degraded: true})
	assert.Contains(t, md, "> "+msgDegraded)
}

func TestRenderHistory(t *testing.T) {
	s := GetTheme(ThemeAmber)
	assert.Contains(t, renderHistory(s, nil), "分析履歴はありません")

	out := renderHistory(s, []*analysis.Record{{
		ID: "abc", ReviewCount: 3, Result: analysis.Result{Degraded: true},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "2024-01-02 03:04  abc  3件 (簡易)")
}

func TestGetThemeFallsBack(t *testing.T) {
	assert.Equal(t, GetTheme(ThemeSakura).error.Render("x"), GetTheme("nope").error.Render("x"))
	assert.Len(t, ListThemes(), 4)
}
