package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

const (
	msgNoResults    = "検索結果がありません"
	msgFoundApps    = "%d件のアプリが見つかりました"
	msgNoSelection  = "アプリが選択されていません"
	msgDegraded     = "AI分析が利用できないため、簡易分析を表示しています。"
	headingIssues   = "よくある問題点"
	headingSuggests = "改善提案"
)

func renderStars(score float64) string {
	n := int(score + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// renderApps lists search results with 1-based indexes for /select.
func renderApps(s styles, apps []catalog.App, isSelected func(string) bool) string {
	if len(apps) == 0 {
		return s.inactive.Render(msgNoResults)
	}
	var b strings.Builder
	for i, app := range apps {
		mark := "[ ]"
		line := fmt.Sprintf("%s %2d. %s  %s", mark, i+1, app.Title, s.inactive.Render(app.Developer))
		if isSelected(app.ID) {
			mark = "[x]"
			line = s.selected.Render(fmt.Sprintf("%s %2d. %s", mark, i+1, app.Title)) + "  " + s.inactive.Render(app.Developer)
		}
		fmt.Fprintf(&b, "%s %s (%d)\n", line, s.stars.Render(renderStars(app.Score)), app.Reviews)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderReviews(s styles, reviews []catalog.Review) string {
	var b strings.Builder
	for _, r := range reviews {
		fmt.Fprintf(&b, "%s %s  %s\n", s.stars.Render(renderStars(float64(r.Score))), s.selected.Render(r.Title), s.inactive.Render(r.AppTitle))
		if text := strings.TrimSpace(r.Text); text != "" {
			fmt.Fprintf(&b, "  %s\n", text)
		}
		fmt.Fprintf(&b, "  %s\n", s.inactive.Render(fmt.Sprintf("%s · v%s · %s", r.UserName, r.Version, r.Updated.Format("2006-01-02"))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// analysisMarkdown turns a result into the markdown shown in the analysis view.
func analysisMarkdown(res analysis.Result) string {
	var b strings.Builder
	if res.Degraded {
		fmt.Fprintf(&b, "> %s\n\n", msgDegraded)
	}
	fmt.Fprintf(&b, "## %s\n\n", headingIssues)
	for _, issue := range res.CommonIssues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	fmt.Fprintf(&b, "\n## %s\n\n", headingSuggests)
	for _, s := range res.Suggestions {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return b.String()
}

func renderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func renderHistory(s styles, recs []*analysis.Record) string {
	if len(recs) == 0 {
		return s.inactive.Render("分析履歴はありません")
	}
	var b strings.Builder
	for _, r := range recs {
		flag := ""
		if r.Result.Degraded {
			flag = " (簡易)"
		}
		fmt.Fprintf(&b, "%s  %s  %d件%s  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.ID, r.ReviewCount, flag, s.inactive.Render(r.ReportURL))
	}
	return strings.TrimRight(b.String(), "\n")
}

const helpText = `コマンド:
  <キーワード>            アプリを検索
  /search <キーワード>    アプリを検索
  /suggest <キーワード>   検索候補を表示
  /select <番号...>       アプリの選択を切り替え
  /selected               選択中のアプリを表示
  /clear                  選択とレビューをクリア
  /country <コード>       国を変更 (例: JP, US)
  /lang <コード>          言語を変更 (例: ja, en-us)
  /reviews                選択したアプリのレビューを取得
  /more                   次のページを取得
  /analyze                取得したレビューを分析
  /history                分析履歴を表示
  /help                   このヘルプを表示
  /exit                   終了`
