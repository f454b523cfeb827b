package prompt

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

const unknownApp = "Unknown App"

// GetSystemPrompt sets the analyst persona. Answers are expected in Japanese.
func GetSystemPrompt() string {
	return "あなたはアプリレビューを分析する専門家です。ユーザーの声を理解し、建設的なフィードバックを提供します。"
}

// GetUserPrompt wraps the formatted review block with the task description.
func GetUserPrompt(reviewText string) string {
	return fmt.Sprintf(`
以下はアプリのユーザーレビューです。これらのレビューを分析して、以下の情報を提供してください：

1. ユーザーが報告している一般的な問題点のリスト
2. アプリ改善のための具体的な提案のリスト

レビュー：
%s
`, reviewText)
}

// FormatReviews renders every review as one block, separated by blank lines.
func FormatReviews(reviews []catalog.Review) string {
	blocks := make([]string, 0, len(reviews))
	for _, r := range reviews {
		blocks = append(blocks, FormatReview(r))
	}
	return strings.Join(blocks, "\n\n")
}

func FormatReview(r catalog.Review) string {
	app := r.AppTitle
	if app == "" && r.App != nil {
		app = r.App.Title
	}
	if app == "" {
		app = unknownApp
	}
	return fmt.Sprintf("Review %s:\nApp: %s\nRating: %d/5\nTitle: %s\nText: %s", r.ID, app, r.Score, r.Title, r.Text)
}
