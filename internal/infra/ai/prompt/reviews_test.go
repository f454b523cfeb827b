package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

func TestFormatReviews(t *testing.T) {
	reviews := []catalog.Review{
		{ID: "r1", AppTitle: "Memo Pad", Score: 1, Title: "Crashes", Text: "It crashes"},
		{ID: "r2", Score: 2, Text: "Slow", App: &catalog.App{Title: "Memo Pro"}},
		{ID: "", Score: 2, Text: "No app"},
	}
	got := FormatReviews(reviews)

	want := strings.Join([]string{
		"Review r1:\nApp: Memo Pad\nRating: 1/5\nTitle: Crashes\nText: It crashes",
		"Review r2:\nApp: Memo Pro\nRating: 2/5\nTitle: \nText: Slow",
		"Review :\nApp: Unknown App\nRating: 2/5\nTitle: \nText: No app",
	}, "\n\n")
	assert.Equal(t, want, got)
	assert.Empty(t, FormatReviews(nil))
}

func TestUserPromptEmbedsReviews(t *testing.T) {
	p := GetUserPrompt("Review r1:\nText: slow")
	assert.Contains(t, p, "レビュー：\nReview r1:")
	assert.Contains(t, p, "一般的な問題点")
	assert.NotEmpty(t, GetSystemPrompt())
}
