package catalog

import (
	"time"

	"github.com/bryanwahyu/review-miner/internal/domain/locale"
)

// NegativeScoreMax is the highest score still counted as a negative review.
const NegativeScoreMax = 2

// App is a marketplace listing as returned by search.
type App struct {
	ID          string   `json:"id"`
	AppID       string   `json:"appId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Developer   string   `json:"developer"`
	Score       float64  `json:"score"`
	Reviews     int      `json:"reviews"`
	Price       float64  `json:"price"`
	Free        bool     `json:"free"`
	Genres      []string `json:"genres"`
	URL         string   `json:"url"`
}

// Review is a single customer review. AppID, AppTitle and App are filled in
// by the collector so a merged list can be rendered without a lookup.
type Review struct {
	ID       string    `json:"id"`
	UserName string    `json:"userName"`
	Score    int       `json:"score"`
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Version  string    `json:"version"`
	Updated  time.Time `json:"updated"`
	AppID    string    `json:"appId,omitempty"`
	AppTitle string    `json:"appTitle,omitempty"`
	App      *App      `json:"app,omitempty"`
}

// Negative reports whether the review counts as a complaint. Unrated
// reviews (score 0) never do.
func (r Review) Negative() bool { return r.Score >= 1 && r.Score <= NegativeScoreMax }

// FilterNegative keeps reviews scored 1..NegativeScoreMax, preserving order.
func FilterNegative(in []Review) []Review {
	out := make([]Review, 0, len(in))
	for _, r := range in {
		if r.Negative() {
			out = append(out, r)
		}
	}
	return out
}

// Suggestion is one search-hint term.
type Suggestion struct {
	Term string `json:"term"`
}

type SearchQuery struct {
	Term     string
	Country  locale.Country
	Language locale.Language
	Limit    int
}

// ReviewQuery identifies an app either by numeric store id (ID) or by
// bundle id (AppID). ID wins when both are set.
type ReviewQuery struct {
	ID       string
	AppID    string
	Country  locale.Country
	Language locale.Language
	Page     int
}

// ReviewPage is one page of the review feed, before any filtering.
type ReviewPage struct {
	Reviews []Review
	Page    int
	HasNext bool
}

type SuggestQuery struct {
	Term     string
	Country  locale.Country
	Language locale.Language
}

// LookupQuery identifies one app by numeric store id.
type LookupQuery struct {
	ID       string
	Country  locale.Country
	Language locale.Language
}
