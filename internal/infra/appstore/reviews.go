package appstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

// MaxReviewPages is the deepest page the customer-review feed serves.
const MaxReviewPages = 10

var pageInHref = regexp.MustCompile(`page=(\d+)`)

// oneOrMany decodes a JSON value that the feed emits either as a single
// object or as an array of objects.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*o = oneOrMany[T]{v}
		return nil
	}
	var vs []T
	if err := json.Unmarshal(b, &vs); err != nil {
		return err
	}
	*o = vs
	return nil
}

type label struct {
	Label string `json:"label"`
}

type feedEntry struct {
	ID     label `json:"id"`
	Author struct {
		Name label `json:"name"`
	} `json:"author"`
	Updated label `json:"updated"`
	Rating  label `json:"im:rating"`
	Version label `json:"im:version"`
	Title   label `json:"title"`
	Content label `json:"content"`
}

type feedLink struct {
	Attributes struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"attributes"`
}

type reviewFeed struct {
	Feed struct {
		Entry oneOrMany[feedEntry] `json:"entry"`
		Link  oneOrMany[feedLink]  `json:"link"`
	} `json:"feed"`
}

// Reviews fetches one page of the most-recent customer reviews. Pages past
// the end of the feed are reported as catalog.KindExhausted.
func (c *Client) Reviews(ctx context.Context, q catalog.ReviewQuery) (catalog.ReviewPage, error) {
	if q.Page < 1 || q.Page > MaxReviewPages {
		return catalog.ReviewPage{}, &catalog.Error{
			Kind:    catalog.KindExhausted,
			Op:      "reviews",
			Message: fmt.Sprintf("page not found: %d", q.Page),
		}
	}

	id := q.ID
	if id == "" {
		if q.AppID == "" {
			return catalog.ReviewPage{}, catalog.ErrMissingAppID
		}
		var err error
		if id, err = c.lookupTrackID(ctx, q.AppID, q); err != nil {
			return catalog.ReviewPage{}, err
		}
	}

	path := fmt.Sprintf("/%s/rss/customerreviews/page=%d/id=%s/sortby=mostrecent/json", q.Country.Lower(), q.Page, url.PathEscape(id))
	body, err := c.get(ctx, "reviews", c.endpoint(path, nil), nil, reviewStatusKind)
	if err != nil {
		return catalog.ReviewPage{}, err
	}
	defer body.Close()

	var feed reviewFeed
	if err := json.NewDecoder(body).Decode(&feed); err != nil {
		return catalog.ReviewPage{}, &catalog.Error{Kind: catalog.KindDecode, Op: "reviews", Err: err}
	}

	reviews := make([]catalog.Review, 0, len(feed.Feed.Entry))
	for _, e := range feed.Feed.Entry {
		// the first entry of older feeds describes the app itself
		if e.Rating.Label == "" {
			continue
		}
		r, ok := e.toReview()
		if !ok {
			continue
		}
		reviews = append(reviews, r)
	}
	if len(reviews) == 0 {
		return catalog.ReviewPage{}, &catalog.Error{
			Kind:    catalog.KindExhausted,
			Op:      "reviews",
			Message: "no more reviews",
		}
	}

	return catalog.ReviewPage{
		Reviews: reviews,
		Page:    q.Page,
		HasNext: hasNextPage(feed.Feed.Link, q.Page),
	}, nil
}

// toReview rejects entries whose rating is not a 1..5 star score.
func (e feedEntry) toReview() (catalog.Review, bool) {
	score, err := strconv.Atoi(strings.TrimSpace(e.Rating.Label))
	if err != nil || score < 1 || score > 5 {
		return catalog.Review{}, false
	}
	updated, _ := time.Parse(time.RFC3339, e.Updated.Label)
	return catalog.Review{
		ID:       e.ID.Label,
		UserName: e.Author.Name.Label,
		Score:    score,
		Title:    e.Title.Label,
		Text:     e.Content.Label,
		Version:  e.Version.Label,
		Updated:  updated,
	}, true
}

// hasNextPage reads the rel="last" link when present; without it any page
// below the feed depth limit may have a successor.
func hasNextPage(links []feedLink, page int) bool {
	for _, l := range links {
		if l.Attributes.Rel != "last" {
			continue
		}
		m := pageInHref.FindStringSubmatch(l.Attributes.Href)
		if m == nil {
			break
		}
		last, err := strconv.Atoi(m[1])
		if err != nil {
			break
		}
		return page < last
	}
	return page < MaxReviewPages
}

func reviewStatusKind(code int) catalog.Kind {
	switch code {
	case http.StatusBadRequest:
		// the feed answers 400 for pages past its depth limit
		return catalog.KindExhausted
	case http.StatusNotFound:
		return catalog.KindNotFound
	default:
		return catalog.KindUpstream
	}
}
