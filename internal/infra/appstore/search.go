package appstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

type searchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []searchResult `json:"results"`
}

type searchResult struct {
	TrackID           int64    `json:"trackId"`
	BundleID          string   `json:"bundleId"`
	TrackName         string   `json:"trackName"`
	Description       string   `json:"description"`
	ArtworkURL512     string   `json:"artworkUrl512"`
	ArtworkURL100     string   `json:"artworkUrl100"`
	ArtistName        string   `json:"artistName"`
	AverageUserRating float64  `json:"averageUserRating"`
	UserRatingCount   int      `json:"userRatingCount"`
	Price             float64  `json:"price"`
	Genres            []string `json:"genres"`
	TrackViewURL      string   `json:"trackViewUrl"`
}

func (r searchResult) toApp() catalog.App {
	icon := r.ArtworkURL512
	if icon == "" {
		icon = r.ArtworkURL100
	}
	genres := r.Genres
	if genres == nil {
		genres = []string{}
	}
	return catalog.App{
		ID:          strconv.FormatInt(r.TrackID, 10),
		AppID:       r.BundleID,
		Title:       r.TrackName,
		Description: r.Description,
		Icon:        icon,
		Developer:   r.ArtistName,
		Score:       r.AverageUserRating,
		Reviews:     r.UserRatingCount,
		Price:       r.Price,
		Free:        r.Price == 0,
		Genres:      genres,
		URL:         r.TrackViewURL,
	}
}

// Search queries the software catalogue of one storefront.
func (c *Client) Search(ctx context.Context, q catalog.SearchQuery) ([]catalog.App, error) {
	params := url.Values{}
	params.Set("term", q.Term)
	params.Set("country", q.Country.Lower())
	params.Set("entity", "software")
	params.Set("lang", q.Language.AppleLang())
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	body, err := c.get(ctx, "search", c.endpoint("/search", params), nil, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, &catalog.Error{Kind: catalog.KindDecode, Op: "search", Err: err}
	}
	apps := make([]catalog.App, 0, len(resp.Results))
	for _, r := range resp.Results {
		apps = append(apps, r.toApp())
	}
	return apps, nil
}

// Lookup fetches the listing for one numeric store id.
func (c *Client) Lookup(ctx context.Context, q catalog.LookupQuery) (catalog.App, error) {
	params := url.Values{}
	params.Set("id", q.ID)
	params.Set("country", q.Country.Lower())
	params.Set("lang", q.Language.AppleLang())

	res, err := c.lookup(ctx, params, q.ID)
	if err != nil {
		return catalog.App{}, err
	}
	return res.toApp(), nil
}

// lookupTrackID resolves a bundle id to the numeric id the review feed needs.
func (c *Client) lookupTrackID(ctx context.Context, bundleID string, q catalog.ReviewQuery) (string, error) {
	params := url.Values{}
	params.Set("bundleId", bundleID)
	params.Set("country", q.Country.Lower())

	res, err := c.lookup(ctx, params, bundleID)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(res.TrackID, 10), nil
}

func (c *Client) lookup(ctx context.Context, params url.Values, key string) (searchResult, error) {
	body, err := c.get(ctx, "lookup", c.endpoint("/lookup", params), nil, func(code int) catalog.Kind {
		if code == http.StatusNotFound {
			return catalog.KindNotFound
		}
		return catalog.KindUpstream
	})
	if err != nil {
		return searchResult{}, err
	}
	defer body.Close()

	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return searchResult{}, &catalog.Error{Kind: catalog.KindDecode, Op: "lookup", Err: err}
	}
	if len(resp.Results) == 0 || resp.Results[0].TrackID == 0 {
		return searchResult{}, &catalog.Error{Kind: catalog.KindNotFound, Op: "lookup", Message: "app not found: " + key}
	}
	return resp.Results[0], nil
}
