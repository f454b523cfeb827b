// Package apiclient is the HTTP client the terminal front ends use to talk
// to the review-miner API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/review-miner/internal/application/collector"
	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/locale"
)

const DefaultBaseURL = "http://localhost:8080"

// APIError is a non-2xx answer. Message is the server's error text, which
// is meant to be shown to the user as is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api responded %d", e.Status)
}

// ReviewsResponse mirrors GET /api/reviews.
type ReviewsResponse struct {
	Reviews []catalog.Review `json:"reviews"`
	Page    int              `json:"page"`
	HasMore bool             `json:"hasMore"`
	Message string           `json:"message,omitempty"`
}

// AnalyzeResponse mirrors POST /api/analyze.
type AnalyzeResponse struct {
	analysis.Result
	ID        string `json:"id,omitempty"`
	ReportURL string `json:"reportUrl,omitempty"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var (
	_ collector.ReviewSource = (*Client)(nil)
	_ collector.Analyzer     = (*Client)(nil)
)

// New returns a client for baseURL. The timeout covers analysis calls,
// which wait for the model.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Search(ctx context.Context, term string, country locale.Country, lang locale.Language, num int) ([]catalog.App, error) {
	q := url.Values{"term": {term}, "country": {country.String()}, "language": {string(lang)}}
	if num > 0 {
		q.Set("num", strconv.Itoa(num))
	}
	var out struct {
		Apps []catalog.App `json:"apps"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Apps, nil
}

func (c *Client) Reviews(ctx context.Context, id string, country locale.Country, lang locale.Language, page int) (ReviewsResponse, error) {
	q := url.Values{"id": {id}, "country": {country.String()}, "language": {string(lang)}, "page": {strconv.Itoa(page)}}
	var out ReviewsResponse
	err := c.do(ctx, http.MethodGet, "/api/reviews", q, nil, &out)
	return out, err
}

// App looks up one listing by numeric store id.
func (c *Client) App(ctx context.Context, id string, country locale.Country, lang locale.Language) (catalog.App, error) {
	q := url.Values{"id": {id}, "country": {country.String()}, "language": {string(lang)}}
	var out struct {
		App catalog.App `json:"app"`
	}
	err := c.do(ctx, http.MethodGet, "/api/app", q, nil, &out)
	return out.App, err
}

func (c *Client) Suggest(ctx context.Context, term string, country locale.Country, lang locale.Language) ([]catalog.Suggestion, error) {
	q := url.Values{"term": {term}, "country": {country.String()}, "language": {string(lang)}}
	var out struct {
		Suggestions []catalog.Suggestion `json:"suggestions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/suggest", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

func (c *Client) Analyze(ctx context.Context, reviews []catalog.Review) (AnalyzeResponse, error) {
	body := struct {
		Reviews []catalog.Review `json:"reviews"`
	}{Reviews: reviews}
	var out AnalyzeResponse
	err := c.do(ctx, http.MethodPost, "/api/analyze", nil, body, &out)
	return out, err
}

func (c *Client) Analyses(ctx context.Context, page, pageSize int) ([]*analysis.Record, error) {
	q := url.Values{"page": {strconv.Itoa(page)}, "page_size": {strconv.Itoa(pageSize)}}
	var out []*analysis.Record
	err := c.do(ctx, http.MethodGet, "/api/analyses", q, nil, &out)
	return out, err
}

// FetchReviews adapts Reviews to the collector.
func (c *Client) FetchReviews(ctx context.Context, req collector.PageRequest) (collector.Page, error) {
	res, err := c.Reviews(ctx, req.App.ID, req.Country, req.Language, req.Page)
	if err != nil {
		return collector.Page{}, err
	}
	return collector.Page{Reviews: res.Reviews, HasMore: res.HasMore, Message: res.Message}, nil
}

// AnalyzeReviews adapts Analyze to the collector.
func (c *Client) AnalyzeReviews(ctx context.Context, reviews []catalog.Review) (analysis.Result, error) {
	res, err := c.Analyze(ctx, reviews)
	if err != nil {
		return analysis.Result{}, err
	}
	return res.Result, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
