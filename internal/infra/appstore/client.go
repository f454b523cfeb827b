package appstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

const (
	DefaultBaseURL  = "https://itunes.apple.com"
	DefaultHintsURL = "https://search.itunes.apple.com/WebObjects/MZSearchHints.woa/wa/hints"

	defaultTimeout = 15 * time.Second
	maxErrorBody   = 512
)

// Options configures the App Store client. Zero values fall back to the
// public Apple endpoints.
type Options struct {
	BaseURL    string
	HintsURL   string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// Client talks to the public iTunes search, lookup, customer-review RSS and
// search-hint endpoints. It implements catalog.Marketplace.
type Client struct {
	baseURL   string
	hintsURL  string
	userAgent string
	http      *http.Client
}

var _ catalog.Marketplace = (*Client)(nil)

func New(opts Options) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		hintsURL:  opts.HintsURL,
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.hintsURL == "" {
		c.hintsURL = DefaultHintsURL
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	return c
}

// get performs a GET and returns the open body for 2xx responses. Non-2xx
// responses become *catalog.Error values classified by statusKind.
func (c *Client) get(ctx context.Context, op, rawURL string, header http.Header, statusKind func(int) catalog.Kind) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &catalog.Error{Kind: catalog.KindUnknown, Op: op, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &catalog.Error{Kind: catalog.KindUpstream, Op: op, Err: err}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Body, nil
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	kind := catalog.KindUpstream
	if statusKind != nil {
		kind = statusKind(resp.StatusCode)
	}
	return nil, &catalog.Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf("app store responded %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
	}
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
