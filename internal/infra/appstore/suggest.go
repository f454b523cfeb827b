package appstore

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

// SuggestedTerms asks the search-hints endpoint for completions of q.Term.
// The endpoint answers with an XML property list.
func (c *Client) SuggestedTerms(ctx context.Context, q catalog.SuggestQuery) ([]catalog.Suggestion, error) {
	params := url.Values{}
	params.Set("clientApplication", "Software")
	params.Set("term", q.Term)

	header := http.Header{}
	header.Set("X-Apple-Store-Front", fmt.Sprintf("%d,29", q.Country.Storefront()))

	body, err := c.get(ctx, "suggest", c.hintsURL+"?"+params.Encode(), header, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	terms, err := parseHints(body)
	if err != nil {
		return nil, &catalog.Error{Kind: catalog.KindDecode, Op: "suggest", Err: err}
	}
	return terms, nil
}

// parseHints collects the <string> value following every <key>term</key>.
func parseHints(r io.Reader) ([]catalog.Suggestion, error) {
	dec := xml.NewDecoder(r)
	out := []catalog.Suggestion{}

	var (
		lastKey  string
		inKey    bool
		inString bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "key":
				inKey = true
				lastKey = ""
			case "string":
				inString = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "key":
				inKey = false
			case "string":
				inString = false
				lastKey = ""
			}
		case xml.CharData:
			switch {
			case inKey:
				lastKey += string(t)
			case inString && lastKey == "term":
				if term := strings.TrimSpace(string(t)); term != "" {
					out = append(out, catalog.Suggestion{Term: term})
				}
			}
		}
	}
}
