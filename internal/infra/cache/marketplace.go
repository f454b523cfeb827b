package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
)

// Marketplace memoises search and suggestion lookups in front of another
// catalog.Marketplace. Review pages are never cached so exhaustion is always
// observed fresh.
type Marketplace struct {
	next     catalog.Marketplace
	searches *expirable.LRU[string, []catalog.App]
	suggests *expirable.LRU[string, []catalog.Suggestion]
}

var _ catalog.Marketplace = (*Marketplace)(nil)

// NewMarketplace wraps next. size <= 0 disables caching and returns next as-is.
func NewMarketplace(next catalog.Marketplace, size int, ttl time.Duration) catalog.Marketplace {
	if size <= 0 {
		return next
	}
	return &Marketplace{
		next:     next,
		searches: expirable.NewLRU[string, []catalog.App](size, nil, ttl),
		suggests: expirable.NewLRU[string, []catalog.Suggestion](size, nil, ttl),
	}
}

func (m *Marketplace) Search(ctx context.Context, q catalog.SearchQuery) ([]catalog.App, error) {
	key := fmt.Sprintf("%s|%s|%d|%s", q.Country, q.Language, q.Limit, strings.ToLower(q.Term))
	if apps, ok := m.searches.Get(key); ok {
		return slices.Clone(apps), nil
	}
	apps, err := m.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	m.searches.Add(key, slices.Clone(apps))
	return apps, nil
}

func (m *Marketplace) Reviews(ctx context.Context, q catalog.ReviewQuery) (catalog.ReviewPage, error) {
	return m.next.Reviews(ctx, q)
}

// Lookup is not cached; it runs once per selected app in the CLI.
func (m *Marketplace) Lookup(ctx context.Context, q catalog.LookupQuery) (catalog.App, error) {
	return m.next.Lookup(ctx, q)
}

func (m *Marketplace) SuggestedTerms(ctx context.Context, q catalog.SuggestQuery) ([]catalog.Suggestion, error) {
	key := fmt.Sprintf("%s|%s|%s", q.Country, q.Language, strings.ToLower(q.Term))
	if terms, ok := m.suggests.Get(key); ok {
		return slices.Clone(terms), nil
	}
	terms, err := m.next.SuggestedTerms(ctx, q)
	if err != nil {
		return nil, err
	}
	m.suggests.Add(key, slices.Clone(terms))
	return terms, nil
}
