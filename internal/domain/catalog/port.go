package catalog

import "context"

//go:generate mockgen -destination=../../../mocks/mock_marketplace.go -package=mocks . Marketplace

// Marketplace port (the App Store, or a decorator around it)
type Marketplace interface {
	Search(ctx context.Context, q SearchQuery) ([]App, error)
	Reviews(ctx context.Context, q ReviewQuery) (ReviewPage, error)
	SuggestedTerms(ctx context.Context, q SuggestQuery) ([]Suggestion, error)
	Lookup(ctx context.Context, q LookupQuery) (App, error)
}
