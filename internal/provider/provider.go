package provider

import (
	"context"
	"errors"

	"Stonitor/internal/model"
)

// ErrNoData is returned when the provider answers without any quotes.
var ErrNoData = errors.New("no data returned")

// Provider defines the interface for fetching market data.
type Provider interface {
	LatestQuote(ctx context.Context, ticker string) (*model.Chart, error)
	History(ctx context.Context, ticker string, rng model.Range) (*model.Chart, error)
	Search(ctx context.Context, query string) (*model.SearchResult, error)
	Name() string
}
