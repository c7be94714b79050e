package fetcher

import (
	"context"

	"MarketAnalyzer/internal/model"
)

// Fetcher defines the boundary to the external data source. Implementations
// must return a fully validated payload or an error; partial data never
// crosses this interface.
type Fetcher interface {
	FetchPrices(ctx context.Context, symbols []string, period, interval string) (*model.PricePayload, error)
	FetchYield(ctx context.Context, period, source string) (*model.YieldPayload, error)
	Name() string
}
