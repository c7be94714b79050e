package store

import (
	"context"

	"MarketAnalyzer/internal/model"
)

// Store persists cached time series keyed by their natural identity:
// (symbol, date, interval) for prices, (symbol, date) for dividend yields.
type Store interface {
	// LatestPriceDates returns the most recent stored date per symbol for
	// the given interval. Symbols with no rows are absent from the map.
	LatestPriceDates(ctx context.Context, symbols []string, interval string) (map[string]string, error)

	// LatestYieldDate returns the most recent stored date for the symbol,
	// or "" when no rows exist.
	LatestYieldDate(ctx context.Context, symbol string) (string, error)

	// UpsertPrices writes a validated price payload in one transaction.
	// Rows are inserted or, on natural-key conflict, the close value is
	// overwritten. Symbols with empty series are skipped.
	UpsertPrices(ctx context.Context, payload *model.PricePayload, interval string) error

	// UpsertYields writes a validated yield payload in one transaction.
	UpsertYields(ctx context.Context, payload *model.YieldPayload) error

	// QueryPricesRange returns stored closes with start <= date <= end,
	// ascending by date. Every requested symbol is present in the result,
	// with an empty series when nothing is stored.
	QueryPricesRange(ctx context.Context, symbols []string, start, end, interval string) (*model.PricePayload, error)

	// QueryYieldRange returns the stored yield series for the window,
	// ascending by date.
	QueryYieldRange(ctx context.Context, symbol, start, end string) (*model.YieldPayload, error)

	Close() error
}
