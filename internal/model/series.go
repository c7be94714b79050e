package model

// SeriesPoint is a single dated observation in a time series.
// Date is a UTC calendar date formatted YYYY-MM-DD, so lexicographic
// comparison matches chronological order.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// PricePayload holds daily closes per symbol, as produced by the external
// fetcher and as returned by the /prices endpoint.
type PricePayload struct {
	Symbols []string                 `json:"symbols"`
	Series  map[string][]SeriesPoint `json:"series"`
}

// YieldPayload holds a dividend-yield series (percent) for one symbol.
type YieldPayload struct {
	Symbol string        `json:"symbol"`
	Series []SeriesPoint `json:"series"`
}
