package fetcher

import (
	"encoding/json"
	"fmt"

	"MarketAnalyzer/internal/model"
)

// rawPoint decodes one series entry with pointer fields so that missing,
// null, and wrong-typed values are all distinguishable from real data.
type rawPoint struct {
	Date  *string  `json:"date"`
	Value *float64 `json:"value"`
}

type rawPricePayload struct {
	Symbols *[]string              `json:"symbols"`
	Series  *map[string][]rawPoint `json:"series"`
}

type rawYieldPayload struct {
	Symbol *string     `json:"symbol"`
	Series *[]rawPoint `json:"series"`
}

// DecodePricePayload strictly validates raw fetcher output against the
// expected price shape. Any structural mismatch rejects the whole payload
// before it can reach the store.
func DecodePricePayload(data []byte) (*model.PricePayload, error) {
	var raw rawPricePayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("price payload: %w", err)
	}
	if raw.Symbols == nil {
		return nil, fmt.Errorf("price payload: missing symbols")
	}
	if raw.Series == nil {
		return nil, fmt.Errorf("price payload: missing series")
	}

	payload := &model.PricePayload{
		Symbols: *raw.Symbols,
		Series:  make(map[string][]model.SeriesPoint, len(*raw.Series)),
	}
	for sym, pts := range *raw.Series {
		series, err := convertPoints(pts)
		if err != nil {
			return nil, fmt.Errorf("price payload: series[%s]: %w", sym, err)
		}
		payload.Series[sym] = series
	}
	return payload, nil
}

// DecodeYieldPayload strictly validates raw fetcher output against the
// expected yield shape.
func DecodeYieldPayload(data []byte) (*model.YieldPayload, error) {
	var raw rawYieldPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yield payload: %w", err)
	}
	if raw.Symbol == nil {
		return nil, fmt.Errorf("yield payload: missing symbol")
	}
	if raw.Series == nil {
		return nil, fmt.Errorf("yield payload: missing series")
	}

	series, err := convertPoints(*raw.Series)
	if err != nil {
		return nil, fmt.Errorf("yield payload: series: %w", err)
	}
	return &model.YieldPayload{Symbol: *raw.Symbol, Series: series}, nil
}

func convertPoints(pts []rawPoint) ([]model.SeriesPoint, error) {
	series := make([]model.SeriesPoint, 0, len(pts))
	for i, p := range pts {
		if p.Date == nil {
			return nil, fmt.Errorf("entry %d: missing date", i)
		}
		if p.Value == nil {
			return nil, fmt.Errorf("entry %d: missing value", i)
		}
		series = append(series, model.SeriesPoint{Date: *p.Date, Value: *p.Value})
	}
	return series, nil
}
