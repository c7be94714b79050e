// Package calculator provides pure indicator functions over ordered,
// dated series. No I/O, no store dependency.
package calculator

import (
	"errors"

	"MarketAnalyzer/internal/model"
)

// RollingAverage computes the trailing simple moving average over the
// given window using a running sum. Each output point keeps the date of
// the window's last input point. Returns an empty series when fewer than
// window points are available.
func RollingAverage(series []model.SeriesPoint, window int) ([]model.SeriesPoint, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(series) < window {
		return []model.SeriesPoint{}, nil
	}

	result := make([]model.SeriesPoint, 0, len(series)-window+1)
	sum := 0.0
	for i, p := range series {
		sum += p.Value
		if i >= window {
			sum -= series[i-window].Value
		}
		if i >= window-1 {
			result = append(result, model.SeriesPoint{
				Date:  p.Date,
				Value: sum / float64(window),
			})
		}
	}
	return result, nil
}
