package calculator

import "MarketAnalyzer/internal/model"

// DefaultLookback is the trailing window used for trend slope when the
// caller does not specify one.
const DefaultLookback = 5

// SlopeLast returns the ordinary least-squares slope of value against the
// integer index 0..n-1 over the last n points, where n is the lookback
// clamped to [2, len(series)]. With fewer than 2 points, or a degenerate
// denominator, the slope is 0.
func SlopeLast(series []model.SeriesPoint, lookback int) float64 {
	n := lookback
	if n < 2 {
		n = 2
	}
	if n > len(series) {
		n = len(series)
	}
	if n < 2 {
		return 0
	}

	start := len(series) - n
	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		x := float64(i)
		y := series[start+i].Value
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / denom
}

// Momentum classifies the trend over the lookback window by the exact
// sign of the slope. No epsilon band: only a slope of exactly 0 is flat.
func Momentum(series []model.SeriesPoint, lookback int) model.Momentum {
	s := SlopeLast(series, lookback)
	switch {
	case s > 0:
		return model.MomentumUp
	case s < 0:
		return model.MomentumDown
	default:
		return model.MomentumFlat
	}
}
