package calculator

import "MarketAnalyzer/internal/model"

// RiskMomentum is signal A: risky when either of the two independently
// smoothed series shows downward momentum over the lookback window.
func RiskMomentum(a, b []model.SeriesPoint, lookback int) bool {
	return Momentum(a, lookback) == model.MomentumDown ||
		Momentum(b, lookback) == model.MomentumDown
}

// RiskBelowThreshold is signal B in its fixed-threshold variant: risky
// when the latest value sits at or below the threshold. An empty series
// counts as a latest value of 0 and is therefore risky for any positive
// threshold, matching the dashboard's behavior before data arrives.
func RiskBelowThreshold(series []model.SeriesPoint, threshold float64) bool {
	latest := 0.0
	if len(series) > 0 {
		latest = series[len(series)-1].Value
	}
	return latest <= threshold
}

// RiskBelowAverage is signal B in its self-referential variant: risky
// when the latest raw value is below its own trailing rolling average.
// With too few points for the window the signal is not risky.
func RiskBelowAverage(series []model.SeriesPoint, window int) bool {
	sma, err := RollingAverage(series, window)
	if err != nil || len(sma) == 0 {
		return false
	}
	return series[len(series)-1].Value < sma[len(sma)-1].Value
}
