package calculator

import (
	"fmt"
	"math"
	"testing"

	"MarketAnalyzer/internal/model"
)

func points(values ...float64) []model.SeriesPoint {
	pts := make([]model.SeriesPoint, len(values))
	for i, v := range values {
		pts[i] = model.SeriesPoint{Date: fmt.Sprintf("2025-01-%02d", i+1), Value: v}
	}
	return pts
}

func TestRollingAverage_Basic(t *testing.T) {
	out, err := RollingAverage(points(1, 2, 3, 4, 5), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, 3, 4}
	if len(out) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(out))
	}
	for i, w := range want {
		if math.Abs(out[i].Value-w) > 1e-9 {
			t.Errorf("point %d: expected %.1f, got %.6f", i, w, out[i].Value)
		}
	}
	// Each output point carries the date of its window's last input.
	if out[0].Date != "2025-01-03" || out[2].Date != "2025-01-05" {
		t.Errorf("unexpected dates: %s, %s", out[0].Date, out[2].Date)
	}
}

func TestRollingAverage_TooFewPoints(t *testing.T) {
	out, err := RollingAverage(points(1, 2, 3, 4, 5), 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d points", len(out))
	}
}

func TestRollingAverage_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -1} {
		if _, err := RollingAverage(points(1, 2, 3), w); err == nil {
			t.Errorf("window %d: expected error", w)
		}
	}
}

func TestRollingAverage_MatchesDirectMean(t *testing.T) {
	series := points(101.3, 99.8, 102.7, 98.4, 103.9, 100.1, 97.6, 104.2, 99.9, 101.0)
	const window = 4
	out, err := RollingAverage(series, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range out {
		sum := 0.0
		for j := i; j < i+window; j++ {
			sum += series[j].Value
		}
		if math.Abs(p.Value-sum/window) > 1e-9 {
			t.Errorf("point %d: running sum %.12f differs from direct mean %.12f",
				i, p.Value, sum/window)
		}
	}
}
