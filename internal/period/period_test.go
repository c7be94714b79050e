package period

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestResolveAt_Units(t *testing.T) {
	tests := []struct {
		period string
		start  string
	}{
		{"11mo", "2024-07-15"},
		{"2y", "2023-06-15"},
		{"30d", "2025-05-16"},
		{"1y", "2024-06-15"},
		{"6mo", "2024-12-15"},
		{"90d", "2025-03-17"},
	}
	for _, tt := range tests {
		start, end := ResolveAt(tt.period, testNow)
		if start != tt.start {
			t.Errorf("%q: expected start %s, got %s", tt.period, tt.start, start)
		}
		if end != "2025-06-15" {
			t.Errorf("%q: expected end 2025-06-15, got %s", tt.period, end)
		}
	}
}

func TestResolveAt_DefaultCounts(t *testing.T) {
	// Bare suffixes fall back to per-unit defaults: 11mo, 1y, 30d.
	tests := []struct {
		period string
		start  string
	}{
		{"mo", "2024-07-15"},
		{"y", "2024-06-15"},
		{"d", "2025-05-16"},
		{"0mo", "2024-07-15"},
		{"0d", "2025-05-16"},
	}
	for _, tt := range tests {
		start, _ := ResolveAt(tt.period, testNow)
		if start != tt.start {
			t.Errorf("%q: expected start %s, got %s", tt.period, tt.start, start)
		}
	}
}

func TestResolveAt_Leniency(t *testing.T) {
	// Malformed input never fails; it degrades to the 11-month window.
	wantStart, wantEnd := ResolveAt("11mo", testNow)
	for _, p := range []string{"garbage", "", "   ", "11", "xx mo zz", "1w"} {
		start, end := ResolveAt(p, testNow)
		if start != wantStart || end != wantEnd {
			t.Errorf("%q: expected default window [%s, %s], got [%s, %s]",
				p, wantStart, wantEnd, start, end)
		}
	}
}

func TestResolveAt_CaseAndWhitespace(t *testing.T) {
	start, _ := ResolveAt("  2Y ", testNow)
	if start != "2023-06-15" {
		t.Errorf("expected 2023-06-15, got %s", start)
	}
}
