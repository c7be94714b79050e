package calculator

import "testing"

func TestRiskMomentum(t *testing.T) {
	up := points(1, 2, 3, 4, 5)
	down := points(5, 4, 3, 2, 1)
	flat := points(3, 3, 3, 3, 3)

	if RiskMomentum(up, up, 5) {
		t.Error("two rising series must not be risky")
	}
	if !RiskMomentum(up, down, 5) {
		t.Error("one falling series must be risky")
	}
	if !RiskMomentum(down, down, 5) {
		t.Error("two falling series must be risky")
	}
	if RiskMomentum(flat, up, 5) {
		t.Error("flat momentum is not risky")
	}
}

func TestRiskBelowThreshold(t *testing.T) {
	series := points(1.5, 1.4, 1.30)
	if !RiskBelowThreshold(series, 1.32) {
		t.Error("latest 1.30 <= 1.32 must be risky")
	}
	if RiskBelowThreshold(points(1.5, 1.4, 1.33), 1.32) {
		t.Error("latest 1.33 > 1.32 must not be risky")
	}
	// The boundary itself counts as risky.
	if !RiskBelowThreshold(points(1.32), 1.32) {
		t.Error("latest == threshold must be risky")
	}
	// No data reads as 0, which is at or below any positive threshold.
	if !RiskBelowThreshold(nil, 1.32) {
		t.Error("empty series must be risky")
	}
}

func TestRiskBelowAverage(t *testing.T) {
	// Falling tail: latest value below its own 3-point average.
	if !RiskBelowAverage(points(5, 5, 5, 5, 2), 3) {
		t.Error("latest below trailing average must be risky")
	}
	if RiskBelowAverage(points(1, 1, 1, 1, 5), 3) {
		t.Error("latest above trailing average must not be risky")
	}
	if RiskBelowAverage(points(1, 2), 3) {
		t.Error("too few points for the window must not be risky")
	}
}
