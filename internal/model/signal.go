package model

// Momentum classifies the sign of the trend slope over a lookback window.
type Momentum string

const (
	MomentumUp   Momentum = "up"
	MomentumDown Momentum = "down"
	MomentumFlat Momentum = "flat"
)

// RiskReport is the output of the risk-signal evaluation.
// Signal A is risky when either smoothed price series trends down;
// signal B is risky when the latest dividend yield sits at or below
// the configured threshold.
type RiskReport struct {
	Period         string   `json:"period"`
	RiskA          bool     `json:"risk_a"`
	RiskB          bool     `json:"risk_b"`
	SPYMomentum    Momentum `json:"spy_momentum"`
	TIPMomentum    Momentum `json:"tip_momentum"`
	LatestYield    float64  `json:"latest_yield"`
	YieldThreshold float64  `json:"yield_threshold"`
}
