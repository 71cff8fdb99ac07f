package models

// RiskReport holds the risk/reward metrics derived from a trade signal
// and the current account balance.
type RiskReport struct {
	StopLossPips    int
	TakeProfitPips  []int
	PotentialLoss   float64
	ProfitPerTarget []float64
	TotalProfit     float64
	RiskPercent     int
	Balance         float64
}
