// Package risk derives risk/reward metrics from a parsed trade signal.
package risk

import (
	"math"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/errors"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

// pipValue is the monetary value of one pip per 1.0 lot of volume for the
// supported symbols.
const pipValue = 10

// Evaluate computes the risk report for a signal against the given
// account balance. The signal's entry must already be resolved to a
// concrete price.
func Evaluate(sig *models.TradeSignal, balance float64) (*models.RiskReport, error) {
	if !sig.Entry.Resolved() {
		return nil, errors.ErrUnresolvedEntry
	}
	if balance <= 0 {
		return nil, errors.ErrZeroBalance
	}

	entry := sig.Entry.Price()
	targets := len(sig.TakeProfits)

	report := &models.RiskReport{
		StopLossPips: pips(sig.StopLoss, entry, sig.Multiplier),
		Balance:      balance,
	}

	for _, tp := range sig.TakeProfits {
		report.TakeProfitPips = append(report.TakeProfitPips, pips(tp, entry, sig.Multiplier))
	}

	// One full-size stop-loss exposure per target leg.
	report.PotentialLoss = round2(sig.PositionSize * pipValue * float64(report.StopLossPips) * float64(targets))
	report.RiskPercent = int(math.Round(report.PotentialLoss * 100 / balance))

	// Profit projection splits the position evenly across targets.
	for _, tpPips := range report.TakeProfitPips {
		profit := round2(sig.PositionSize * pipValue / float64(targets) * float64(tpPips))
		report.ProfitPerTarget = append(report.ProfitPerTarget, profit)
		report.TotalProfit += profit
	}
	report.TotalProfit = round2(report.TotalProfit)

	return report, nil
}

// pips converts a price distance into a whole pip count.
func pips(price, entry, multiplier float64) int {
	return int(math.Round(math.Abs(price-entry) / multiplier))
}

// round2 rounds a monetary value to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
