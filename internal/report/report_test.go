package report

import (
	"strings"
	"testing"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

func TestTableContainsAllFields(t *testing.T) {
	sig := &models.TradeSignal{
		Side:         models.OrderSideBuy,
		Symbol:       "EURUSD",
		Entry:        models.PendingEntry(1.105),
		PositionSize: 0.01,
		Multiplier:   0.0001,
		StopLoss:     1.1,
		TakeProfits:  []float64{1.11, 1.115},
	}
	rep := &models.RiskReport{
		StopLossPips:    50,
		TakeProfitPips:  []int{50, 100},
		PotentialLoss:   10,
		ProfitPerTarget: []float64{2.5, 5},
		TotalProfit:     7.5,
		RiskPercent:     1,
		Balance:         1234.56,
	}

	out := Table(sig, rep)

	for _, want := range []string{
		"Trade Information",
		"BUY", "EURUSD",
		"Entry", "1.105",
		"Position Size", "0.01",
		"Risk", "1 %",
		"Multiplier", "0.0001",
		"Stop Loss", "50 pips",
		"TP 1", "TP 2", "100 pips",
		"Current Balance", "$ 1,234.56",
		"TP 1 Profit", "$ 2.50",
		"TP 2 Profit", "$ 5.00",
		"Total Profit", "$ 7.50",
		"Potential Loss", "$ 10.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
