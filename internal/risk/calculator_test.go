package risk

import (
	"math"
	"testing"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/errors"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

func TestEvaluateSingleTarget(t *testing.T) {
	sig := &models.TradeSignal{
		Side:         models.OrderSideBuy,
		Symbol:       "EURUSD",
		Entry:        models.PendingEntry(1.10500),
		PositionSize: 0.01,
		Multiplier:   0.0001,
		StopLoss:     1.10000,
		TakeProfits:  []float64{1.11000},
	}

	rep, err := Evaluate(sig, 10000)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if rep.StopLossPips != 50 {
		t.Errorf("StopLossPips = %d, want 50", rep.StopLossPips)
	}
	if len(rep.TakeProfitPips) != 1 || rep.TakeProfitPips[0] != 50 {
		t.Errorf("TakeProfitPips = %v, want [50]", rep.TakeProfitPips)
	}
	if rep.PotentialLoss != 5.00 {
		t.Errorf("PotentialLoss = %v, want 5.00", rep.PotentialLoss)
	}
	if rep.RiskPercent != 0 {
		t.Errorf("RiskPercent = %d, want 0", rep.RiskPercent)
	}
	if rep.TotalProfit != 5.00 {
		t.Errorf("TotalProfit = %v, want 5.00", rep.TotalProfit)
	}
	if rep.Balance != 10000 {
		t.Errorf("Balance = %v, want 10000", rep.Balance)
	}
}

func TestEvaluateMultipleTargets(t *testing.T) {
	// Sell at 147.00, SL 148.00 (100 pips), TPs at 100/200/300 pips.
	sig := &models.TradeSignal{
		Side:         models.OrderSideSell,
		Symbol:       "USDJPY",
		Entry:        models.PendingEntry(147.00),
		PositionSize: 0.3,
		Multiplier:   0.01,
		StopLoss:     148.00,
		TakeProfits:  []float64{146.00, 145.00, 144.00},
	}

	rep, err := Evaluate(sig, 5000)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if rep.StopLossPips != 100 {
		t.Errorf("StopLossPips = %d, want 100", rep.StopLossPips)
	}
	wantPips := []int{100, 200, 300}
	for i, p := range rep.TakeProfitPips {
		if p != wantPips[i] {
			t.Errorf("TakeProfitPips[%d] = %d, want %d", i, p, wantPips[i])
		}
	}

	// Loss carries one full-size stop exposure per leg: 0.3*10*100*3.
	if rep.PotentialLoss != 900.00 {
		t.Errorf("PotentialLoss = %v, want 900.00", rep.PotentialLoss)
	}
	// 900 * 100 / 5000 = 18.
	if rep.RiskPercent != 18 {
		t.Errorf("RiskPercent = %d, want 18", rep.RiskPercent)
	}

	// Per-target profit splits the size across legs: 0.3*10/3 * pips.
	wantProfits := []float64{100.00, 200.00, 300.00}
	for i, p := range rep.ProfitPerTarget {
		if p != wantProfits[i] {
			t.Errorf("ProfitPerTarget[%d] = %v, want %v", i, p, wantProfits[i])
		}
	}
	if rep.TotalProfit != 600.00 {
		t.Errorf("TotalProfit = %v, want 600.00", rep.TotalProfit)
	}
}

func TestEvaluateUnresolvedEntry(t *testing.T) {
	sig := &models.TradeSignal{
		Side:         models.OrderSideBuy,
		Symbol:       "EURUSD",
		Entry:        models.MarketEntry(),
		PositionSize: 0.01,
		Multiplier:   0.0001,
		StopLoss:     1.1,
		TakeProfits:  []float64{1.2},
	}

	if _, err := Evaluate(sig, 10000); !errors.Is(err, errors.ErrUnresolvedEntry) {
		t.Errorf("err = %v, want ErrUnresolvedEntry", err)
	}
}

func TestEvaluateNonPositiveBalance(t *testing.T) {
	sig := &models.TradeSignal{
		Side:         models.OrderSideBuy,
		Symbol:       "EURUSD",
		Entry:        models.PendingEntry(1.105),
		PositionSize: 0.01,
		Multiplier:   0.0001,
		StopLoss:     1.1,
		TakeProfits:  []float64{1.11},
	}

	for _, balance := range []float64{0, -100} {
		if _, err := Evaluate(sig, balance); !errors.Is(err, errors.ErrZeroBalance) {
			t.Errorf("Evaluate(balance=%v) err = %v, want ErrZeroBalance", balance, err)
		}
	}
}

func TestEvaluatePipDistancesAreNonNegative(t *testing.T) {
	// Buy with the stop above entry still yields non-negative pips.
	sig := &models.TradeSignal{
		Side:         models.OrderSideBuy,
		Symbol:       "EURUSD",
		Entry:        models.PendingEntry(1.10000),
		PositionSize: 0.01,
		Multiplier:   0.0001,
		StopLoss:     1.10500,
		TakeProfits:  []float64{1.09500},
	}

	rep, err := Evaluate(sig, 10000)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if rep.StopLossPips != 50 || rep.TakeProfitPips[0] != 50 {
		t.Errorf("pips = %d/%d, want 50/50", rep.StopLossPips, rep.TakeProfitPips[0])
	}
	if rep.PotentialLoss < 0 || rep.TotalProfit < 0 {
		t.Errorf("monetary values must be non-negative: loss=%v profit=%v", rep.PotentialLoss, rep.TotalProfit)
	}
}

func TestEvaluateRoundsPipsToNearest(t *testing.T) {
	sig := &models.TradeSignal{
		Side:         models.OrderSideBuy,
		Symbol:       "EURUSD",
		Entry:        models.PendingEntry(1.10000),
		PositionSize: 0.01,
		Multiplier:   0.0001,
		StopLoss:     1.09996, // 0.4 pips
		TakeProfits:  []float64{1.10026}, // 2.6 pips
	}

	rep, err := Evaluate(sig, 10000)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if rep.StopLossPips != 0 {
		t.Errorf("StopLossPips = %d, want 0", rep.StopLossPips)
	}
	if rep.TakeProfitPips[0] != 3 {
		t.Errorf("TakeProfitPips[0] = %d, want 3", rep.TakeProfitPips[0])
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
