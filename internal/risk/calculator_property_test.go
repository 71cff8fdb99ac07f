package risk

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

// Property: for N targets, the report carries N pip distances and N
// per-target profits, their sum equals the total within rounding
// tolerance, and loss/percent are never negative.
func TestProperty_ProfitSumAndShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("per-target profits sum to the total", prop.ForAll(
		func(entry, size, slDist float64, mult float64, targets int, buy bool) bool {
			side := models.OrderSideSell
			sign := -1.0
			if buy {
				side = models.OrderSideBuy
				sign = 1.0
			}

			sig := &models.TradeSignal{
				Side:         side,
				Symbol:       "EURUSD",
				Entry:        models.PendingEntry(entry),
				PositionSize: size,
				Multiplier:   mult,
				StopLoss:     entry - sign*slDist,
			}
			for i := 1; i <= targets; i++ {
				sig.TakeProfits = append(sig.TakeProfits, entry+sign*slDist*float64(i))
			}

			rep, err := Evaluate(sig, 10000)
			if err != nil {
				t.Logf("Evaluate failed: %v", err)
				return false
			}

			if len(rep.TakeProfitPips) != targets || len(rep.ProfitPerTarget) != targets {
				return false
			}

			sum := 0.0
			for _, p := range rep.ProfitPerTarget {
				if p < 0 {
					return false
				}
				sum += p
			}
			if !almostEqual(sum, rep.TotalProfit) {
				t.Logf("sum=%v total=%v", sum, rep.TotalProfit)
				return false
			}

			return rep.PotentialLoss >= 0 && rep.RiskPercent >= 0 && rep.StopLossPips >= 0
		},
		gen.Float64Range(0.5, 200),
		gen.Float64Range(0.01, 10),
		gen.Float64Range(0.0005, 0.4),
		gen.OneConstOf(0.0001, 0.001, 0.01),
		gen.IntRange(1, 3),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
