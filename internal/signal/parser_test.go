package signal

import (
	"testing"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/errors"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

func TestParseMarketBuy(t *testing.T) {
	sig, err := Parse("BUY EURUSD\nEntry NOW\nLOTS 0.01\nMultiplier 0.0001\nSL 1.10000\nTP 1.11000")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if sig.Side != models.OrderSideBuy {
		t.Errorf("Side = %s, want BUY", sig.Side)
	}
	if sig.Symbol != "EURUSD" {
		t.Errorf("Symbol = %s, want EURUSD", sig.Symbol)
	}
	if sig.Entry.Resolved() {
		t.Error("Entry should be an unresolved market entry")
	}
	if sig.PositionSize != 0.01 {
		t.Errorf("PositionSize = %v, want 0.01", sig.PositionSize)
	}
	if sig.Multiplier != 0.0001 {
		t.Errorf("Multiplier = %v, want 0.0001", sig.Multiplier)
	}
	if sig.StopLoss != 1.10000 {
		t.Errorf("StopLoss = %v, want 1.10000", sig.StopLoss)
	}
	if len(sig.TakeProfits) != 1 || sig.TakeProfits[0] != 1.11000 {
		t.Errorf("TakeProfits = %v, want [1.11]", sig.TakeProfits)
	}
}

func TestParsePendingSellWithThreeTargets(t *testing.T) {
	sig, err := Parse("Sell limit GBPJPY\nEntry 185.500\nLOTS 0.5\nMultiplier 0.01\nSL 186.200\nTP 184.900\nTP 184.100\nTP 183.000")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if sig.Side != models.OrderSideSell {
		t.Errorf("Side = %s, want SELL", sig.Side)
	}
	if sig.Symbol != "GBPJPY" {
		t.Errorf("Symbol = %s, want GBPJPY", sig.Symbol)
	}
	if !sig.Entry.Resolved() || sig.Entry.Price() != 185.5 {
		t.Errorf("Entry = %+v, want resolved 185.5", sig.Entry)
	}
	if len(sig.TakeProfits) != 3 {
		t.Fatalf("len(TakeProfits) = %d, want 3", len(sig.TakeProfits))
	}
	// TP order is significant: TP1, TP2, TP3 as given.
	want := []float64{184.9, 184.1, 183.0}
	for i, tp := range sig.TakeProfits {
		if tp != want[i] {
			t.Errorf("TakeProfits[%d] = %v, want %v", i, tp, want[i])
		}
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{
			name: "no order type on first line",
			text: "EURUSD long\nEntry NOW\nLOTS 0.01\nMultiplier 0.0001\nSL 1.1\nTP 1.2",
			want: errors.ErrInvalidOrderType,
		},
		{
			name: "empty input",
			text: "",
			want: errors.ErrInvalidOrderType,
		},
		{
			name: "missing stop loss line",
			text: "BUY EURUSD\nEntry NOW\nLOTS 0.01\nMultiplier 0.0001",
			want: errors.ErrIncompleteSignal,
		},
		{
			name: "missing take profit line",
			text: "BUY EURUSD\nEntry NOW\nLOTS 0.01\nMultiplier 0.0001\nSL 1.1",
			want: errors.ErrIncompleteSignal,
		},
		{
			name: "non-numeric entry",
			text: "BUY EURUSD\nEntry soon\nLOTS 0.01\nMultiplier 0.0001\nSL 1.1\nTP 1.2",
			want: errors.ErrMalformedNumber,
		},
		{
			name: "lowercase now is not market execution",
			text: "BUY EURUSD\nEntry now\nLOTS 0.01\nMultiplier 0.0001\nSL 1.1\nTP 1.2",
			want: errors.ErrMalformedNumber,
		},
		{
			name: "non-numeric take profit",
			text: "BUY EURUSD\nEntry NOW\nLOTS 0.01\nMultiplier 0.0001\nSL 1.1\nTP 1.2\nTP open",
			want: errors.ErrMalformedNumber,
		},
		{
			name: "zero position size",
			text: "BUY EURUSD\nEntry NOW\nLOTS 0\nMultiplier 0.0001\nSL 1.1\nTP 1.2",
			want: errors.ErrMalformedNumber,
		},
		{
			name: "negative multiplier",
			text: "BUY EURUSD\nEntry NOW\nLOTS 0.01\nMultiplier -0.0001\nSL 1.1\nTP 1.2",
			want: errors.ErrMalformedNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := Parse(tt.text)
			if sig != nil {
				t.Error("failed parse must not return a partial signal")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseSellCheckedBeforeBuy(t *testing.T) {
	// "sell" wins when both substrings appear on the first line.
	sig, err := Parse("sell the buy zone EURUSD\nEntry NOW\nLOTS 0.01\nMultiplier 0.0001\nSL 1.1\nTP 1.2")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sig.Side != models.OrderSideSell {
		t.Errorf("Side = %s, want SELL", sig.Side)
	}
}

func TestParseUsesLastTokenAndStripsTrailingWhitespace(t *testing.T) {
	sig, err := Parse("Buy now gold xauusd  \nEntry at market price 1950.55\t\nLOTS use 0.10 \nMultiplier 0.01\nSL 1940.00\nTP 1960.00")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sig.Symbol != "XAUUSD" {
		t.Errorf("Symbol = %s, want XAUUSD", sig.Symbol)
	}
	if !sig.Entry.Resolved() || sig.Entry.Price() != 1950.55 {
		t.Errorf("Entry = %+v, want resolved 1950.55", sig.Entry)
	}
	if sig.PositionSize != 0.10 {
		t.Errorf("PositionSize = %v, want 0.10", sig.PositionSize)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	text := "SELL USDJPY\nEntry 147.25\nLOTS 0.02\nMultiplier 0.01\nSL 148\nTP 146.5\nTP 146"
	sig, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := Format(sig); got != text {
		t.Errorf("Format = %q, want %q", got, text)
	}
}
