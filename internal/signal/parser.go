// Package signal parses free-text trading signals into trade records.
package signal

import (
	"strconv"
	"strings"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/errors"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
)

// MarketKeyword is the literal entry token requesting market execution.
const MarketKeyword = "NOW"

// Signal line layout. Parsing is strictly line-positional: each value is
// the last whitespace-separated token of its line.
const (
	lineSide = iota
	lineEntry
	lineLots
	lineMultiplier
	lineStopLoss
	lineFirstTP

	minLines = 6
	maxTPs   = 3
)

// Parse converts a raw signal into a TradeSignal. Failure is
// all-or-nothing: no partial signal is ever returned.
func Parse(text string) (*models.TradeSignal, error) {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}

	sig := &models.TradeSignal{}

	head := strings.ToLower(lines[lineSide])
	switch {
	case strings.Contains(head, "sell"):
		sig.Side = models.OrderSideSell
	case strings.Contains(head, "buy"):
		sig.Side = models.OrderSideBuy
	default:
		return nil, errors.NewParseError(lineSide, "order type", errors.ErrInvalidOrderType)
	}

	sig.Symbol = strings.ToUpper(lastToken(lines[lineSide]))
	if sig.Symbol == "" {
		return nil, errors.NewParseError(lineSide, "symbol", errors.ErrIncompleteSignal)
	}

	if len(lines) < minLines {
		return nil, errors.NewParseError(len(lines), "", errors.ErrIncompleteSignal)
	}

	entry := lastToken(lines[lineEntry])
	if entry == MarketKeyword {
		sig.Entry = models.MarketEntry()
	} else {
		price, err := parseDecimal(lines, lineEntry, "entry")
		if err != nil {
			return nil, err
		}
		sig.Entry = models.PendingEntry(price)
	}

	var err error
	if sig.PositionSize, err = parseDecimal(lines, lineLots, "position size"); err != nil {
		return nil, err
	}
	if sig.PositionSize <= 0 {
		return nil, errors.NewParseError(lineLots, "position size", errors.ErrMalformedNumber)
	}

	if sig.Multiplier, err = parseDecimal(lines, lineMultiplier, "multiplier"); err != nil {
		return nil, err
	}
	if sig.Multiplier <= 0 {
		return nil, errors.NewParseError(lineMultiplier, "multiplier", errors.ErrMalformedNumber)
	}

	if sig.StopLoss, err = parseDecimal(lines, lineStopLoss, "stop loss"); err != nil {
		return nil, err
	}

	for i := 0; i < maxTPs && lineFirstTP+i < len(lines); i++ {
		tp, err := parseDecimal(lines, lineFirstTP+i, "take profit")
		if err != nil {
			return nil, err
		}
		sig.TakeProfits = append(sig.TakeProfits, tp)
	}

	return sig, nil
}

// Format re-serializes a signal into the canonical text layout consumed
// by Parse.
func Format(sig *models.TradeSignal) string {
	var b strings.Builder
	b.WriteString(string(sig.Side))
	b.WriteByte(' ')
	b.WriteString(sig.Symbol)
	b.WriteString("\nEntry ")
	if sig.Entry.Resolved() {
		b.WriteString(formatDecimal(sig.Entry.Price()))
	} else {
		b.WriteString(MarketKeyword)
	}
	b.WriteString("\nLOTS ")
	b.WriteString(formatDecimal(sig.PositionSize))
	b.WriteString("\nMultiplier ")
	b.WriteString(formatDecimal(sig.Multiplier))
	b.WriteString("\nSL ")
	b.WriteString(formatDecimal(sig.StopLoss))
	for _, tp := range sig.TakeProfits {
		b.WriteString("\nTP ")
		b.WriteString(formatDecimal(tp))
	}
	return b.String()
}

// FormatHelp returns the expected signal format shown to the operator
// after a parse failure.
func FormatHelp() string {
	return "BUY/SELL SYMBOL\nEntry \nLOTS \nMultiplier \nSL \nTP \n(TP) \n(TP)"
}

// ExampleSignal returns a complete market-execution example signal.
func ExampleSignal() string {
	return "BUY GBPUSD\nEntry NOW\nLOTS 0.01\nMultiplier 1\nSL 1.14336\nTP 1.28930\nTP 1.29845\nTP 1.29999"
}

func lastToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func parseDecimal(lines []string, line int, field string) (float64, error) {
	token := lastToken(lines[line])
	if token == "" {
		return 0, errors.NewParseError(line, field, errors.ErrIncompleteSignal)
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, errors.NewParseError(line, field, errors.ErrMalformedNumber)
	}
	return v, nil
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
