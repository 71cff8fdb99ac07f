// Package report renders trade information for the operator.
package report

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/models"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/pkg/utils"
)

// Table renders the trade information table: the echoed trade fields
// followed by the risk/reward metrics.
func Table(sig *models.TradeSignal, rep *models.RiskReport) string {
	var buf bytes.Buffer
	buf.WriteString("Trade Information\n")

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Key", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)

	table.Append([]string{string(sig.Side), sig.Symbol})
	table.Append([]string{"Entry", utils.FormatDecimal(sig.Entry.Price())})
	table.Append([]string{"Position Size", utils.FormatDecimal(sig.PositionSize)})
	table.Append([]string{"Risk", utils.FormatPercent(rep.RiskPercent)})
	table.Append([]string{"Multiplier", utils.FormatDecimal(sig.Multiplier)})
	table.Append([]string{"Stop Loss", utils.FormatPips(rep.StopLossPips)})
	for i, pips := range rep.TakeProfitPips {
		table.Append([]string{fmt.Sprintf("TP %d", i+1), utils.FormatPips(pips)})
	}
	table.Append([]string{"Current Balance", utils.FormatMoney(rep.Balance)})
	for i, profit := range rep.ProfitPerTarget {
		table.Append([]string{fmt.Sprintf("TP %d Profit", i+1), utils.FormatMoney(profit)})
	}
	table.Append([]string{"Total Profit", utils.FormatMoney(rep.TotalProfit)})
	table.Append([]string{"Potential Loss", utils.FormatMoney(rep.PotentialLoss)})

	table.Render()
	return buf.String()
}
