package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/gateway"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/report"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/signal"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/trading"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/pkg/utils"
)

func newParseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a signal from a file or stdin and print the trade record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSignal(args)
			if err != nil {
				return err
			}

			sig, err := signal.Parse(text)
			if err != nil {
				return err
			}

			entry := signal.MarketKeyword
			if sig.Entry.Resolved() {
				entry = utils.FormatDecimal(sig.Entry.Price())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Side:          %s\n", sig.Side)
			fmt.Fprintf(out, "Symbol:        %s\n", sig.Symbol)
			fmt.Fprintf(out, "Entry:         %s\n", entry)
			fmt.Fprintf(out, "Position Size: %s\n", utils.FormatDecimal(sig.PositionSize))
			fmt.Fprintf(out, "Multiplier:    %s\n", utils.FormatDecimal(sig.Multiplier))
			fmt.Fprintf(out, "Stop Loss:     %s\n", utils.FormatDecimal(sig.StopLoss))
			for i, tp := range sig.TakeProfits {
				fmt.Fprintf(out, "TP %d:          %s\n", i+1, utils.FormatDecimal(tp))
			}
			return nil
		},
	}
}

func newCalculateCmd(app *App) *cobra.Command {
	var balance, bid, ask float64

	cmd := &cobra.Command{
		Use:   "calculate [file]",
		Short: "Compute the risk table for a signal against a simulated account",
		Long: `Parse a signal and run it through the order pipeline against a simulated
gateway, printing the trade information table. No order is placed. Market
entries resolve against the --bid/--ask quote.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSignal(args)
			if err != nil {
				return err
			}

			sig, err := signal.Parse(text)
			if err != nil {
				return err
			}

			sim := gateway.NewSimSession(gateway.SimConfig{Balance: balance})
			sim.SetPrice(sig.Symbol, bid, ask)

			orchestrator := trading.NewOrchestrator(sim, trading.Config{AccountID: "sim"}, app.Logger)
			res, err := orchestrator.Execute(context.Background(), sig, false)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Table(sig, res.Report))
			return nil
		},
	}

	cmd.Flags().Float64Var(&balance, "balance", 10000, "simulated account balance")
	cmd.Flags().Float64Var(&bid, "bid", 0, "simulated bid quote for market entries")
	cmd.Flags().Float64Var(&ask, "ask", 0, "simulated ask quote for market entries")

	return cmd
}

// readSignal reads signal text from the named file, or stdin when no
// file is given.
func readSignal(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}
