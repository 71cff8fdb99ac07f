// Package cli provides the command-line interface for the signal copier.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/config"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "fx-copier",
		Short: "FX Signal Copier - Telegram-driven MetaTrader signal copier",
		Long: `FX Signal Copier turns free-text trading signals sent over Telegram into
orders on a MetaTrader account reached through a MetaApi-style gateway.

It parses line-positional signals, computes the risk-to-reward breakdown
for the configured account, and drives the deploy/connect/synchronize
handshake before placing one market order per take-profit target.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newParseCmd(app))
	rootCmd.AddCommand(newCalculateCmd(app))

	return rootCmd
}
