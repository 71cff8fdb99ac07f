package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/bot"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/gateway"
	"github.com/Froousty/MT4-MT5-Forex-Signal-Copier-Telegram-Bot/internal/trading"
)

func newRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the Telegram bot against the live trading gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.ValidateForRun(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := gateway.NewClient(gateway.ClientConfig{
				Token:        app.Config.Gateway.Token,
				BaseURL:      app.Config.Gateway.BaseURL,
				PollInterval: app.Config.Gateway.PollInterval,
			})

			orchestrator := trading.NewOrchestrator(client, trading.Config{
				AccountID:    app.Config.Gateway.AccountID,
				StageTimeout: app.Config.Gateway.StageTimeout,
			}, app.Logger)

			controller := bot.NewController(
				bot.NewSessionStore(),
				orchestrator,
				app.Config.Telegram.AllowedUser,
				app.Logger,
			)

			tg, err := bot.NewTelegramBot(app.Config.Telegram.BotToken, controller, app.Logger)
			if err != nil {
				return err
			}

			app.Logger.Info().Str("account_id", app.Config.Gateway.AccountID).Msg("Starting signal copier")
			return tg.Run(ctx)
		},
	}
}
