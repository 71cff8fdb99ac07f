package bot

import (
	"context"
	"html"

	"github.com/mymmrac/telego"
	"github.com/rs/zerolog"
)

// TelegramBot adapts Telegram updates to the conversation controller.
type TelegramBot struct {
	bot    *telego.Bot
	ctrl   *Controller
	logger zerolog.Logger
}

// NewTelegramBot creates the Telegram transport for a controller.
func NewTelegramBot(token string, ctrl *Controller, logger zerolog.Logger) (*TelegramBot, error) {
	b, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, err
	}
	return &TelegramBot{
		bot:    b,
		ctrl:   ctrl,
		logger: logger.With().Str("component", "telegram").Logger(),
	}, nil
}

// Run consumes updates via long polling until the context is cancelled.
func (t *TelegramBot) Run(ctx context.Context) error {
	updates, err := t.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return err
	}

	t.logger.Info().Msg("Listening for Telegram updates")
	for update := range updates {
		msg := update.Message
		if msg == nil || msg.Text == "" {
			continue
		}

		operator := msg.Chat.Username
		t.logger.Debug().Str("operator", operator).Msg("Incoming message")

		for _, reply := range t.ctrl.Handle(ctx, operator, msg.Text) {
			params := &telego.SendMessageParams{
				ChatID: telego.ChatID{ID: msg.Chat.ID},
				Text:   reply.Text,
			}
			if reply.Pre {
				params.Text = "<pre>" + html.EscapeString(reply.Text) + "</pre>"
				params.ParseMode = telego.ModeHTML
			}
			if _, err := t.bot.SendMessage(ctx, params); err != nil {
				t.logger.Error().Err(err).Str("operator", operator).Msg("Failed to send reply")
			}
		}
	}
	return nil
}
