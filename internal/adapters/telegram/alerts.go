package telegram

import (
	"ImaniConsole/internal/core/ports"
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// alertClient implements the AlertSender port over the Telegram Bot API.
// The console only pushes plain one-line messages to a fixed ops chat.
type alertClient struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    zerolog.Logger
}

var _ ports.AlertSender = (*alertClient)(nil) // Ensure compliance

// NewAlertClient creates a new ops-alert sender.
func NewAlertClient(api *tgbotapi.BotAPI, chatID int64, baseLogger *zerolog.Logger) ports.AlertSender {
	return &alertClient{
		api:    api,
		chatID: chatID,
		log:    baseLogger.With().Str("component", "tg_alerts").Logger(),
	}
}

// Send pushes a plain-text message to the ops chat.
func (c *alertClient) Send(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		c.log.Error().Err(err).Int64("chat_id", c.chatID).Msg("Failed to send ops alert")
		return err
	}
	return nil
}
