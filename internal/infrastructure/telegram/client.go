// Package telegram wraps the Telegram Bot API for notification delivery.
// Implements the notify.ChannelNotifier interface.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// Client posts notifications to one Telegram chat. Telegram renders HTML
// markup, so the client declares the rich format and sends text unchanged.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a Telegram notifier bound to a chat.
// The bot is shared with the conversation transport, so it is injected
// rather than constructed here.
func NewClient(bot *tgbotapi.BotAPI, chatID int64) *Client {
	return &Client{bot: bot, chatID: chatID}
}

// Name returns the notifier identifier.
func (c *Client) Name() string {
	return "telegram"
}

// Formatting returns the markup flavor this channel renders.
func (c *Client) Formatting() entity.Format {
	return entity.FormatRich
}

// Send posts one notification message.
func (c *Client) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
