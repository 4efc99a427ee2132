// Package discord wraps the Discord REST API for notification delivery.
// Implements the notify.ChannelNotifier interface.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// Client posts notifications to one Discord channel. Discord does not render
// HTML, so the client declares the plain format and receives stripped text.
type Client struct {
	session   *discordgo.Session
	channelID string
}

// NewClient creates a Discord notifier bound to a channel. Messages go out
// over REST only; no gateway connection is opened.
func NewClient(botToken, channelID string) (*Client, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	return &Client{session: session, channelID: channelID}, nil
}

// Name returns the notifier identifier.
func (c *Client) Name() string {
	return "discord"
}

// Formatting returns the markup flavor this channel renders.
func (c *Client) Formatting() entity.Format {
	return entity.FormatPlain
}

// Send posts one notification message.
func (c *Client) Send(ctx context.Context, text string) error {
	if _, err := c.session.ChannelMessageSend(c.channelID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("sending discord message: %w", err)
	}
	return nil
}
