// Package slack wraps the Slack API for notification delivery.
// Implements the notify.ChannelNotifier interface.
package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// Client posts notifications to one Slack channel. Slack mrkdwn is not HTML,
// so the client declares the plain format and receives stripped text.
type Client struct {
	api       *slack.Client
	channelID string
}

// NewClient creates a Slack notifier bound to a channel.
func NewClient(botToken, channelID string, apiURL ...string) *Client {
	var api *slack.Client
	if len(apiURL) > 0 && apiURL[0] != "" {
		// Custom API URL for testing with mock services.
		api = slack.New(botToken, slack.OptionAPIURL(apiURL[0]))
	} else {
		api = slack.New(botToken)
	}
	return &Client{api: api, channelID: channelID}
}

// Name returns the notifier identifier.
func (c *Client) Name() string {
	return "slack"
}

// Formatting returns the markup flavor this channel renders.
func (c *Client) Formatting() entity.Format {
	return entity.FormatPlain
}

// Send posts one notification message.
func (c *Client) Send(ctx context.Context, text string) error {
	options := []slack.MsgOption{
		slack.MsgOptionText(text, false),
	}
	if _, _, err := c.api.PostMessageContext(ctx, c.channelID, options...); err != nil {
		return fmt.Errorf("posting slack message: %w", err)
	}
	return nil
}
