package app

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/discord"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/resilience"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/slack"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/socialdata"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/telegram"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/usecase/notify"
)

// Clients holds all external integration clients
type Clients struct {
	Notifiers   []notify.ChannelNotifier
	Registry    *socialdata.Client
	TelegramBot *tgbotapi.BotAPI
}

func (app *Application) initializeClients() error {
	app.clients = &Clients{
		Notifiers: make([]notify.ChannelNotifier, 0),
	}

	logger := &slogAdapter{logger: app.logger}

	app.clients.Registry = socialdata.NewClient(
		app.config.Registry.APIKey,
		socialdata.WithBaseURL(app.config.Registry.BaseURL),
		socialdata.WithLogger(logger),
	)

	if app.config.IsTelegramEnabled() {
		bot, err := tgbotapi.NewBotAPI(app.config.Telegram.BotToken)
		if err != nil {
			return fmt.Errorf("telegram bot init: %w", err)
		}
		app.clients.TelegramBot = bot

		// The notification channel needs a target chat; the conversation
		// pump works without one.
		chatIDValue, _ := app.manager.Get(entity.SettingTelegramChatID)
		if chatIDValue != "" {
			chatID, err := strconv.ParseInt(chatIDValue, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid telegram chat id %q: %w", chatIDValue, err)
			}
			app.addNotifier(telegram.NewClient(bot, chatID))
		}

		app.logger.Get().Info("Telegram integration enabled",
			"notifications", chatIDValue != "",
		)
	}

	if app.config.IsDiscordEnabled() {
		channelID, _ := app.manager.Get(entity.SettingDiscordChannelID)
		client, err := discord.NewClient(app.config.Discord.BotToken, channelID)
		if err != nil {
			return fmt.Errorf("discord client init: %w", err)
		}
		app.addNotifier(client)

		app.logger.Get().Info("Discord integration enabled",
			"channel", channelID,
		)
	}

	if app.config.IsSlackEnabled() {
		channelID, _ := app.manager.Get(entity.SettingSlackChannelID)
		app.addNotifier(slack.NewClient(app.config.Slack.BotToken, channelID))

		app.logger.Get().Info("Slack integration enabled",
			"channel", channelID,
		)
	}

	return nil
}

// addNotifier wraps a destination with a circuit breaker so a failing
// platform cannot stall fan-out to the others.
func (app *Application) addNotifier(n notify.ChannelNotifier) {
	guarded := resilience.Guard(
		n,
		app.config.Notify.BreakerMaxFailures,
		app.config.Notify.BreakerCooldown,
	)
	app.clients.Notifiers = append(app.clients.Notifiers, guarded)
}
