package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/repository"
)

// ErrRequiresRestart is returned when a config file change touches a key
// that cannot be applied to a running process.
var ErrRequiresRestart = errors.New("configuration change requires restart")

// ChangeHandler is invoked after a runtime setting change is applied.
type ChangeHandler func(key, value string)

const persistTimeout = 5 * time.Second

// Manager exposes the runtime-mutable configuration surface. Reads combine
// three layers: operator overrides (persisted through the setting
// repository), then the loaded config file, in that precedence. Writes go
// through Set, which validates, persists, and fans out to change handlers.
//
// Manager also watches the config file and hot-applies changes to
// reloadable keys; a change to any static key is rejected with
// ErrRequiresRestart and the running config is kept.
type Manager struct {
	mu        sync.RWMutex
	cfg       *Config
	path      string
	repo      repository.SettingRepository
	logger    logger.Logger
	overrides map[string]string
	handlers  []ChangeHandler
	viper     *viper.Viper
}

// NewManager creates a settings manager over the loaded config.
func NewManager(cfg *Config, path string, repo repository.SettingRepository, log logger.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		path:      path,
		repo:      repo,
		logger:    log,
		overrides: make(map[string]string),
	}
}

// LoadOverrides restores persisted setting overrides. Unknown keys are
// skipped with a warning so an old database never blocks startup.
func (m *Manager) LoadOverrides(ctx context.Context) error {
	stored, err := m.repo.All(ctx)
	if err != nil {
		return fmt.Errorf("loading setting overrides: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range stored {
		if !entity.IsKnownSettingKey(key) {
			m.logger.Warn("skipping unknown persisted setting", "key", key)
			continue
		}
		m.overrides[key] = value
	}
	return nil
}

// Get returns the current value for a known setting key.
func (m *Manager) Get(key string) (string, bool) {
	if !entity.IsKnownSettingKey(key) {
		return "", false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if value, ok := m.overrides[key]; ok {
		return value, true
	}
	return m.baseValue(key), true
}

// Set validates, persists, and applies a new value for a known setting key.
func (m *Manager) Set(key, value string) error {
	if !entity.IsKnownSettingKey(key) {
		return fmt.Errorf("unknown setting key: %s", key)
	}
	if err := validateSetting(key, value); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.repo.Put(ctx, key, value); err != nil {
		return fmt.Errorf("persisting setting %s: %w", key, err)
	}

	m.mu.Lock()
	m.overrides[key] = value
	handlers := make([]ChangeHandler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()

	m.logger.Info("setting updated", "key", key)
	for _, h := range handlers {
		h(key, value)
	}
	return nil
}

// Subscribe registers a handler for setting and config changes.
func (m *Manager) Subscribe(h ChangeHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, h)
}

// Config returns the currently loaded config.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Watch starts watching the config file for changes. Reload failures are
// logged, never fatal; the running config stays in effect.
func (m *Manager) Watch() error {
	if m.path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(m.path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("watching config file: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		m.logger.Info("config file changed", "file", e.Name)
		if err := m.Reload(); err != nil {
			m.logger.Error("config reload rejected", "error", err)
		}
	})
	v.WatchConfig()

	m.mu.Lock()
	m.viper = v
	m.mu.Unlock()
	return nil
}

// Reload re-reads the config file and applies reloadable changes. Any change
// to a static key rejects the whole reload with ErrRequiresRestart.
func (m *Manager) Reload() error {
	newCfg, err := Load(m.path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	changed := changedKeys(m.cfg, newCfg)
	for _, key := range changed {
		if !IsReloadable(key) {
			m.mu.Unlock()
			return fmt.Errorf("%w: %s (%s)", ErrRequiresRestart, key, getRestartReason(key))
		}
	}

	m.cfg = newCfg
	handlers := make([]ChangeHandler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()

	for _, key := range changed {
		m.logger.Info("config key reloaded", "key", key)
		value := configValue(newCfg, key)
		for _, h := range handlers {
			h(key, value)
		}
	}
	return nil
}

// configValue maps a tracked key to its value in cfg.
func configValue(cfg *Config, key string) string {
	switch key {
	case "logging.level":
		return cfg.Logging.Level
	case "logging.format":
		return cfg.Logging.Format
	case entity.SettingRegistryWebhookURL:
		return cfg.Registry.WebhookURL
	case entity.SettingAllowedUsers:
		return strings.Join(cfg.Access.AllowedUsers, ",")
	case entity.SettingTelegramChatID:
		return cfg.Telegram.ChatID
	case entity.SettingDiscordChannelID:
		return cfg.Discord.ChannelID
	case entity.SettingSlackChannelID:
		return cfg.Slack.ChannelID
	default:
		return ""
	}
}

// baseValue maps a setting key to its config file value.
// Callers hold at least a read lock.
func (m *Manager) baseValue(key string) string {
	return configValue(m.cfg, key)
}

// validateSetting applies per-key value validation.
func validateSetting(key, value string) error {
	switch key {
	case entity.SettingTelegramChatID:
		if value == "" {
			return nil
		}
		return ValidateChatID(value, key)
	case entity.SettingRegistryWebhookURL:
		if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%s must be an http(s) URL", key)
		}
		return nil
	default:
		return nil
	}
}

// changedKeys diffs two configs over the keys the manager tracks.
func changedKeys(prev, next *Config) []string {
	var changed []string
	add := func(key string, differs bool) {
		if differs {
			changed = append(changed, key)
		}
	}

	add("logging.level", prev.Logging.Level != next.Logging.Level)
	add("logging.format", prev.Logging.Format != next.Logging.Format)
	add("registry.webhook_url", prev.Registry.WebhookURL != next.Registry.WebhookURL)
	add("registry.api_key", prev.Registry.APIKey != next.Registry.APIKey)
	add("access.allowed_users",
		strings.Join(prev.Access.AllowedUsers, ",") != strings.Join(next.Access.AllowedUsers, ","))
	add(entity.SettingTelegramChatID, prev.Telegram.ChatID != next.Telegram.ChatID)
	add(entity.SettingDiscordChannelID, prev.Discord.ChannelID != next.Discord.ChannelID)
	add(entity.SettingSlackChannelID, prev.Slack.ChannelID != next.Slack.ChannelID)
	add("telegram.bot_token", prev.Telegram.BotToken != next.Telegram.BotToken)
	add("discord.bot_token", prev.Discord.BotToken != next.Discord.BotToken)
	add("slack.bot_token", prev.Slack.BotToken != next.Slack.BotToken)
	add("server.port", prev.Server.Port != next.Server.Port)
	add("storage.type", prev.Storage.Type != next.Storage.Type)
	add("storage.sqlite.path", prev.Storage.SQLite.Path != next.Storage.SQLite.Path)
	add("storage.mysql", prev.Storage.MySQL != next.Storage.MySQL)

	return changed
}
