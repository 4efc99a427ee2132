package config

import (
	"fmt"
	"strconv"
	"time"
)

// reloadableKeys defines the whitelist of configuration keys that can be
// changed at runtime, through the settings flow or a config file reload.
var reloadableKeys = map[string]bool{
	"logging.level":               true,
	"logging.format":              true,
	"registry.webhook_url":        true,
	"access.allowed_users":        true,
	"channels.telegram.chat_id":   true,
	"channels.discord.channel_id": true,
	"channels.slack.channel_id":   true,
}

// staticKeys defines configuration keys that require application restart.
var staticKeys = map[string]string{
	"server.port":         "HTTP listener restart required",
	"storage.type":        "Storage backend initialization required",
	"storage.sqlite.path": "Database connection recreation required",
	"storage.mysql":       "Database connection pool recreation required",
	"telegram.bot_token":  "Bot session restart required",
	"discord.bot_token":   "Bot session restart required",
	"slack.bot_token":     "Bot session restart required",
	"registry.api_key":    "Registry client recreation required",
}

// IsReloadable returns true if the given config key can be hot-reloaded.
func IsReloadable(key string) bool {
	return reloadableKeys[key]
}

// getRestartReason returns the reason why a static config key requires restart.
func getRestartReason(key string) string {
	if reason, ok := staticKeys[key]; ok {
		return reason
	}
	return "unknown configuration requires restart"
}

// ValidateLogLevel checks if the log level is valid.
func ValidateLogLevel(level string) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
	return nil
}

// ValidateLogFormat checks if the log format is valid.
func ValidateLogFormat(format string) error {
	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[format] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", format)
	}
	return nil
}

// ValidateNonEmpty checks if a string is non-empty.
func ValidateNonEmpty(value string, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateDuration checks if a duration is greater than zero.
func ValidateDuration(duration time.Duration, fieldName string) error {
	if duration <= 0 {
		return fmt.Errorf("%s must be greater than 0", fieldName)
	}
	return nil
}

// ValidatePort checks if a port number is valid.
func ValidatePort(port int, fieldName string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", fieldName, port)
	}
	return nil
}

// ValidateStorageType checks if the storage type is valid.
func ValidateStorageType(storageType string) error {
	validTypes := map[string]bool{
		"memory": true,
		"sqlite": true,
		"mysql":  true,
	}
	if !validTypes[storageType] {
		return fmt.Errorf("invalid storage type: %s (must be memory, sqlite, or mysql)", storageType)
	}
	return nil
}

// ValidateChatID checks that a Telegram chat ID parses as an integer.
func ValidateChatID(chatID string, fieldName string) error {
	if _, err := strconv.ParseInt(chatID, 10, 64); err != nil {
		return fmt.Errorf("%s must be a numeric chat ID, got %q", fieldName, chatID)
	}
	return nil
}

// Validate performs comprehensive validation on the configuration.
// Returns an error if any validation fails.
func (c *Config) Validate() error {
	var errors []string

	// Server validation
	if err := ValidatePort(c.Server.Port, "server.port"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.ReadTimeout, "server.read_timeout"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.WriteTimeout, "server.write_timeout"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.RequestTimeout, "server.request_timeout"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.ShutdownTimeout, "server.shutdown_timeout"); err != nil {
		errors = append(errors, err.Error())
	}

	// Logical constraint: RequestTimeout should be less than WriteTimeout
	if c.Server.RequestTimeout >= c.Server.WriteTimeout {
		errors = append(errors, "server.request_timeout must be less than server.write_timeout")
	}

	// Registry validation
	if err := ValidateNonEmpty(c.Registry.APIKey, "registry.api_key"); err != nil {
		errors = append(errors, err.Error())
	}

	// Storage validation
	if err := ValidateStorageType(c.Storage.Type); err != nil {
		errors = append(errors, err.Error())
	}

	// SQLite-specific validation
	if c.Storage.Type == "sqlite" {
		if err := ValidateNonEmpty(c.Storage.SQLite.Path, "storage.sqlite.path"); err != nil {
			errors = append(errors, err.Error())
		}
	}

	// MySQL-specific validation
	if c.Storage.Type == "mysql" {
		if err := ValidateNonEmpty(c.Storage.MySQL.Host, "storage.mysql.host"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidatePort(c.Storage.MySQL.Port, "storage.mysql.port"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidateNonEmpty(c.Storage.MySQL.Database, "storage.mysql.database"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidateNonEmpty(c.Storage.MySQL.Username, "storage.mysql.username"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidateNonEmpty(c.Storage.MySQL.Password, "storage.mysql.password"); err != nil {
			errors = append(errors, err.Error())
		}

		// Connection pool validation
		if c.Storage.MySQL.Pool.MaxOpenConns < 1 {
			errors = append(errors, "storage.mysql.pool.max_open_conns must be at least 1")
		}
		if c.Storage.MySQL.Pool.MaxIdleConns < 0 {
			errors = append(errors, "storage.mysql.pool.max_idle_conns cannot be negative")
		}
		if c.Storage.MySQL.Pool.MaxIdleConns > c.Storage.MySQL.Pool.MaxOpenConns {
			errors = append(errors, "storage.mysql.pool.max_idle_conns cannot exceed max_open_conns")
		}
	}

	// Telegram validation
	if c.IsTelegramEnabled() {
		if err := ValidateNonEmpty(c.Telegram.BotToken, "telegram.bot_token"); err != nil {
			errors = append(errors, err.Error())
		}
		if c.Telegram.ChatID != "" {
			if err := ValidateChatID(c.Telegram.ChatID, "telegram.chat_id"); err != nil {
				errors = append(errors, err.Error())
			}
		}
	}

	// Discord validation
	if c.IsDiscordEnabled() {
		if err := ValidateNonEmpty(c.Discord.BotToken, "discord.bot_token"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidateNonEmpty(c.Discord.ChannelID, "discord.channel_id"); err != nil {
			errors = append(errors, err.Error())
		}
	}

	// Slack validation
	if c.IsSlackEnabled() {
		if err := ValidateNonEmpty(c.Slack.BotToken, "slack.bot_token"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidateNonEmpty(c.Slack.ChannelID, "slack.channel_id"); err != nil {
			errors = append(errors, err.Error())
		}
	}

	// Notify validation
	if c.Notify.BreakerMaxFailures < 1 {
		errors = append(errors, "notify.breaker_max_failures must be at least 1")
	}
	if err := ValidateDuration(c.Notify.BreakerCooldown, "notify.breaker_cooldown"); err != nil {
		errors = append(errors, err.Error())
	}

	// Logging validation
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateLogFormat(c.Logging.Format); err != nil {
		errors = append(errors, err.Error())
	}

	// Return all validation errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", joinErrors(errors))
	}

	return nil
}

// joinErrors joins multiple error messages with newlines and bullets.
func joinErrors(errors []string) string {
	if len(errors) == 0 {
		return ""
	}
	result := errors[0]
	for i := 1; i < len(errors); i++ {
		result += "\n  - " + errors[i]
	}
	return result
}
