package entity

// Runtime-mutable configuration keys exposed through the settings flow.
const (
	SettingRegistryWebhookURL = "registry.webhook_url"
	SettingAllowedUsers       = "access.allowed_users"
	SettingTelegramChatID     = "channels.telegram.chat_id"
	SettingDiscordChannelID   = "channels.discord.channel_id"
	SettingSlackChannelID     = "channels.slack.channel_id"
)

// KnownSettingKeys lists every key the settings flow may read or write,
// in menu display order.
func KnownSettingKeys() []string {
	return []string{
		SettingRegistryWebhookURL,
		SettingAllowedUsers,
		SettingTelegramChatID,
		SettingDiscordChannelID,
		SettingSlackChannelID,
	}
}

// IsKnownSettingKey reports whether key is part of the settings surface.
func IsKnownSettingKey(key string) bool {
	for _, k := range KnownSettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// IsMultiValueSetting reports whether the key holds a comma-separated list.
// Multi-value inputs are split on commas and trimmed before being applied.
func IsMultiValueSetting(key string) bool {
	return key == SettingAllowedUsers
}
