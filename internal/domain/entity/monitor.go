package entity

import "strings"

// MonitorType identifies what a registry monitor watches.
type MonitorType string

const (
	MonitorUserTweets    MonitorType = "user_tweets"
	MonitorUserFollowing MonitorType = "user_following"
	MonitorUserProfile   MonitorType = "user_profile"
)

// Valid returns true for the monitor types this service can create.
func (t MonitorType) Valid() bool {
	switch t {
	case MonitorUserTweets, MonitorUserFollowing, MonitorUserProfile:
		return true
	}
	return false
}

// Monitor is an ephemeral copy of an upstream registry record. The registry
// owns the data; these values never outlive a single operation.
type Monitor struct {
	ID         string
	Type       MonitorType
	Handle     string // parameters.user_screen_name
	WebhookURL string // parameters.webhook_url, optional
	CreatedAt  string // upstream timestamp, reported verbatim
}

// MonitorParams are the creation parameters for a new monitor.
type MonitorParams struct {
	Handle     string
	WebhookURL string // optional per-monitor override of the global webhook
}

// MatchesHandle reports whether the monitor targets the given handle.
// Handle matching is case-insensitive everywhere in this service.
func (m *Monitor) MatchesHandle(handle string) bool {
	return m.Handle != "" && strings.EqualFold(m.Handle, handle)
}

// ProfileURL returns the public profile link for the monitored handle.
func (m *Monitor) ProfileURL() string {
	return "https://twitter.com/" + m.Handle
}
