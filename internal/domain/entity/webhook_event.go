package entity

// EventKind identifies the type of a SocialData webhook event.
type EventKind string

const (
	EventNewTweet      EventKind = "new_tweet"
	EventNewFollow     EventKind = "new_following"
	EventProfileUpdate EventKind = "profile_update"
)

// WebhookEvent is one inbound event from the upstream monitor registry.
// Exactly one of the payload fields is set for known kinds; all are nil for
// unknown kinds, in which case Kind carries the raw event string.
type WebhookEvent struct {
	Kind      EventKind
	MonitorID string

	Tweet   *TweetData
	Follow  *FollowData
	Profile *ProfileData
}

// IsKnown returns true if the event kind is one this service understands.
func (e *WebhookEvent) IsKnown() bool {
	switch e.Kind {
	case EventNewTweet, EventNewFollow, EventProfileUpdate:
		return true
	}
	return false
}

// TweetData carries the fields of a new_tweet event. Optional upstream
// fields are left empty here; the formatter applies display defaults.
type TweetData struct {
	Text       string // full_text, falling back to text
	IDStr      string
	ScreenName string // user.screen_name
	CreatedAt  string // tweet_created_at, falling back to created_at
	Mentions   []string
	Hashtags   []string
}

// FollowData carries the followed user record of a new_following event.
type FollowData struct {
	Name           string
	ScreenName     string
	Description    string
	URL            string
	FollowersCount int64
	FriendsCount   int64
}

// ProfileData carries the fields of a profile_update event.
type ProfileData struct {
	Name        string
	Description string
	Location    string
	URL         string
}
