package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

func TestFormatTweet(t *testing.T) {
	f := NewFormatter()

	event := &entity.WebhookEvent{
		Kind:      entity.EventNewTweet,
		MonitorID: "123",
		Tweet: &entity.TweetData{
			Text:       "hello world",
			IDStr:      "999",
			ScreenName: "alice",
			CreatedAt:  "Mon Jan 01 00:00:00 +0000 2024",
			Mentions:   []string{"bob", "carol"},
			Hashtags:   []string{"golang"},
		},
	}

	msg := f.Format(event)
	require.NotNil(t, msg)

	assert.Contains(t, msg.RichText, "<b>New Tweet from @alice</b>")
	assert.Contains(t, msg.RichText, "hello world")
	assert.Contains(t, msg.RichText, "https://twitter.com/alice/status/999")
	assert.Contains(t, msg.RichText, "@bob, @carol")
	assert.Contains(t, msg.RichText, "#golang")
	assert.Contains(t, msg.RichText, "<b>Monitor ID:</b> 123")

	// Plain rendering is the rich one minus tags.
	assert.NotContains(t, msg.PlainText, "<b>")
	assert.NotContains(t, msg.PlainText, "<a href=")
	assert.Contains(t, msg.PlainText, "New Tweet from @alice")
}

func TestFormatTweetDefaults(t *testing.T) {
	f := NewFormatter()

	event := &entity.WebhookEvent{
		Kind:      entity.EventNewTweet,
		MonitorID: "123",
		Tweet:     &entity.TweetData{},
	}

	msg := f.Format(event)
	assert.Contains(t, msg.RichText, "No tweet text available.")
	assert.Contains(t, msg.RichText, "@unknown")
	assert.NotContains(t, msg.RichText, "Mentions:")
	assert.NotContains(t, msg.RichText, "Hashtags:")
}

func TestFormatFollow(t *testing.T) {
	f := NewFormatter()

	event := &entity.WebhookEvent{
		Kind:      entity.EventNewFollow,
		MonitorID: "5",
		Follow: &entity.FollowData{
			Name:           "Bob",
			ScreenName:     "bob",
			FollowersCount: 42,
			FriendsCount:   7,
		},
	}

	msg := f.Format(event)
	assert.Contains(t, msg.RichText, "<b>New Following</b>")
	assert.Contains(t, msg.RichText, "<b>Name:</b> Bob")
	assert.Contains(t, msg.RichText, `<a href="https://twitter.com/bob">@bob</a>`)
	assert.Contains(t, msg.RichText, "No description")
	assert.Contains(t, msg.RichText, "<b>Followers:</b> 42")
	assert.Contains(t, msg.RichText, "<b>Following:</b> 7")
	assert.NotContains(t, msg.RichText, "<b>Link:</b>")
}

func TestFormatProfile(t *testing.T) {
	f := NewFormatter()

	event := &entity.WebhookEvent{
		Kind:      entity.EventProfileUpdate,
		MonitorID: "7",
		Profile: &entity.ProfileData{
			Name: "Carol",
			URL:  "https://example.com",
		},
	}

	msg := f.Format(event)
	assert.Contains(t, msg.RichText, "<b>Profile Update</b>")
	assert.Contains(t, msg.RichText, "No bio")
	assert.Contains(t, msg.RichText, "No location")
	assert.Contains(t, msg.RichText, "<b>Website:</b> https://example.com")
}

func TestFormatUnknownKind(t *testing.T) {
	f := NewFormatter()

	event := &entity.WebhookEvent{
		Kind:      entity.EventKind("mystery_event"),
		MonitorID: "9",
	}

	msg := f.Format(event)
	assert.Contains(t, msg.RichText, `Event "mystery_event" received.`)
	assert.Contains(t, msg.RichText, "<b>Monitor ID:</b> 9")
}

func TestFormatAlwaysAppendsMonitorID(t *testing.T) {
	f := NewFormatter()

	events := []*entity.WebhookEvent{
		{Kind: entity.EventNewTweet, MonitorID: "a", Tweet: &entity.TweetData{}},
		{Kind: entity.EventNewFollow, MonitorID: "b", Follow: &entity.FollowData{}},
		{Kind: entity.EventProfileUpdate, MonitorID: "c", Profile: &entity.ProfileData{}},
		{Kind: entity.EventKind("x"), MonitorID: "d"},
	}

	for _, ev := range events {
		msg := f.Format(ev)
		assert.True(t, strings.HasSuffix(msg.RichText, "<b>Monitor ID:</b> "+ev.MonitorID),
			"message for kind %q should end with its monitor ID", ev.Kind)
	}
}
