package notify

import (
	"fmt"
	"strings"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// Formatter maps one inbound webhook event to its notification message.
// Formatting never fails: unknown kinds and missing fields degrade to
// placeholder text, because a best-effort notification beats silence.
type Formatter struct{}

// NewFormatter creates an event formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders the event as a single rich-markup message; the plain
// rendering is derived from it by tag stripping.
func (f *Formatter) Format(event *entity.WebhookEvent) *entity.NotificationMessage {
	var b strings.Builder

	switch {
	case event.Tweet != nil:
		f.writeTweet(&b, event.Tweet)
	case event.Follow != nil:
		f.writeFollow(&b, event.Follow)
	case event.Profile != nil:
		f.writeProfile(&b, event.Profile)
	default:
		fmt.Fprintf(&b, "ℹ️ %s\n", entity.Bold(fmt.Sprintf("Event %q received.", string(event.Kind))))
	}

	// Monitor ID suffix for traceability, on every message.
	fmt.Fprintf(&b, "\n%s %s", entity.Bold("Monitor ID:"), event.MonitorID)

	return entity.NewNotificationMessage(b.String())
}

func (f *Formatter) writeTweet(b *strings.Builder, t *entity.TweetData) {
	text := t.Text
	if text == "" {
		text = "No tweet text available."
	}
	handle := t.ScreenName
	if handle == "" {
		handle = "unknown"
	}
	tweetURL := fmt.Sprintf("https://twitter.com/%s/status/%s", handle, t.IDStr)

	fmt.Fprintf(b, "🐦 %s\n", entity.Bold("New Tweet from @"+handle))
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Tweet:"), text)
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Link:"), entity.Link(tweetURL, tweetURL))
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Created:"), t.CreatedAt)

	if len(t.Mentions) > 0 {
		mentions := make([]string, len(t.Mentions))
		for i, m := range t.Mentions {
			mentions[i] = "@" + m
		}
		fmt.Fprintf(b, "%s %s\n", entity.Bold("Mentions:"), strings.Join(mentions, ", "))
	}
	if len(t.Hashtags) > 0 {
		hashtags := make([]string, len(t.Hashtags))
		for i, h := range t.Hashtags {
			hashtags[i] = "#" + h
		}
		fmt.Fprintf(b, "%s %s\n", entity.Bold("Hashtags:"), strings.Join(hashtags, ", "))
	}
}

func (f *Formatter) writeFollow(b *strings.Builder, u *entity.FollowData) {
	description := u.Description
	if description == "" {
		description = "No description"
	}

	fmt.Fprintf(b, "🤝 %s\n", entity.Bold("New Following"))
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Name:"), u.Name)
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Twitter:"),
		entity.Link("@"+u.ScreenName, "https://twitter.com/"+u.ScreenName))
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Description:"), description)
	if u.URL != "" {
		fmt.Fprintf(b, "%s %s\n", entity.Bold("Link:"), u.URL)
	}
	fmt.Fprintf(b, "%s %d\n", entity.Bold("Followers:"), u.FollowersCount)
	fmt.Fprintf(b, "%s %d\n", entity.Bold("Following:"), u.FriendsCount)
}

func (f *Formatter) writeProfile(b *strings.Builder, p *entity.ProfileData) {
	bio := p.Description
	if bio == "" {
		bio = "No bio"
	}
	location := p.Location
	if location == "" {
		location = "No location"
	}

	fmt.Fprintf(b, "🔄 %s\n", entity.Bold("Profile Update"))
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Name:"), p.Name)
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Bio:"), bio)
	fmt.Fprintf(b, "%s %s\n", entity.Bold("Location:"), location)
	if p.URL != "" {
		fmt.Fprintf(b, "%s %s\n", entity.Bold("Website:"), p.URL)
	}
}
