// Package dto maps external wire formats to domain entities.
package dto

import (
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// WebhookPayload is the raw SocialData webhook body. The data map is
// kind-specific and loosely shaped; every sub-field is optional and read
// defensively in ToEntity.
type WebhookPayload struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
	Meta  WebhookMeta    `json:"meta"`
}

// WebhookMeta carries event routing metadata.
type WebhookMeta struct {
	MonitorID string `json:"monitor_id"`
}

// ToEntity converts the payload into a typed WebhookEvent. Missing or
// malformed fields simply yield empty values; defaults are applied at
// formatting time so a best-effort notification always goes out.
func (p *WebhookPayload) ToEntity() *entity.WebhookEvent {
	event := &entity.WebhookEvent{
		Kind:      entity.EventKind(p.Event),
		MonitorID: p.Meta.MonitorID,
	}

	switch event.Kind {
	case entity.EventNewTweet:
		event.Tweet = p.tweetData()
	case entity.EventNewFollow:
		event.Follow = p.followData()
	case entity.EventProfileUpdate:
		event.Profile = p.profileData()
	}

	return event
}

func (p *WebhookPayload) tweetData() *entity.TweetData {
	t := &entity.TweetData{
		Text:      getString(p.Data, "full_text"),
		IDStr:     getString(p.Data, "id_str"),
		CreatedAt: getString(p.Data, "tweet_created_at"),
	}
	if t.Text == "" {
		t.Text = getString(p.Data, "text")
	}
	if t.CreatedAt == "" {
		t.CreatedAt = getString(p.Data, "created_at")
	}
	t.ScreenName = getString(getMap(p.Data, "user"), "screen_name")

	entities := getMap(p.Data, "entities")
	for _, m := range getSlice(entities, "user_mentions") {
		if name := getString(asMap(m), "screen_name"); name != "" {
			t.Mentions = append(t.Mentions, name)
		}
	}
	for _, h := range getSlice(entities, "hashtags") {
		if text := getString(asMap(h), "text"); text != "" {
			t.Hashtags = append(t.Hashtags, text)
		}
	}

	return t
}

// followData reads the followed user record; for new_following events the
// data object is the user itself.
func (p *WebhookPayload) followData() *entity.FollowData {
	return &entity.FollowData{
		Name:           getString(p.Data, "name"),
		ScreenName:     getString(p.Data, "screen_name"),
		Description:    getString(p.Data, "description"),
		URL:            getString(p.Data, "url"),
		FollowersCount: getInt(p.Data, "followers_count"),
		FriendsCount:   getInt(p.Data, "friends_count"),
	}
}

func (p *WebhookPayload) profileData() *entity.ProfileData {
	return &entity.ProfileData{
		Name:        getString(p.Data, "name"),
		Description: getString(p.Data, "description"),
		Location:    getString(p.Data, "location"),
		URL:         getString(p.Data, "url"),
	}
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func getInt(m map[string]any, key string) int64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64: // encoding/json decodes numbers as float64
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	return nil
}

func getSlice(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	if s, ok := m[key].([]any); ok {
		return s
	}
	return nil
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
