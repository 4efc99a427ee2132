package socialdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	domainerrors "github.com/qj0r9j0vc2/monitor-bridge/internal/domain/errors"
)

func TestCreateMonitor(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/monitors/user-tweets", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":42,"monitor_type":"user_tweets","created_at":"2024-01-01T00:00:00Z","parameters":{"user_screen_name":"alice"}}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	monitor, err := client.CreateMonitor(context.Background(), entity.MonitorUserTweets, entity.MonitorParams{Handle: "alice"})
	require.NoError(t, err)

	assert.Equal(t, "42", monitor.ID)
	assert.Equal(t, entity.MonitorUserTweets, monitor.Type)
	assert.Equal(t, "alice", monitor.Handle)
	assert.Equal(t, map[string]string{"user_screen_name": "alice"}, gotBody)
}

func TestCreateMonitorWithWebhookURL(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data":{"id":"5"}}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	params := entity.MonitorParams{Handle: "alice", WebhookURL: "https://bridge.example.com/webhook"}
	_, err := client.CreateMonitor(context.Background(), entity.MonitorUserTweets, params)
	require.NoError(t, err)

	assert.Equal(t, "https://bridge.example.com/webhook", gotBody["webhook_url"])
}

func TestCreateMonitorEndpoints(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":{"id":"1"}}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	tests := []struct {
		monitorType entity.MonitorType
		wantPath    string
	}{
		{entity.MonitorUserTweets, "/monitors/user-tweets"},
		{entity.MonitorUserFollowing, "/monitors/user-following"},
		{entity.MonitorUserProfile, "/monitors/user-profile"},
	}
	for _, tt := range tests {
		_, err := client.CreateMonitor(context.Background(), tt.monitorType, entity.MonitorParams{Handle: "bob"})
		require.NoError(t, err)
		assert.Equal(t, tt.wantPath, gotPath)
	}

	_, err := client.CreateMonitor(context.Background(), entity.MonitorType("bogus"), entity.MonitorParams{Handle: "bob"})
	assert.Error(t, err)
}

func TestCreateMonitorDuplicate(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"conflict status", http.StatusConflict, `{"message":"monitor conflict"}`},
		{"message match", http.StatusUnprocessableEntity, `{"message":"Monitor for this user already exists"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("k", WithBaseURL(server.URL))

			_, err := client.CreateMonitor(context.Background(), entity.MonitorUserTweets, entity.MonitorParams{Handle: "alice"})
			assert.True(t, domainerrors.IsDuplicate(err), "expected duplicate classification, got %v", err)
		})
	}
}

func TestGetMonitorNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"monitor not found"}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	_, err := client.GetMonitor(context.Background(), "999")
	assert.True(t, domainerrors.IsNotFound(err), "expected not-found classification, got %v", err)
}

func TestGetMonitor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/monitors/42", r.URL.Path)
		w.Write([]byte(`{"data":{"id":"42","monitor_type":"user_profile","created_at":"2024-02-02","parameters":{"user_screen_name":"Bob"}}}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	// The registry wraps single-monitor reads in a data envelope, just like
	// creation responses.
	monitor, err := client.GetMonitor(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", monitor.ID)
	assert.Equal(t, entity.MonitorUserProfile, monitor.Type)
	assert.Equal(t, "Bob", monitor.Handle)
	assert.Equal(t, "2024-02-02", monitor.CreatedAt)
}

func TestListMonitors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/monitors", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		w.Write([]byte(`{"data":[{"id":1,"monitor_type":"user_tweets","parameters":{"user_screen_name":"alice"}},{"id":2,"monitor_type":"user_following","parameters":{"user_screen_name":"bob"}}]}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	monitors, err := client.ListMonitors(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, monitors, 2)
	assert.Equal(t, "1", monitors[0].ID)
	assert.Equal(t, "bob", monitors[1].Handle)
}

func TestDeleteMonitor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/monitors/7", r.URL.Path)
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))
	require.NoError(t, client.DeleteMonitor(context.Background(), "7"))
}

func TestUpdateMonitorWebhook(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/monitors/42", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))
	require.NoError(t, client.UpdateMonitorWebhook(context.Background(), "42", "https://bridge.example.com/webhook"))
	assert.Equal(t, "https://bridge.example.com/webhook", gotBody["webhook_url"])
}

func TestSetGlobalWebhook(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/webhook", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))
	require.NoError(t, client.SetGlobalWebhook(context.Background(), "https://bridge.example.com/webhook"))
	assert.Equal(t, "https://bridge.example.com/webhook", gotBody["url"])
}

func TestUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"internal error"}`))
	}))
	defer server.Close()

	client := NewClient("k", WithBaseURL(server.URL))

	_, err := client.ListMonitors(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, domainerrors.IsDuplicate(err))
	assert.False(t, domainerrors.IsNotFound(err))

	var upstream *domainerrors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Equal(t, "internal error", upstream.Message)
}
