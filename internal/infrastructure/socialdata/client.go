// Package socialdata wraps the SocialData monitor registry REST API with
// domain-specific operations. Implements the conversation.RegistryClient
// interface.
package socialdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	domainerrors "github.com/qj0r9j0vc2/monitor-bridge/internal/domain/errors"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
)

// DefaultBaseURL is the production SocialData API endpoint.
const DefaultBaseURL = "https://api.socialdata.tools"

// Client talks to the SocialData monitor registry.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used for testing with mock services.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger attaches a logger for request-level diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// NewClient creates a SocialData API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// monitorPayload is the registry's wire representation of one monitor.
type monitorPayload struct {
	ID         json.Number `json:"id"`
	Type       string      `json:"monitor_type"`
	CreatedAt  string      `json:"created_at"`
	WebhookURL string      `json:"webhook_url"`
	Parameters struct {
		UserScreenName string `json:"user_screen_name"`
	} `json:"parameters"`
}

func (p *monitorPayload) toEntity() *entity.Monitor {
	return &entity.Monitor{
		ID:         p.ID.String(),
		Type:       entity.MonitorType(p.Type),
		Handle:     p.Parameters.UserScreenName,
		WebhookURL: p.WebhookURL,
		CreatedAt:  p.CreatedAt,
	}
}

type monitorEnvelope struct {
	Data monitorPayload `json:"data"`
}

type listEnvelope struct {
	Data []monitorPayload `json:"data"`
}

type errorEnvelope struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// monitorEndpoints maps monitor types to their creation endpoints.
var monitorEndpoints = map[entity.MonitorType]string{
	entity.MonitorUserTweets:    "/monitors/user-tweets",
	entity.MonitorUserFollowing: "/monitors/user-following",
	entity.MonitorUserProfile:   "/monitors/user-profile",
}

// CreateMonitor registers a new monitor of the given type.
// Returns errors.ErrDuplicateMonitor when the registry reports one already
// exists for the handle.
func (c *Client) CreateMonitor(ctx context.Context, t entity.MonitorType, params entity.MonitorParams) (*entity.Monitor, error) {
	endpoint, ok := monitorEndpoints[t]
	if !ok {
		return nil, fmt.Errorf("unsupported monitor type: %s", t)
	}

	body := map[string]string{"user_screen_name": params.Handle}
	if params.WebhookURL != "" {
		body["webhook_url"] = params.WebhookURL
	}

	var envelope monitorEnvelope
	if err := c.do(ctx, http.MethodPost, endpoint, body, &envelope); err != nil {
		return nil, fmt.Errorf("creating %s monitor: %w", t, err)
	}

	c.logger.Info("monitor created",
		"type", string(t),
		"handle", params.Handle,
		"monitorID", envelope.Data.ID.String(),
	)
	return envelope.Data.toEntity(), nil
}

// GetMonitor fetches one monitor record by ID.
// Returns errors.ErrMonitorNotFound on a lookup miss.
func (c *Client) GetMonitor(ctx context.Context, id string) (*entity.Monitor, error) {
	var envelope monitorEnvelope
	if err := c.do(ctx, http.MethodGet, "/monitors/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, fmt.Errorf("getting monitor %s: %w", id, err)
	}
	return envelope.Data.toEntity(), nil
}

// ListMonitors returns the given page of active monitors.
func (c *Client) ListMonitors(ctx context.Context, page int) ([]*entity.Monitor, error) {
	if page < 1 {
		page = 1
	}

	var envelope listEnvelope
	endpoint := fmt.Sprintf("/monitors?page=%d", page)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, fmt.Errorf("listing monitors: %w", err)
	}

	monitors := make([]*entity.Monitor, 0, len(envelope.Data))
	for i := range envelope.Data {
		monitors = append(monitors, envelope.Data[i].toEntity())
	}
	return monitors, nil
}

// DeleteMonitor removes a monitor by ID.
// Returns errors.ErrMonitorNotFound when the registry has no such monitor.
func (c *Client) DeleteMonitor(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/monitors/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("deleting monitor %s: %w", id, err)
	}
	c.logger.Info("monitor deleted", "monitorID", id)
	return nil
}

// UpdateMonitorWebhook points one monitor's event delivery at url.
func (c *Client) UpdateMonitorWebhook(ctx context.Context, id, webhookURL string) error {
	body := map[string]string{"webhook_url": webhookURL}
	if err := c.do(ctx, http.MethodPatch, "/monitors/"+url.PathEscape(id), body, nil); err != nil {
		return fmt.Errorf("updating monitor %s webhook: %w", id, err)
	}
	return nil
}

// SetGlobalWebhook points the account-wide event delivery at url.
func (c *Client) SetGlobalWebhook(ctx context.Context, webhookURL string) error {
	body := map[string]string{"url": webhookURL}
	if err := c.do(ctx, http.MethodPost, "/user/webhook", body, nil); err != nil {
		return fmt.Errorf("setting global webhook: %w", err)
	}
	c.logger.Info("global webhook updated", "url", webhookURL)
	return nil
}

// do performs one authenticated round trip and decodes the response into out.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.categorizeError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// categorizeError maps an upstream failure to the domain error kinds.
// A 409, or any message containing "already exists", is a duplicate; a 404
// is a missing monitor; everything else stays an upstream error.
func (c *Client) categorizeError(statusCode int, body []byte) error {
	var envelope errorEnvelope
	_ = json.Unmarshal(body, &envelope)

	message := envelope.Message
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	switch {
	case statusCode == http.StatusConflict,
		strings.Contains(message, "already exists"):
		return fmt.Errorf("%w: %s", domainerrors.ErrDuplicateMonitor, message)
	case statusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domainerrors.ErrMonitorNotFound, message)
	default:
		return &domainerrors.UpstreamError{StatusCode: statusCode, Message: message}
	}
}
