package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics.
type Metrics struct {
	meter metric.Meter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPRequestsActive  metric.Int64UpDownCounter

	// Webhook event metrics
	EventsReceivedTotal     metric.Int64Counter
	EventProcessingDuration metric.Float64Histogram

	// Notification metrics
	NotificationsSentTotal  metric.Int64Counter
	NotificationDuration    metric.Float64Histogram
	NotificationErrorsTotal metric.Int64Counter

	// Conversation metrics
	ConversationInputsTotal metric.Int64Counter
	ConversationsActive     metric.Int64UpDownCounter

	// Registry metrics
	RegistryRequestsTotal   metric.Int64Counter
	RegistryRequestDuration metric.Float64Histogram
}

// NewMetrics creates and registers all application metrics.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{meter: meter}

	var err error

	// HTTP metrics
	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http.server.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_requests_total: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_request_duration: %w", err)
	}

	m.HTTPRequestsActive, err = meter.Int64UpDownCounter(
		"http.server.requests.active",
		metric.WithDescription("Number of active HTTP requests"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_requests_active: %w", err)
	}

	// Webhook event metrics
	m.EventsReceivedTotal, err = meter.Int64Counter(
		"events.received.total",
		metric.WithDescription("Total number of webhook events received"),
		metric.WithUnit("{events}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events_received_total: %w", err)
	}

	m.EventProcessingDuration, err = meter.Float64Histogram(
		"events.processing.duration",
		metric.WithDescription("Webhook event processing duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating event_processing_duration: %w", err)
	}

	// Notification metrics
	m.NotificationsSentTotal, err = meter.Int64Counter(
		"notifications.sent.total",
		metric.WithDescription("Total number of notifications sent"),
		metric.WithUnit("{notifications}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating notifications_sent_total: %w", err)
	}

	m.NotificationDuration, err = meter.Float64Histogram(
		"notifications.send.duration",
		metric.WithDescription("Notification send duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification_duration: %w", err)
	}

	m.NotificationErrorsTotal, err = meter.Int64Counter(
		"notifications.errors.total",
		metric.WithDescription("Total number of notification errors"),
		metric.WithUnit("{errors}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification_errors_total: %w", err)
	}

	// Conversation metrics
	m.ConversationInputsTotal, err = meter.Int64Counter(
		"conversations.inputs.total",
		metric.WithDescription("Total number of conversation inputs handled"),
		metric.WithUnit("{inputs}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conversation_inputs_total: %w", err)
	}

	m.ConversationsActive, err = meter.Int64UpDownCounter(
		"conversations.active",
		metric.WithDescription("Number of pending conversation sessions"),
		metric.WithUnit("{sessions}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conversations_active: %w", err)
	}

	// Registry metrics
	m.RegistryRequestsTotal, err = meter.Int64Counter(
		"registry.requests.total",
		metric.WithDescription("Total number of registry API requests"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registry_requests_total: %w", err)
	}

	m.RegistryRequestDuration, err = meter.Float64Histogram(
		"registry.request.duration",
		metric.WithDescription("Registry API request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registry_request_duration: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records HTTP request metrics.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordEventReceived records webhook event processing metrics.
func (m *Metrics) RecordEventReceived(ctx context.Context, eventKind string, known bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("event.kind", eventKind),
		attribute.Bool("event.known", known),
	}

	m.EventsReceivedTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.EventProcessingDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordNotificationSent records notification delivery metrics.
func (m *Metrics) RecordNotificationSent(ctx context.Context, destination string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("destination", destination),
		attribute.Bool("success", success),
	}

	m.NotificationsSentTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.NotificationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if !success {
		m.NotificationErrorsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordConversationInput records one handled conversation input.
func (m *Metrics) RecordConversationInput(ctx context.Context, inputKind string, authorized bool) {
	attrs := []attribute.KeyValue{
		attribute.String("input.kind", inputKind),
		attribute.Bool("authorized", authorized),
	}

	m.ConversationInputsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRegistryRequest records registry API call metrics.
func (m *Metrics) RecordRegistryRequest(ctx context.Context, operation string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	}

	m.RegistryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.RegistryRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
