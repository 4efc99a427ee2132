package entity

import "time"

// DeliveryRecord is one row of the notification delivery log: the outcome
// of sending one event's notification to one destination.
type DeliveryRecord struct {
	ID          string
	EventKind   string
	MonitorID   string
	Destination string
	OK          bool
	Error       string // empty on success
	CreatedAt   time.Time
}
