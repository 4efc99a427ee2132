package notify

import (
	"context"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
)

// DeliveryOutcome is the result of sending one message to one destination.
type DeliveryOutcome struct {
	Destination string
	OK          bool
	Err         error
}

// Dispatcher fans a notification out to every configured destination.
// Destinations are invoked independently: a failure in one never prevents,
// nor is conflated with, any other destination's send.
type Dispatcher struct {
	notifiers []ChannelNotifier
	logger    logger.Logger
}

// NewDispatcher creates a dispatcher over the given destinations.
func NewDispatcher(notifiers []ChannelNotifier, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		logger:    log,
	}
}

// Dispatch sends the message to every destination and collects per-destination
// outcomes. It never returns an error: delivery failures are telemetry, not
// caller-visible failures.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *entity.NotificationMessage) []DeliveryOutcome {
	outcomes := make([]DeliveryOutcome, 0, len(d.notifiers))

	for _, n := range d.notifiers {
		err := n.Send(ctx, msg.TextFor(n.Formatting()))
		if err != nil {
			d.logger.Error("notification delivery failed",
				"destination", n.Name(),
				"error", err,
			)
			outcomes = append(outcomes, DeliveryOutcome{Destination: n.Name(), Err: err})
			continue
		}

		d.logger.Info("notification delivered",
			"destination", n.Name(),
		)
		outcomes = append(outcomes, DeliveryOutcome{Destination: n.Name(), OK: true})
	}

	return outcomes
}
