package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/repository"
)

// ProcessEventUseCase handles one inbound webhook event: format, fan out,
// record delivery outcomes.
type ProcessEventUseCase struct {
	formatter  *Formatter
	dispatcher *Dispatcher
	log        repository.NotificationLogRepository
	logger     logger.Logger
}

// ProcessEventOutput reports what happened to one event.
type ProcessEventOutput struct {
	Message  *entity.NotificationMessage
	Outcomes []DeliveryOutcome
}

// NewProcessEventUseCase creates the use case with its dependencies.
func NewProcessEventUseCase(
	formatter *Formatter,
	dispatcher *Dispatcher,
	logRepo repository.NotificationLogRepository,
	log logger.Logger,
) *ProcessEventUseCase {
	return &ProcessEventUseCase{
		formatter:  formatter,
		dispatcher: dispatcher,
		log:        logRepo,
		logger:     log,
	}
}

// Execute processes one webhook event. It never fails: formatting is total
// and delivery failures are isolated per destination, so the webhook source
// is always acknowledged once dispatch was attempted.
func (uc *ProcessEventUseCase) Execute(ctx context.Context, event *entity.WebhookEvent) *ProcessEventOutput {
	if !event.IsKnown() {
		uc.logger.Warn("unrecognized event kind, sending generic notification",
			"kind", string(event.Kind),
			"monitorID", event.MonitorID,
		)
	}

	msg := uc.formatter.Format(event)
	outcomes := uc.dispatcher.Dispatch(ctx, msg)

	uc.recordOutcomes(ctx, event, outcomes)

	return &ProcessEventOutput{
		Message:  msg,
		Outcomes: outcomes,
	}
}

// recordOutcomes writes the delivery log. Log write failures are reported
// but never affect event processing.
func (uc *ProcessEventUseCase) recordOutcomes(ctx context.Context, event *entity.WebhookEvent, outcomes []DeliveryOutcome) {
	for _, o := range outcomes {
		rec := &entity.DeliveryRecord{
			ID:          uuid.New().String(),
			EventKind:   string(event.Kind),
			MonitorID:   event.MonitorID,
			Destination: o.Destination,
			OK:          o.OK,
			CreatedAt:   time.Now().UTC(),
		}
		if o.Err != nil {
			rec.Error = o.Err.Error()
		}

		if err := uc.log.Save(ctx, rec); err != nil {
			uc.logger.Error("failed to record delivery outcome",
				"destination", o.Destination,
				"monitorID", event.MonitorID,
				"error", err,
			)
		}
	}
}
