package notify

import (
	"context"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// ChannelNotifier delivers a notification to one destination platform.
// New destinations implement this interface.
type ChannelNotifier interface {
	// Name returns the destination identifier (e.g. "telegram", "discord").
	Name() string

	// Formatting declares which rendering this destination accepts; the
	// dispatcher selects the matching text from the message.
	Formatting() entity.Format

	// Send delivers the already-rendered text to the destination.
	Send(ctx context.Context, text string) error
}
