package resilience

import (
	"context"
	"time"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/usecase/notify"
)

// GuardedNotifier wraps a channel notifier with a per-destination circuit
// breaker. While the breaker is open, sends fail fast with ErrCircuitOpen
// instead of waiting on a destination that keeps timing out.
type GuardedNotifier struct {
	inner   notify.ChannelNotifier
	breaker *CircuitBreaker
}

// Guard wraps a notifier with a circuit breaker named after it.
func Guard(inner notify.ChannelNotifier, maxFailures int, timeout time.Duration) *GuardedNotifier {
	return &GuardedNotifier{
		inner:   inner,
		breaker: NewCircuitBreaker(inner.Name(), maxFailures, timeout),
	}
}

// Name returns the wrapped notifier's identifier.
func (g *GuardedNotifier) Name() string {
	return g.inner.Name()
}

// Formatting returns the wrapped notifier's markup flavor.
func (g *GuardedNotifier) Formatting() entity.Format {
	return g.inner.Formatting()
}

// Send delivers through the breaker.
func (g *GuardedNotifier) Send(ctx context.Context, text string) error {
	return g.breaker.Execute(ctx, func() error {
		return g.inner.Send(ctx, text)
	})
}

// Breaker exposes the underlying breaker for health reporting.
func (g *GuardedNotifier) Breaker() *CircuitBreaker {
	return g.breaker
}
