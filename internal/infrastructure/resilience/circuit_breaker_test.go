package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

var errSend = errors.New("send failed")

func failing() error { return errSend }

func succeeding() error { return nil }

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, failing), errSend)
	}
	assert.Equal(t, StateOpen, cb.State())

	// Open circuit fails fast without invoking the send.
	invoked := false
	err := cb.Execute(ctx, func() error {
		invoked = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, invoked)
}

func TestCircuitBreakerStaysClosedOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)
	ctx := context.Background()

	// A success resets the failure count.
	require.Error(t, cb.Execute(ctx, failing))
	require.NoError(t, cb.Execute(ctx, succeeding))
	require.Error(t, cb.Execute(ctx, failing))

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, failing))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	// First probe after the cooldown goes through (half-open).
	require.NoError(t, cb.Execute(ctx, succeeding))
	assert.Equal(t, StateHalfOpen, cb.State())

	// Enough consecutive successes close the breaker again.
	require.NoError(t, cb.Execute(ctx, succeeding))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, failing))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Execute(ctx, failing))
	assert.Equal(t, StateOpen, cb.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}

type breakerStubNotifier struct {
	err   error
	calls int
}

func (s *breakerStubNotifier) Name() string { return "stub" }

func (s *breakerStubNotifier) Formatting() entity.Format { return entity.FormatPlain }

func (s *breakerStubNotifier) Send(context.Context, string) error {
	s.calls++
	return s.err
}

func TestGuardedNotifierDelegates(t *testing.T) {
	inner := &breakerStubNotifier{}
	g := Guard(inner, 3, time.Minute)

	assert.Equal(t, "stub", g.Name())
	assert.Equal(t, entity.FormatPlain, g.Formatting())

	require.NoError(t, g.Send(context.Background(), "hi"))
	assert.Equal(t, 1, inner.calls)
}

func TestGuardedNotifierFailsFastWhenOpen(t *testing.T) {
	inner := &breakerStubNotifier{err: errSend}
	g := Guard(inner, 2, time.Minute)
	ctx := context.Background()

	require.Error(t, g.Send(ctx, "a"))
	require.Error(t, g.Send(ctx, "b"))
	assert.Equal(t, StateOpen, g.Breaker().State())

	assert.ErrorIs(t, g.Send(ctx, "c"), ErrCircuitOpen)
	assert.Equal(t, 2, inner.calls)
}
