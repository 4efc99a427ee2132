package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
)

// fakeLogRepo records delivery records in memory.
type fakeLogRepo struct {
	saved   []*entity.DeliveryRecord
	saveErr error
}

func (f *fakeLogRepo) Save(_ context.Context, rec *entity.DeliveryRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeLogRepo) FindByMonitorID(context.Context, string, int) ([]*entity.DeliveryRecord, error) {
	return nil, nil
}

func (f *fakeLogRepo) FindRecent(context.Context, int) ([]*entity.DeliveryRecord, error) {
	return nil, nil
}

func newProcessEventUseCase(notifiers []ChannelNotifier, repo *fakeLogRepo) *ProcessEventUseCase {
	return NewProcessEventUseCase(
		NewFormatter(),
		NewDispatcher(notifiers, logger.Noop{}),
		repo,
		logger.Noop{},
	)
}

func TestProcessEventRecordsOutcomes(t *testing.T) {
	ok := &fakeNotifier{name: "telegram", format: entity.FormatRich}
	failing := &fakeNotifier{name: "discord", format: entity.FormatPlain, err: errors.New("boom")}
	repo := &fakeLogRepo{}

	uc := newProcessEventUseCase([]ChannelNotifier{ok, failing}, repo)

	event := &entity.WebhookEvent{
		Kind:      entity.EventNewTweet,
		MonitorID: "123",
		Tweet:     &entity.TweetData{Text: "hi", ScreenName: "alice", IDStr: "1"},
	}

	output := uc.Execute(context.Background(), event)
	require.Len(t, output.Outcomes, 2)

	require.Len(t, repo.saved, 2)
	assert.Equal(t, "telegram", repo.saved[0].Destination)
	assert.True(t, repo.saved[0].OK)
	assert.Empty(t, repo.saved[0].Error)
	assert.Equal(t, "123", repo.saved[0].MonitorID)
	assert.Equal(t, "new_tweet", repo.saved[0].EventKind)
	assert.NotEmpty(t, repo.saved[0].ID)

	assert.Equal(t, "discord", repo.saved[1].Destination)
	assert.False(t, repo.saved[1].OK)
	assert.Equal(t, "boom", repo.saved[1].Error)
}

func TestProcessEventUnknownKindStillNotifies(t *testing.T) {
	n := &fakeNotifier{name: "slack", format: entity.FormatPlain}
	repo := &fakeLogRepo{}

	uc := newProcessEventUseCase([]ChannelNotifier{n}, repo)

	event := &entity.WebhookEvent{Kind: entity.EventKind("mystery"), MonitorID: "9"}
	output := uc.Execute(context.Background(), event)

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], `Event "mystery" received.`)
	assert.Len(t, output.Outcomes, 1)
}

func TestProcessEventLogFailureDoesNotPropagate(t *testing.T) {
	n := &fakeNotifier{name: "telegram", format: entity.FormatRich}
	repo := &fakeLogRepo{saveErr: errors.New("db down")}

	uc := newProcessEventUseCase([]ChannelNotifier{n}, repo)

	event := &entity.WebhookEvent{
		Kind:      entity.EventNewTweet,
		MonitorID: "1",
		Tweet:     &entity.TweetData{},
	}

	output := uc.Execute(context.Background(), event)
	require.Len(t, output.Outcomes, 1)
	assert.True(t, output.Outcomes[0].OK)
}
