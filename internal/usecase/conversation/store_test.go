package conversation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

func TestStorePutReplaces(t *testing.T) {
	s := NewStore()

	s.Put(&entity.Session{ChatID: "1", State: entity.StateAwaitingHandle})
	s.Put(&entity.Session{ChatID: "1", State: entity.StateAwaitingStopHandle})

	sess, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, entity.StateAwaitingStopHandle, sess.State)
	assert.Equal(t, 1, s.Len())
}

func TestStoreChatsAreIndependent(t *testing.T) {
	s := NewStore()

	s.Put(&entity.Session{ChatID: "1", State: entity.StateAwaitingHandle})
	s.Put(&entity.Session{ChatID: "2", State: entity.StateAwaitingDetailsID})

	s.Delete("1")

	_, ok := s.Get("1")
	assert.False(t, ok)

	sess, ok := s.Get("2")
	require.True(t, ok)
	assert.Equal(t, entity.StateAwaitingDetailsID, sess.State)
}

func TestStoreDeleteAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Delete("missing")
	assert.Equal(t, 0, s.Len())
}

func TestStoreLockSerializesPerChat(t *testing.T) {
	s := NewStore()

	unlock := s.Lock("1")

	acquired := make(chan struct{})
	go func() {
		u := s.Lock("1")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	default:
	}

	unlock()
	<-acquired
}

func TestStoreLockDoesNotBlockOtherChats(t *testing.T) {
	s := NewStore()

	unlock := s.Lock("1")
	defer unlock()

	done := make(chan struct{})
	go func() {
		u := s.Lock("2")
		u()
		close(done)
	}()
	<-done
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.Lock("1")
			defer unlock()
			s.Put(&entity.Session{ChatID: "1", State: entity.StateAwaitingHandle})
			s.Delete("1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, s.Len())
}
