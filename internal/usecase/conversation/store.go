package conversation

import (
	"sync"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// Store is the process-local table of active sessions, keyed by chat ID.
// It enforces two invariants:
//
//   - at most one Session per chat: Put replaces any existing entry, so a
//     new command always wins over an unfinished conversation;
//   - at most one in-flight state transition per chat: Lock hands out a
//     per-chat mutex that callers hold across the whole input-handling
//     operation, including any suspended external calls.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
	locks    map[string]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entity.Session),
		locks:    make(map[string]*chatLock),
	}
}

// Lock serializes input handling for one chat. The returned function
// releases the lock; lock entries are dropped once no handler waits on them.
func (s *Store) Lock(chatID string) func() {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &chatLock{}
		s.locks[chatID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, chatID)
		}
		s.mu.Unlock()
	}
}

// Get returns the pending session for a chat, if any.
func (s *Store) Get(chatID string) (*entity.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Put stores the session, replacing any pending one for the same chat.
func (s *Store) Put(sess *entity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ChatID] = sess
}

// Delete removes the session for a chat. Deleting an absent session is a no-op.
func (s *Store) Delete(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len returns the number of pending sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
