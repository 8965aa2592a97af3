package session

import (
	"sync"
	"time"

	"github.com/careercompass/compass/core"
)

// InMemoryStore is a volatile Store implementation keeping sessions in
// a process local map. It is safe for concurrent access and best
// suited for single-instance deployments and tests. Each returned
// session is cloned to prevent external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// InMemoryOptions configures an InMemoryStore.
type InMemoryOptions struct {
	// TTL evicts sessions not updated within the window. Zero keeps
	// sessions forever.
	TTL time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *InMemoryOptions)) *InMemoryStore {
	opts := InMemoryOptions{Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		sessions: make(map[string]*Session),
		ttl:      opts.TTL,
		now:      opts.Now,
	}
}

// Get implements the Store interface.
func (s *InMemoryStore) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || s.expired(sess) {
		return nil, false
	}
	return sess.Clone(), true
}

// Append implements the Store interface.
func (s *InMemoryStore) Append(sessionID string, q core.Query, resp core.UnifiedResponse) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || s.expired(sess) {
		sess = &Session{ID: sessionID, CreatedAt: now}
		s.sessions[sessionID] = sess
	}
	sess.History = append(sess.History, Record{Query: q, Response: resp, At: now})
	sess.UpdatedAt = now
	return nil
}

// Len returns the number of live sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if !s.expired(sess) {
			n++
		}
	}
	return n
}

// Sweep drops expired sessions. Get and Append already treat expired
// sessions as absent, so sweeping only reclaims memory.
func (s *InMemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
}

func (s *InMemoryStore) expired(sess *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(sess.UpdatedAt) > s.ttl
}
