package session

import (
	"time"

	"github.com/careercompass/compass/core"
)

// Record is one processed query and its response.
type Record struct {
	Query    core.Query           `json:"query"`
	Response core.UnifiedResponse `json:"response"`
	At       time.Time            `json:"at"`
}

// Session is the accumulated guidance history for one session id.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	History   []Record  `json:"history"`
}

// Clone returns a deep-enough copy: the history slice is duplicated so
// callers cannot mutate stored state through a returned session.
func (s *Session) Clone() *Session {
	clone := *s
	clone.History = make([]Record, len(s.History))
	copy(clone.History, s.History)
	return &clone
}

// Latest returns the most recent record, if any.
func (s *Session) Latest() (Record, bool) {
	if len(s.History) == 0 {
		return Record{}, false
	}
	return s.History[len(s.History)-1], true
}

// Store persists guidance sessions.
type Store interface {
	// Get returns a clone of the session, or false if it does not
	// exist or has expired.
	Get(sessionID string) (*Session, bool)

	// Append records a processed query under the session id, creating
	// the session on first use.
	Append(sessionID string, q core.Query, resp core.UnifiedResponse) error
}
