// Package session keeps per-conversation state in memory.  Each session
// carries its own lock so concurrent requests for the same session are
// serialized without blocking unrelated conversations.
package session

import (
	"sync"
	"time"

	"aftercare-assistant/pkg"
)

// Session is the durable part of one conversation.
type Session struct {
	ID          string
	PatientName string
	PatientData *pkg.PatientRecord
	History     []pkg.HistoryMessage
	LastHandler string
	CreatedAt   time.Time
}

type entry struct {
	mu      sync.Mutex
	session Session
}

// Store holds all live sessions.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Handle is exclusive access to one session.  Callers must Release it
// when the turn is done.
type Handle struct {
	entry *entry
}

// Acquire locks the session with the given id, creating it first if it
// does not exist.  It blocks while another request holds the session.
func (s *Store) Acquire(id string) *Handle {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{session: Session{ID: id, CreatedAt: time.Now()}}
		s.entries[id] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	return &Handle{entry: e}
}

// Session returns a copy of the locked session's state.
func (h *Handle) Session() Session {
	return h.entry.session
}

// Update replaces the locked session's state.
func (h *Handle) Update(sess Session) {
	h.entry.session = sess
}

func (h *Handle) Release() {
	h.entry.mu.Unlock()
}

// Delete removes a session and reports whether it existed.  A request
// still holding the session keeps its handle; the entry is simply no
// longer reachable for new turns.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
