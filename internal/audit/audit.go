// Package audit records every handler action and handoff as an append-only
// stream of events.  The log is an injected service with an explicit
// lifecycle rather than process-global state; persistence beyond the
// structured log output is a collaborator concern.
package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event is one audited action.  Input and output are truncated summaries,
// never full payloads.
type Event struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Input     string         `json:"input"`
	Output    string         `json:"output"`
	Success   bool           `json:"success"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

const summaryLimit = 500

// Log keeps a bounded in-memory window of events and mirrors each one to
// the structured logger.  Safe for concurrent use.
type Log struct {
	mu     sync.RWMutex
	logger zerolog.Logger
	events []Event
	max    int
}

// NewLog constructs an audit log retaining at most max events in memory.
func NewLog(logger zerolog.Logger, max int) *Log {
	if max < 1 {
		max = 1
	}
	return &Log{
		logger: logger.With().Str("component", "audit").Logger(),
		events: make([]Event, 0, max),
		max:    max,
	}
}

// Record appends one event.  Metadata is copied so callers may reuse maps.
func (l *Log) Record(actor, action, input, output string, success bool, metadata map[string]any) {
	ev := Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Action:    action,
		Input:     truncate(input, summaryLimit),
		Output:    truncate(output, summaryLimit),
		Success:   success,
	}
	if len(metadata) > 0 {
		ev.Metadata = make(map[string]any, len(metadata))
		for k, v := range metadata {
			ev.Metadata[k] = v
		}
	}

	l.mu.Lock()
	if len(l.events) == l.max {
		copy(l.events, l.events[1:])
		l.events = l.events[:l.max-1]
	}
	l.events = append(l.events, ev)
	l.mu.Unlock()

	l.logger.Info().
		Str("actor", ev.Actor).
		Str("action", ev.Action).
		Bool("success", ev.Success).
		Str("output", ev.Output).
		Msg("audit")
}

// Handoff records an agent-to-agent transition with its trigger.
func (l *Log) Handoff(from, to, reason, message string) {
	l.Record("system", "agent_handoff", from+" -> "+to, reason, true, map[string]any{
		"from_agent": from,
		"to_agent":   to,
		"message":    truncate(message, 200),
	})
}

// Recent returns up to limit of the newest events, oldest first.
func (l *Log) Recent(limit int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 || limit > len(l.events) {
		limit = len(l.events)
	}
	out := make([]Event, limit)
	copy(out, l.events[len(l.events)-limit:])
	return out
}

// BySession returns every retained event whose metadata carries the given
// session id.
func (l *Log) BySession(sessionID string) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for _, ev := range l.events {
		if ev.Metadata != nil && ev.Metadata["session_id"] == sessionID {
			out = append(out, ev)
		}
	}
	return out
}

// Len reports the number of retained events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
