// Package audit records administrative changes to strategies and
// metadata so operators can reconstruct who changed what and when.
package audit

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Actions recorded by the service.
const (
	ActionStrategySave    = "strategy.save"
	ActionStrategyDelete  = "strategy.delete"
	ActionStrategyImport  = "strategy.import"
	ActionLoadExamples    = "strategy.load_examples"
	ActionMetadataUpsert  = "metadata.upsert"
	ActionMetadataDelete  = "metadata.delete"
)

// Statuses for recorded actions.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
)

// Event is one recorded administrative action.
type Event struct {
	Time       time.Time `json:"time"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resource_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	Status     string    `json:"status"`
}

// Sink receives audit events.
type Sink interface {
	Record(event Event)
	Recent(limit int) []Event
}

// MemorySink keeps the most recent events in a fixed-size ring buffer.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
	next   int
	filled bool
}

const defaultCapacity = 512

// NewMemorySink creates a sink holding up to capacity events. A
// non-positive capacity falls back to the default.
func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &MemorySink{events: make([]Event, capacity)}
}

// Record stores the event, evicting the oldest when full.
func (s *MemorySink) Record(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[s.next] = event
	s.next++
	if s.next == len(s.events) {
		s.next = 0
		s.filled = true
	}
}

// Recent returns up to limit events, newest first.
func (s *MemorySink) Recent(limit int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.filled {
		size = len(s.events)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]Event, 0, limit)
	idx := s.next - 1
	for len(out) < limit {
		if idx < 0 {
			idx = len(s.events) - 1
		}
		out = append(out, s.events[idx])
		idx--
	}
	return out
}

// BuildEvent assembles an event from the request context.
func BuildEvent(r *http.Request, action, resourceID, status string) Event {
	return Event{
		Time:       time.Now().UTC(),
		Action:     action,
		ResourceID: resourceID,
		RequestID:  middleware.GetReqID(r.Context()),
		IPAddress:  r.RemoteAddr,
		Status:     status,
	}
}
