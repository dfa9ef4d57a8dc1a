// pkg/memcache/seen_events.go
package memcache

import (
	"sync"
	"time"
)

// SeenEventStore is a short-TTL dedup cache for provider webhook event ids.
// It short-circuits exact redeliveries cheaply; the database conditional
// update remains the authoritative idempotency guard.
type SeenEventStore interface {
	// MarkSeen records an event id and reports whether it was already present
	// and unexpired.
	MarkSeen(eventID string, ttl time.Duration) bool

	// Forget drops an event id so the next delivery is treated as unseen.
	// Called when applying the event failed and the redelivery must not be
	// short-circuited.
	Forget(eventID string)
}

type SeenEvents struct {
	mu   sync.Mutex
	data map[string]time.Time // event id -> expiry
}

func NewSeenEvents() *SeenEvents {
	return &SeenEvents{
		data: make(map[string]time.Time),
	}
}

func (s *SeenEvents) MarkSeen(eventID string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if exp, ok := s.data[eventID]; ok && now.Before(exp) {
		return true
	}

	// Opportunistic sweep so the map does not grow without bound.
	if len(s.data) > 4096 {
		for id, exp := range s.data {
			if now.After(exp) {
				delete(s.data, id)
			}
		}
	}

	s.data[eventID] = now.Add(ttl)
	return false
}

func (s *SeenEvents) Forget(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, eventID)
}
