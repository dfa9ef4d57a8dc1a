package memcache

import (
	"testing"
	"time"
)

func TestMarkSeenFirstAndRepeat(t *testing.T) {
	s := NewSeenEvents()

	if s.MarkSeen("evt_1", time.Minute) {
		t.Fatal("first sighting must report not seen")
	}
	if !s.MarkSeen("evt_1", time.Minute) {
		t.Fatal("second sighting within the ttl must report seen")
	}
	if s.MarkSeen("evt_2", time.Minute) {
		t.Fatal("distinct ids must not collide")
	}
}

func TestForgetAllowsRedelivery(t *testing.T) {
	s := NewSeenEvents()

	s.MarkSeen("evt_1", time.Minute)
	s.Forget("evt_1")
	if s.MarkSeen("evt_1", time.Minute) {
		t.Fatal("a forgotten id must be treated as unseen")
	}
}

func TestMarkSeenExpires(t *testing.T) {
	s := NewSeenEvents()

	s.MarkSeen("evt_1", -time.Second)
	if s.MarkSeen("evt_1", time.Minute) {
		t.Fatal("an expired entry must be treated as unseen")
	}
}
