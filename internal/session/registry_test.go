package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestRegistryPutAndGet(t *testing.T) {
	r := NewRegistry(time.Minute, zerolog.Nop())
	grader := &stubGrader{}
	ctrl, _ := newTestController(t, grader, time.Hour, 0)

	if _, ok := r.Get(ctrl.userID, ctrl.examID); ok {
		t.Fatal("empty registry returned a sitting")
	}

	r.Put(ctrl, time.Hour)
	got, ok := r.Get(ctrl.userID, ctrl.examID)
	if !ok || got != ctrl {
		t.Fatal("registered sitting not found")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	// Keyed per user and exam; another user sees nothing.
	if _, ok := r.Get(uuid.New(), ctrl.examID); ok {
		t.Error("sitting visible to a different user")
	}
}

func TestRegistryRemoveShutsDown(t *testing.T) {
	r := NewRegistry(time.Minute, zerolog.Nop())
	grader := &stubGrader{}
	ctrl, _ := newTestController(t, grader, time.Hour, 0)
	ctrl.Start()

	events, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	r.Put(ctrl, time.Hour)
	r.Remove(ctrl.userID, ctrl.examID)

	if _, ok := r.Get(ctrl.userID, ctrl.examID); ok {
		t.Fatal("sitting still present after Remove")
	}

	// Eviction tears the controller down, which closes subscribers.
	select {
	case _, open := <-events:
		if open {
			// Drain any buffered tick; the close must still arrive.
			for range events {
			}
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed on eviction")
	}
}
