package session

import (
	"testing"

	"github.com/englishhub/sitting-backend/internal/model"
)

func TestCoordinatorHappyPath(t *testing.T) {
	c := NewCoordinator()
	if c.Phase() != model.PhaseLoading {
		t.Fatalf("initial phase = %s", c.Phase())
	}

	if err := c.BeginSession(); err != nil {
		t.Fatalf("BeginSession: %v", err)
	}
	if !c.GuardArmed() {
		t.Error("exit guard not armed on session start")
	}

	if err := c.RequestSubmit(); err != nil {
		t.Fatalf("RequestSubmit: %v", err)
	}
	if err := c.CancelSubmit(); err != nil {
		t.Fatalf("CancelSubmit: %v", err)
	}
	if c.Phase() != model.PhaseInProgress {
		t.Fatalf("after cancel, phase = %s", c.Phase())
	}

	payload := map[string]string{"q1": "A"}
	if err := c.BeginSubmitting(payload); err != nil {
		t.Fatalf("BeginSubmitting: %v", err)
	}
	if c.GuardArmed() {
		t.Error("exit guard still armed while submitting")
	}

	result := &model.ExamResult{TotalScore: 800, MaxScore: 990}
	if err := c.CompleteSubmit(result); err != nil {
		t.Fatalf("CompleteSubmit: %v", err)
	}
	if c.Phase() != model.PhaseCompleted || c.Result() != result {
		t.Errorf("completion not recorded")
	}
}

func TestCoordinatorFirstTransitionWins(t *testing.T) {
	c := NewCoordinator()
	c.BeginSession()

	if err := c.BeginSubmitting(map[string]string{"q1": "B"}); err != nil {
		t.Fatalf("first BeginSubmitting: %v", err)
	}
	if err := c.BeginSubmitting(map[string]string{"q1": "D"}); err != ErrPhaseConflict {
		t.Fatalf("second BeginSubmitting = %v, want ErrPhaseConflict", err)
	}
	if c.Payload()["q1"] != "B" {
		t.Errorf("losing trigger replaced the payload")
	}
}

func TestCoordinatorSubmitFromConfirmStep(t *testing.T) {
	c := NewCoordinator()
	c.BeginSession()
	c.RequestSubmit()

	if err := c.BeginSubmitting(nil); err != nil {
		t.Fatalf("BeginSubmitting from confirm step: %v", err)
	}
}

func TestCoordinatorRetryKeepsPayload(t *testing.T) {
	c := NewCoordinator()
	c.BeginSession()
	c.BeginSubmitting(map[string]string{"q1": "C", "q2": "A"})

	if err := c.FailSubmit(); err != nil {
		t.Fatalf("FailSubmit: %v", err)
	}
	if c.Phase() != model.PhaseFailed {
		t.Fatalf("phase = %s, want FAILED", c.Phase())
	}
	if c.GuardArmed() {
		t.Error("exit guard re-armed after failure")
	}

	payload, err := c.RetrySubmit()
	if err != nil {
		t.Fatalf("RetrySubmit: %v", err)
	}
	if len(payload) != 2 || payload["q1"] != "C" {
		t.Errorf("retry payload = %v, want the pinned snapshot", payload)
	}
	if c.Phase() != model.PhaseSubmitting {
		t.Errorf("phase = %s, want SUBMITTING", c.Phase())
	}
}

func TestCoordinatorRejectsOutOfPhaseCalls(t *testing.T) {
	c := NewCoordinator()

	if err := c.RequestSubmit(); err != ErrPhaseConflict {
		t.Errorf("RequestSubmit while loading = %v", err)
	}
	if err := c.BeginSubmitting(nil); err != ErrPhaseConflict {
		t.Errorf("BeginSubmitting while loading = %v", err)
	}
	if _, err := c.RetrySubmit(); err != ErrPhaseConflict {
		t.Errorf("RetrySubmit while loading = %v", err)
	}
	if err := c.CompleteSubmit(nil); err != ErrPhaseConflict {
		t.Errorf("CompleteSubmit while loading = %v", err)
	}
}
