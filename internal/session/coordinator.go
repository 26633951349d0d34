package session

import "github.com/englishhub/sitting-backend/internal/model"

// Trigger identifies what pushed a sitting into the submitting phase.
type Trigger string

const (
	TriggerManual Trigger = "manual"
	TriggerExpiry Trigger = "expiry"
)

// Coordinator owns the sitting's phase machine and the frozen submission
// payload. It is driven exclusively by the Controller under its mutex,
// which is what makes "first transition into SUBMITTING wins" hold: a
// manual submit and a clock expiry raised in the same instant both reach
// BeginSubmitting, and whichever acquires the lock second finds the phase
// already advanced and becomes a no-op.
type Coordinator struct {
	phase      model.Phase
	payload    map[string]string
	result     *model.ExamResult
	guardArmed bool
	guardSpent bool
}

// NewCoordinator starts in the loading phase; the catalog fetch decides
// whether a sitting exists at all.
func NewCoordinator() *Coordinator {
	return &Coordinator{phase: model.PhaseLoading}
}

// Phase returns the current phase.
func (c *Coordinator) Phase() model.Phase {
	return c.phase
}

// BeginSession moves Loading → InProgress and arms the page-exit guard.
// The guard is armed only on the first entry; after a submit has disarmed
// it, it is never re-armed.
func (c *Coordinator) BeginSession() error {
	if c.phase != model.PhaseLoading {
		return ErrPhaseConflict
	}
	c.phase = model.PhaseInProgress
	if !c.guardSpent {
		c.guardArmed = true
	}
	return nil
}

// RequestSubmit moves InProgress → ConfirmingSubmit. The confirmation step
// is optional; callers may skip it and go straight to BeginSubmitting.
func (c *Coordinator) RequestSubmit() error {
	if c.phase != model.PhaseInProgress {
		return ErrPhaseConflict
	}
	c.phase = model.PhaseConfirmingSubmit
	return nil
}

// CancelSubmit moves ConfirmingSubmit back to InProgress.
func (c *Coordinator) CancelSubmit() error {
	if c.phase != model.PhaseConfirmingSubmit {
		return ErrPhaseConflict
	}
	c.phase = model.PhaseInProgress
	return nil
}

// BeginSubmitting enters the submitting phase from InProgress or
// ConfirmingSubmit, pinning the given snapshot as the one and only
// submission payload and disarming the exit guard. Any later trigger —
// second button press, clock expiry racing a manual submit — gets
// ErrPhaseConflict and must treat it as a no-op.
func (c *Coordinator) BeginSubmitting(snapshot map[string]string) error {
	switch c.phase {
	case model.PhaseInProgress, model.PhaseConfirmingSubmit:
	default:
		return ErrPhaseConflict
	}
	c.phase = model.PhaseSubmitting
	c.payload = snapshot
	c.guardArmed = false
	c.guardSpent = true
	return nil
}

// Payload returns the pinned submission payload.
func (c *Coordinator) Payload() map[string]string {
	return c.payload
}

// CompleteSubmit moves Submitting → Completed, retaining the grading
// result for hand-off. Completed is terminal.
func (c *Coordinator) CompleteSubmit(result *model.ExamResult) error {
	if c.phase != model.PhaseSubmitting {
		return ErrPhaseConflict
	}
	c.phase = model.PhaseCompleted
	c.result = result
	return nil
}

// FailSubmit moves Submitting → Failed. The pinned payload is kept for retry.
func (c *Coordinator) FailSubmit() error {
	if c.phase != model.PhaseSubmitting {
		return ErrPhaseConflict
	}
	c.phase = model.PhaseFailed
	return nil
}

// RetrySubmit re-enters Submitting from Failed and returns the payload
// pinned at the first attempt. It never re-snapshots: answers written
// after the freeze (there should be none) cannot leak into a retry.
func (c *Coordinator) RetrySubmit() (map[string]string, error) {
	if c.phase != model.PhaseFailed {
		return nil, ErrPhaseConflict
	}
	c.phase = model.PhaseSubmitting
	return c.payload, nil
}

// Result returns the grading result after completion, or nil.
func (c *Coordinator) Result() *model.ExamResult {
	return c.result
}

// GuardArmed reports whether the renderer should hold a confirm-before-
// leaving prompt.
func (c *Coordinator) GuardArmed() bool {
	return c.guardArmed
}
