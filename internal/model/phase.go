package model

// Phase enumerates the lifecycle states of an exam sitting.
type Phase string

const (
	PhaseLoading          Phase = "LOADING"
	PhaseInProgress       Phase = "IN_PROGRESS"
	PhaseConfirmingSubmit Phase = "CONFIRMING_SUBMIT"
	PhaseSubmitting       Phase = "SUBMITTING"
	PhaseCompleted        Phase = "COMPLETED"
	PhaseFailed           Phase = "FAILED"
)

// Frozen reports whether the answer ledger and flag set are immutable in
// this phase. Once a sitting reaches SUBMITTING the frozen payload is what
// gets graded, even across failed attempts and retries.
func (p Phase) Frozen() bool {
	return p == PhaseSubmitting || p == PhaseCompleted || p == PhaseFailed
}
