package session

import "errors"

// Sentinel errors for sitting mutations. Callers map these onto API error
// codes; none of them may corrupt ledger or flag state.
var (
	// ErrUnknownQuestion means a write referenced a question id that is not
	// part of the loaded catalog. This is a catalog/partition inconsistency,
	// a defect somewhere upstream, not a user condition.
	ErrUnknownQuestion = errors.New("question does not belong to this sitting")

	// ErrInvalidChoice means a write carried a choice letter the question
	// does not offer. Bound clients cannot produce this; a hand-rolled one
	// can, and it must never reach the graded payload.
	ErrInvalidChoice = errors.New("choice is not an option on this question")

	// ErrFrozen means a write arrived after the sitting entered the
	// submitting phase. The UI should have disabled input already; the
	// write is dropped and logged.
	ErrFrozen = errors.New("sitting is frozen for submission")

	// ErrPhaseConflict means a lifecycle action is not defined for the
	// sitting's current phase (e.g., cancelling a submit that was never
	// requested, or a second submit trigger losing the race).
	ErrPhaseConflict = errors.New("action not allowed in current phase")

	// ErrPartNotFound means a part number outside the loaded layout.
	ErrPartNotFound = errors.New("no such part")

	// ErrSubmissionFailed wraps a grading-service failure. The frozen
	// payload is retained for retry.
	ErrSubmissionFailed = errors.New("submission to grading service failed")
)
