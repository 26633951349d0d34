package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Sitting lifecycle ─────────────────────────────────────────────
	ErrSittingNotFound    ErrCode = "SITTING_NOT_FOUND"
	ErrCatalogUnavailable ErrCode = "CATALOG_UNAVAILABLE"
	ErrUnknownQuestion    ErrCode = "UNKNOWN_QUESTION"
	ErrInvalidChoice      ErrCode = "INVALID_CHOICE"
	ErrSittingLocked      ErrCode = "SITTING_LOCKED"
	ErrPhaseConflict      ErrCode = "PHASE_CONFLICT"
	ErrPartNotFound       ErrCode = "PART_NOT_FOUND"
	ErrSubmissionFailed   ErrCode = "SUBMISSION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is not valid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The identifier format is not valid."
	case ErrInvalidPayload:
		return "The request payload is not valid."

	// ─── Sitting lifecycle ─────────────────────────────────────────────
	case ErrSittingNotFound:
		return "No sitting is in progress for this exam. Start one first."
	case ErrCatalogUnavailable:
		return "The exam content could not be loaded. No sitting was started; please try again."
	case ErrUnknownQuestion:
		return "The question does not belong to this exam."
	case ErrInvalidChoice:
		return "The choice is not an option on this question."
	case ErrSittingLocked:
		return "The sitting has been submitted and can no longer be changed."
	case ErrPhaseConflict:
		return "This action is not allowed in the sitting's current state."
	case ErrPartNotFound:
		return "The exam has no such part."
	case ErrSubmissionFailed:
		return "Submission failed. Your answers are safe and have not been lost; please retry."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
