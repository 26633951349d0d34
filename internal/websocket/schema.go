package websocket

import "github.com/englishhub/sitting-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer Action = "answer"
	ActionFlag   Action = "flag"
	ActionGoto   Action = "goto"
	ActionSubmit Action = "submit"
	ActionPing   Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// AnswerRequest records a choice for a single question.
type AnswerRequest struct {
	Action Action `json:"action"`
	QID    string `json:"q_id"`
	Choice string `json:"choice"`
}

// FlagRequest toggles the review flag on a question.
type FlagRequest struct {
	Action Action `json:"action"`
	QID    string `json:"q_id"`
}

// GotoRequest asks for the scroll anchor of a question in the active part.
type GotoRequest struct {
	Action Action `json:"action"`
	QID    string `json:"q_id"`
}

// Submit and ping carry no payload beyond the envelope.

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventTick      Event = "tick"
	EventSaved     Event = "saved"
	EventFlagged   Event = "flagged"
	EventAnchor    Event = "anchor"
	EventExpired   Event = "expired"
	EventSubmitted Event = "submitted"
	EventError     Event = "error"
	EventPong      Event = "pong"
)

// TickResponse is pushed once per second while the sitting runs.
type TickResponse struct {
	Event     Event `json:"event"`
	Remaining int   `json:"remaining_seconds"`
}

type SavedResponse struct {
	Event    Event  `json:"event"`
	QID      string `json:"q_id"`
	Answered int    `json:"answered"`
	Total    int    `json:"total"`
}

type FlaggedResponse struct {
	Event   Event  `json:"event"`
	QID     string `json:"q_id"`
	Flagged bool   `json:"flagged"`
}

// AnchorResponse carries the resolved scroll position. Found is false when
// the question is not in the active part; the client leaves the viewport
// where it is.
type AnchorResponse struct {
	Event  Event        `json:"event"`
	QID    string       `json:"q_id"`
	Found  bool         `json:"found"`
	Anchor model.Anchor `json:"anchor"`
}

// ExpiredResponse announces that the clock hit zero and an automatic
// submission is underway.
type ExpiredResponse struct {
	Event Event `json:"event"`
}

type SubmittedResponse struct {
	Event  Event             `json:"event"`
	Result *model.ExamResult `json:"result,omitempty"`
	Status string            `json:"status"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
