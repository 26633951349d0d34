package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamMeta is the exam header fetched from the content service when a
// sitting starts.
type ExamMeta struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"duration"`
	CreatedAt       time.Time `json:"created_date"`
}

// Anchor locates a question inside the currently active part so a renderer
// can scroll it into view. Anchors are only valid for the part they were
// built for.
type Anchor struct {
	Part          int `json:"part"`
	GroupIndex    int `json:"group_index"`
	QuestionIndex int `json:"question_index"`
}

// SessionState is the read snapshot of an in-flight sitting. Consumers may
// observe a value that is about to change; the next state read or stream
// event corrects it.
type SessionState struct {
	SessionID        uuid.UUID         `json:"session_id"`
	ExamID           uuid.UUID         `json:"exam_id"`
	Phase            Phase             `json:"phase"`
	RemainingSeconds int               `json:"remaining_seconds"`
	Answers          map[string]string `json:"answers"`
	Flags            []string          `json:"flags"`
	AnsweredCount    int               `json:"answered_count"`
	TotalQuestions   int               `json:"total_questions"`
	ActivePart       int               `json:"active_part"`
	ActiveQuestion   string            `json:"active_question,omitempty"`
	ExitGuardArmed   bool              `json:"exit_guard_armed"`
	Result           *ExamResult       `json:"result,omitempty"`
}

// AnswerRequest selects a choice for one question.
type AnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Choice     string `json:"choice" binding:"required,oneof=A B C D"`
}

// FlagRequest toggles the review flag on one question.
type FlagRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
}

// NavigateRequest asks for the scroll anchor of one question.
type NavigateRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
}
