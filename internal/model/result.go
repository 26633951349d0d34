package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamResult is the payload returned by the grading service after a
// successful submission. It is handed off to the results view as-is and is
// never persisted or re-fetched by this service.
type ExamResult struct {
	ID             uuid.UUID `json:"id"`
	ExamID         uuid.UUID `json:"exam_id"`
	UserID         uuid.UUID `json:"user_id"`
	CompletedAt    time.Time `json:"completed_at"`
	ListeningScore int       `json:"listening_score"`
	ReadingScore   int       `json:"reading_score"`
	TotalScore     int       `json:"total_score"`
	MaxScore       int       `json:"max_score"`
}
