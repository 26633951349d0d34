package grading

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/englishhub/sitting-backend/internal/model"
)

// Client submits frozen answer payloads to the grading service. It
// implements session.Grader.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a grading service client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "grading_client").Logger(),
	}
}

type submitRequest struct {
	UserID  uuid.UUID         `json:"user_id"`
	Answers map[string]string `json:"answers"`
}

type envelope struct {
	Result *model.ExamResult `json:"result"`
}

// Submit sends the payload for scoring. Any transport or decode failure is
// returned as-is; the caller keeps the payload pinned and may retry with
// the identical map.
func (c *Client) Submit(ctx context.Context, examID, userID uuid.UUID, answers map[string]string) (*model.ExamResult, error) {
	body, err := json.Marshal(submitRequest{UserID: userID, Answers: answers})
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	url := fmt.Sprintf("%s/exams/%s/submissions", c.baseURL, examID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit to grading service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.log.Error().Int("status", resp.StatusCode).Str("exam_id", examID.String()).Msg("Grading service returned non-OK status")
		return nil, fmt.Errorf("grading service returned %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode grading response: %w", err)
	}
	if env.Result == nil {
		return nil, fmt.Errorf("grading response missing result")
	}
	return env.Result, nil
}
