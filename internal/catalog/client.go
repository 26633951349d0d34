package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/englishhub/sitting-backend/internal/model"
)

// Client fetches exam metadata and question content from the content
// service. Loading is a single attempt per call: a failed fetch surfaces
// to the caller, who reports it and lets the user start over.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a content service client rooted at baseURL
// (e.g. "http://content:8081/api/v1").
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "catalog_client").Logger(),
	}
}

type envelope struct {
	Result json.RawMessage `json:"result"`
}

// wireGroup mirrors the content service's group payload. Choices come as
// four nullable columns; a null column means the option does not exist on
// that question.
type wireGroup struct {
	GroupID      uuid.UUID      `json:"groupId"`
	QuestionType string         `json:"questionType"`
	AudioURL     string         `json:"audioUrl"`
	ImageURL     string         `json:"imageUrl"`
	Passage      string         `json:"passage"`
	Questions    []wireQuestion `json:"questions"`
}

type wireQuestion struct {
	ID      uuid.UUID `json:"id"`
	Prompt  string    `json:"question"`
	ChoiceA *string   `json:"choiceA"`
	ChoiceB *string   `json:"choiceB"`
	ChoiceC *string   `json:"choiceC"`
	ChoiceD *string   `json:"choiceD"`
}

// Exam fetches exam metadata.
func (c *Client) Exam(ctx context.Context, examID uuid.UUID) (*model.ExamMeta, error) {
	var meta model.ExamMeta
	if err := c.get(ctx, fmt.Sprintf("%s/exams/%s", c.baseURL, examID), &meta); err != nil {
		return nil, fmt.Errorf("fetch exam %s: %w", examID, err)
	}
	return &meta, nil
}

// Groups fetches the full question content for an exam and converts the
// wire columns into structural choice lists.
func (c *Client) Groups(ctx context.Context, examID uuid.UUID) ([]model.QuestionGroup, error) {
	var wire []wireGroup
	url := fmt.Sprintf("%s/exams/%s/questions/groups", c.baseURL, examID)
	if err := c.get(ctx, url, &wire); err != nil {
		return nil, fmt.Errorf("fetch groups for exam %s: %w", examID, err)
	}

	groups := make([]model.QuestionGroup, 0, len(wire))
	for _, wg := range wire {
		group := model.QuestionGroup{
			ID:       wg.GroupID,
			Kind:     model.GroupKind(wg.QuestionType),
			AudioURL: wg.AudioURL,
			ImageURL: wg.ImageURL,
			Passage:  wg.Passage,
		}
		for _, wq := range wg.Questions {
			group.Questions = append(group.Questions, model.Question{
				ID:      wq.ID,
				Prompt:  wq.Prompt,
				Choices: buildChoices(wq),
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func buildChoices(wq wireQuestion) []model.Choice {
	choices := make([]model.Choice, 0, 4)
	for _, col := range []struct {
		letter string
		text   *string
	}{
		{"A", wq.ChoiceA},
		{"B", wq.ChoiceB},
		{"C", wq.ChoiceC},
		{"D", wq.ChoiceD},
	} {
		if col.text != nil {
			choices = append(choices, model.Choice{Letter: col.letter, Text: *col.text})
		}
	}
	return choices
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Str("url", url).Msg("Content service returned non-OK status")
		return fmt.Errorf("content service returned %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
