package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestClientSubmit(t *testing.T) {
	examID := uuid.New()
	userID := uuid.New()
	resultID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/exams/"+examID.String()+"/submissions" {
			t.Errorf("path = %s", r.URL.Path)
		}

		var req struct {
			UserID  uuid.UUID         `json:"user_id"`
			Answers map[string]string `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.UserID != userID {
			t.Errorf("user_id = %s", req.UserID)
		}
		if len(req.Answers) != 2 || req.Answers["q1"] != "B" {
			t.Errorf("answers = %v", req.Answers)
		}

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"result":{"id":%q,"exam_id":%q,"user_id":%q,"listening_score":300,"reading_score":250,"total_score":550,"max_score":990}}`,
			resultID, examID, userID)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	result, err := c.Submit(context.Background(), examID, userID, map[string]string{"q1": "B", "q2": "D"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.TotalScore != 550 || result.MaxScore != 990 {
		t.Errorf("result = %+v", result)
	}
	if result.ListeningScore != 300 || result.ReadingScore != 250 {
		t.Errorf("section scores = %d/%d", result.ListeningScore, result.ReadingScore)
	}
}

func TestClientSubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	if _, err := c.Submit(context.Background(), uuid.New(), uuid.New(), nil); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestClientSubmitMissingResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	if _, err := c.Submit(context.Background(), uuid.New(), uuid.New(), nil); err == nil {
		t.Fatal("expected error for empty envelope")
	}
}
