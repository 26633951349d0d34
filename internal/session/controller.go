package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/englishhub/sitting-backend/internal/model"
)

// Grader submits a frozen answer payload to the external grading service
// and returns the score report. One call is one physical attempt; the
// Controller guarantees at most one logical attempt per submitting-phase
// entry and resubmits the identical payload on user-triggered retry.
type Grader interface {
	Submit(ctx context.Context, examID, userID uuid.UUID, answers map[string]string) (*model.ExamResult, error)
}

// EventKind tags stream events pushed to subscribers.
type EventKind string

const (
	EventTick         EventKind = "tick"
	EventExpired      EventKind = "expired"
	EventSubmitted    EventKind = "submitted"
	EventSubmitFailed EventKind = "submit_failed"
)

// Event is pushed to stream subscribers (the WebSocket handler).
type Event struct {
	Kind      EventKind         `json:"event"`
	Remaining int               `json:"remaining_seconds,omitempty"`
	Result    *model.ExamResult `json:"result,omitempty"`
}

// Config carries everything a Controller needs at construction.
type Config struct {
	SessionID uuid.UUID
	ExamID    uuid.UUID
	UserID    uuid.UUID
	Parts     []model.Part
	PartIndex map[string]int // questionID → part number
	Duration  time.Duration
	Grader    Grader
	Log       zerolog.Logger

	// TickInterval overrides the one-second clock tick; zero means one
	// second. Tests compress time with this.
	TickInterval time.Duration
}

// Controller runs one user through one timed sitting. It owns the ledger,
// flag set, clock, navigator and submission coordinator, and serializes
// the three event sources — user input, the clock tick, and the grading
// response — behind a single mutex, so no two handlers ever interleave.
type Controller struct {
	mu sync.Mutex

	sessionID uuid.UUID
	examID    uuid.UUID
	userID    uuid.UUID

	parts     []model.Part
	partIndex map[string]int
	questions map[string]*model.Question
	total     int

	ledger *AnswerLedger
	flags  *FlagSet
	clock  *Clock
	nav    *Navigator
	coord  *Coordinator
	grader Grader
	log    zerolog.Logger

	remaining  int
	activePart int

	subs    map[int]chan Event
	nextSub int
	closed  bool
}

// NewController builds a Controller over an already-partitioned catalog.
// The sitting is not running until Start is called.
func NewController(cfg Config) *Controller {
	ids := make([]string, 0, len(cfg.PartIndex))
	for id := range cfg.PartIndex {
		ids = append(ids, id)
	}

	questions := make(map[string]*model.Question, len(ids))
	for pi := range cfg.Parts {
		for gi := range cfg.Parts[pi].Groups {
			qs := cfg.Parts[pi].Groups[gi].Questions
			for qi := range qs {
				questions[qs[qi].ID.String()] = &qs[qi]
			}
		}
	}

	clock := NewClock()
	if cfg.TickInterval > 0 {
		clock.interval = cfg.TickInterval
	}

	c := &Controller{
		sessionID: cfg.SessionID,
		examID:    cfg.ExamID,
		userID:    cfg.UserID,
		parts:     cfg.Parts,
		partIndex: cfg.PartIndex,
		questions: questions,
		total:     len(ids),
		ledger:    NewAnswerLedger(ids),
		flags:     NewFlagSet(ids),
		clock:     clock,
		nav:       NewNavigator(),
		coord:     NewCoordinator(),
		grader:    cfg.Grader,
		log: cfg.Log.With().
			Str("component", "sitting").
			Str("session_id", cfg.SessionID.String()).
			Str("exam_id", cfg.ExamID.String()).
			Logger(),
		remaining: int(cfg.Duration.Seconds()),
		subs:      make(map[int]chan Event),
	}
	return c
}

// Start moves the sitting into progress, activates the first part and
// starts the countdown.
func (c *Controller) Start() error {
	c.mu.Lock()
	if err := c.coord.BeginSession(); err != nil {
		c.mu.Unlock()
		return err
	}
	if len(c.parts) > 0 {
		c.activePart = c.parts[0].Number
		c.nav.Rebuild(&c.parts[0])
	}
	seconds := c.remaining
	c.mu.Unlock()

	c.clock.Start(seconds, c.handleTick, c.handleExpiry)
	c.log.Info().Int("duration_seconds", seconds).Msg("Sitting started")
	return nil
}

// SelectAnswer records a choice. Writes after the freeze are dropped (the
// UI should already have disabled input; this is the backstop), unknown
// ids are rejected without touching the ledger, and the choice letter must
// be one the question actually offers — the structural gap on three-choice
// questions included.
func (c *Controller) SelectAnswer(questionID, choice string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.coord.Phase().Frozen() {
		c.log.Warn().Str("question_id", questionID).Msg("Answer write after freeze dropped")
		return ErrFrozen
	}
	q, ok := c.questions[questionID]
	if !ok {
		c.log.Error().Str("question_id", questionID).Msg("Answer write for unknown question")
		return ErrUnknownQuestion
	}
	if !q.HasChoice(choice) {
		c.log.Warn().
			Str("question_id", questionID).
			Str("choice", choice).
			Msg("Answer write with a choice the question does not offer")
		return ErrInvalidChoice
	}
	if err := c.ledger.Set(questionID, choice); err != nil {
		if err == ErrUnknownQuestion {
			c.log.Error().Str("question_id", questionID).Msg("Answer write for unknown question")
		}
		return err
	}
	return nil
}

// ToggleFlag flips the review flag on a question and returns the new state.
func (c *Controller) ToggleFlag(questionID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.coord.Phase().Frozen() {
		c.log.Warn().Str("question_id", questionID).Msg("Flag toggle after freeze dropped")
		return false, ErrFrozen
	}
	flagged, err := c.flags.Toggle(questionID)
	if err != nil && err == ErrUnknownQuestion {
		c.log.Error().Str("question_id", questionID).Msg("Flag toggle for unknown question")
	}
	return flagged, err
}

// ActivatePart switches the displayed part and rebuilds the navigation
// anchors. Answers, flags and the clock are untouched.
func (c *Controller) ActivatePart(number int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.parts {
		if c.parts[i].Number == number {
			c.activePart = number
			c.nav.Rebuild(&c.parts[i])
			return nil
		}
	}
	return ErrPartNotFound
}

// GoToQuestion resolves the scroll anchor for a question within the active
// part. Unregistered ids are a no-op.
func (c *Controller) GoToQuestion(questionID string) (model.Anchor, bool) {
	return c.nav.GoTo(questionID)
}

// PartOf returns the part number a question belongs to. The index is
// fixed at load time, so no locking is needed.
func (c *Controller) PartOf(questionID string) (int, bool) {
	part, ok := c.partIndex[questionID]
	return part, ok
}

// RequestSubmit enters the confirmation step.
func (c *Controller) RequestSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coord.RequestSubmit()
}

// CancelSubmit abandons the confirmation step.
func (c *Controller) CancelSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coord.CancelSubmit()
}

// ConfirmSubmit freezes the sitting and performs the grading call
// synchronously. Accepted from ConfirmingSubmit or straight from
// InProgress — the confirmation step is skippable. If an expiry submit
// won the race first, this returns ErrPhaseConflict and does nothing.
func (c *Controller) ConfirmSubmit(ctx context.Context) (*model.ExamResult, error) {
	payload, err := c.beginSubmitting(TriggerManual)
	if err != nil {
		return nil, err
	}
	return c.finishSubmit(ctx, payload)
}

// RetrySubmit re-sends the payload pinned at the first attempt. Only valid
// from Failed.
func (c *Controller) RetrySubmit(ctx context.Context) (*model.ExamResult, error) {
	c.mu.Lock()
	payload, err := c.coord.RetrySubmit()
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	c.log.Info().Int("answers", len(payload)).Msg("Retrying submission with frozen payload")
	return c.finishSubmit(ctx, payload)
}

// beginSubmitting performs the one guarded transition into Submitting:
// phase check and snapshot happen atomically, the clock stops
// unconditionally so a slow grading round-trip cannot see a second
// expiry, and the exit guard is disarmed.
func (c *Controller) beginSubmitting(trigger Trigger) (map[string]string, error) {
	c.mu.Lock()
	switch c.coord.Phase() {
	case model.PhaseInProgress, model.PhaseConfirmingSubmit:
	default:
		c.mu.Unlock()
		return nil, ErrPhaseConflict
	}
	snapshot := c.ledger.Freeze()
	if err := c.coord.BeginSubmitting(snapshot); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.flags.Freeze()
	c.mu.Unlock()

	c.clock.Stop()
	c.log.Info().
		Str("trigger", string(trigger)).
		Int("answers", len(snapshot)).
		Msg("Entering submission")
	return snapshot, nil
}

// finishSubmit performs the grading call outside the mutex and applies the
// outcome under it.
func (c *Controller) finishSubmit(ctx context.Context, payload map[string]string) (*model.ExamResult, error) {
	result, err := c.grader.Submit(ctx, c.examID, c.userID, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if ferr := c.coord.FailSubmit(); ferr != nil {
			// Outcome raced teardown; nothing to apply.
			return nil, ferr
		}
		c.log.Error().Err(err).Msg("Submission failed, payload retained for retry")
		c.broadcast(Event{Kind: EventSubmitFailed})
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	if cerr := c.coord.CompleteSubmit(result); cerr != nil {
		return nil, cerr
	}
	c.log.Info().Int("total_score", result.TotalScore).Msg("Sitting completed")
	c.broadcast(Event{Kind: EventSubmitted, Result: result})
	return result, nil
}

// handleTick runs on the clock goroutine once per second.
func (c *Controller) handleTick(remaining int) {
	c.mu.Lock()
	c.remaining = remaining
	c.broadcast(Event{Kind: EventTick, Remaining: remaining})
	c.mu.Unlock()
}

// handleExpiry runs on the clock goroutine when the countdown hits zero.
// It bypasses confirmation and submits whatever the ledger holds; if a
// manual submit already won, the phase check makes this a no-op.
func (c *Controller) handleExpiry() {
	payload, err := c.beginSubmitting(TriggerExpiry)
	if err != nil {
		c.log.Debug().Msg("Expiry after submission already underway; ignored")
		return
	}

	c.mu.Lock()
	c.broadcast(Event{Kind: EventExpired})
	c.mu.Unlock()

	// The grading call must not block the clock goroutine's caller chain.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := c.finishSubmit(ctx, payload); err != nil {
			c.log.Error().Err(err).Msg("Auto-submission failed; awaiting user retry")
		}
	}()
}

// State returns a point-in-time snapshot for rendering.
func (c *Controller) State() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return model.SessionState{
		SessionID:        c.sessionID,
		ExamID:           c.examID,
		Phase:            c.coord.Phase(),
		RemainingSeconds: c.remaining,
		Answers:          c.ledger.Snapshot(),
		Flags:            c.flags.List(),
		AnsweredCount:    c.ledger.Count(),
		TotalQuestions:   c.total,
		ActivePart:       c.activePart,
		ActiveQuestion:   c.nav.Active(),
		ExitGuardArmed:   c.coord.GuardArmed(),
		Result:           c.coord.Result(),
	}
}

// Progress returns the answered and total question counts.
func (c *Controller) Progress() (answered, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Count(), c.total
}

// Paper returns the partitioned question content. The slice is fixed at
// load time and never mutated, so sharing it is safe.
func (c *Controller) Paper() []model.Part {
	return c.parts
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() model.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coord.Phase()
}

// Subscribe registers a stream listener. Slow consumers lose events rather
// than blocking the clock. The returned func unsubscribes.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan Event, 16)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Shutdown stops the clock and closes all stream subscribers. Called on
// registry eviction; idempotent.
func (c *Controller) Shutdown() {
	c.clock.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.log.Info().Msg("Sitting torn down")
}

// broadcast fans an event out to subscribers. Callers hold c.mu.
func (c *Controller) broadcast(ev Event) {
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default: // Drop rather than stall the sender.
		}
	}
}
