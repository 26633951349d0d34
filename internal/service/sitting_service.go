package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/englishhub/sitting-backend/internal/catalog"
	"github.com/englishhub/sitting-backend/internal/model"
	"github.com/englishhub/sitting-backend/internal/session"
)

var (
	// ErrSittingNotFound means the user has no live sitting for the exam.
	ErrSittingNotFound = errors.New("no sitting for this exam")
	// ErrCatalogUnavailable means the content service could not deliver the
	// exam. Nothing was created; the user starts over.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// SittingService owns the lifecycle of sittings: loading the catalog,
// spinning up controllers and finding them again on later requests.
type SittingService struct {
	catalog  *catalog.Client
	grader   session.Grader
	registry *session.Registry
	log      zerolog.Logger

	tickInterval time.Duration
}

// Option tweaks a SittingService at construction.
type Option func(*SittingService)

// WithTickInterval overrides the one-second countdown tick for every sitting
// the service creates. Tests compress time with this.
func WithTickInterval(d time.Duration) Option {
	return func(s *SittingService) {
		s.tickInterval = d
	}
}

// NewSittingService creates a new SittingService.
func NewSittingService(cat *catalog.Client, grader session.Grader, registry *session.Registry, log zerolog.Logger, opts ...Option) *SittingService {
	s := &SittingService{
		catalog:  cat,
		grader:   grader,
		registry: registry,
		log:      log.With().Str("component", "sitting_service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start returns the user's live sitting for the exam, creating one if none
// exists. Starting is idempotent: a second start while a sitting runs
// reattaches to it instead of resetting the clock.
func (s *SittingService) Start(ctx context.Context, userID, examID uuid.UUID) (*session.Controller, bool, error) {
	if ctrl, ok := s.registry.Get(userID, examID); ok {
		return ctrl, false, nil
	}

	meta, err := s.catalog.Exam(ctx, examID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	groups, err := s.catalog.Groups(ctx, examID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	parts, index, err := catalog.Partition(groups, model.DefaultParts, s.log)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	duration := time.Duration(meta.DurationSeconds) * time.Second
	ctrl := session.NewController(session.Config{
		SessionID:    uuid.New(),
		ExamID:       examID,
		UserID:       userID,
		Parts:        parts,
		PartIndex:    index,
		Duration:     duration,
		Grader:       s.grader,
		Log:          s.log,
		TickInterval: s.tickInterval,
	})
	if err := ctrl.Start(); err != nil {
		return nil, false, err
	}
	s.registry.Put(ctrl, duration)

	s.log.Info().
		Str("exam_id", examID.String()).
		Str("user_id", userID.String()).
		Int("questions", len(index)).
		Msg("Sitting created")
	return ctrl, true, nil
}

// Get finds the user's live sitting for an exam.
func (s *SittingService) Get(userID, examID uuid.UUID) (*session.Controller, error) {
	ctrl, ok := s.registry.Get(userID, examID)
	if !ok {
		return nil, ErrSittingNotFound
	}
	return ctrl, nil
}
