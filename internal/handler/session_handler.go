package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/englishhub/sitting-backend/internal/middleware"
	"github.com/englishhub/sitting-backend/internal/model"
	"github.com/englishhub/sitting-backend/internal/response"
	"github.com/englishhub/sitting-backend/internal/service"
	"github.com/englishhub/sitting-backend/internal/session"
	"github.com/englishhub/sitting-backend/internal/validator"
)

// SessionHandler handles the REST surface of a sitting.
type SessionHandler struct {
	sittings *service.SittingService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sittings *service.SittingService) *SessionHandler {
	return &SessionHandler{sittings: sittings}
}

// resolve parses the exam id and finds the caller's live sitting. On any
// failure it writes the response and returns nil.
func (h *SessionHandler) resolve(c *gin.Context) *session.Controller {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil
	}
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil
	}
	ctrl, err := h.sittings.Get(claims.UserID, examID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSittingNotFound)
		return nil
	}
	return ctrl
}

// StartSitting godoc
// POST /api/v1/sittings/exams/:exam_id/start
// Starts a timed sitting, or reattaches to the live one. Idempotent.
func (h *SessionHandler) StartSitting(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	ctrl, created, err := h.sittings.Start(c.Request.Context(), claims.UserID, examID)
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			response.Fail(c, http.StatusBadGateway, response.ErrCatalogUnavailable)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"state": ctrl.State()})
}

// GetPaper godoc
// GET /api/v1/sittings/exams/:exam_id/paper
// Returns the partitioned question content for the live sitting.
func (h *SessionHandler) GetPaper(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"parts": ctrl.Paper()})
}

// GetState godoc
// GET /api/v1/sittings/exams/:exam_id/state
// Returns a point-in-time snapshot of the sitting.
func (h *SessionHandler) GetState(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": ctrl.State()})
}

// PutAnswer godoc
// PUT /api/v1/sittings/exams/:exam_id/answers
// Records a choice for one question. Last write wins.
func (h *SessionHandler) PutAnswer(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := ctrl.SelectAnswer(req.QuestionID, req.Choice); err != nil {
		failSittingError(c, err)
		return
	}

	answered, total := ctrl.Progress()
	response.Success(c, http.StatusOK, gin.H{
		"answered": answered,
		"total":    total,
	})
}

// ToggleFlag godoc
// POST /api/v1/sittings/exams/:exam_id/flags
// Toggles the review flag on one question.
func (h *SessionHandler) ToggleFlag(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}

	var req model.FlagRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	flagged, err := ctrl.ToggleFlag(req.QuestionID)
	if err != nil {
		failSittingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"flagged": flagged})
}

// ActivatePart godoc
// POST /api/v1/sittings/exams/:exam_id/parts/:part/activate
// Switches the displayed part and rebuilds navigation anchors.
func (h *SessionHandler) ActivatePart(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}

	part, err := strconv.Atoi(c.Param("part"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	if err := ctrl.ActivatePart(part); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrPartNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"active_part": part})
}

// Navigate godoc
// POST /api/v1/sittings/exams/:exam_id/navigate
// Resolves a question's scroll anchor within the active part. An unknown
// or stale id is not an error; found is false and nothing changes.
func (h *SessionHandler) Navigate(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}

	var req model.NavigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	anchor, found := ctrl.GoToQuestion(req.QuestionID)
	// The home part lets a client switch sections when the anchor is not
	// in the one currently rendered.
	part, _ := ctrl.PartOf(req.QuestionID)
	response.Success(c, http.StatusOK, gin.H{"found": found, "anchor": anchor, "part": part})
}

// SubmitIntent godoc
// POST /api/v1/sittings/exams/:exam_id/submit/intent
// Enters the confirm-before-submit step.
func (h *SessionHandler) SubmitIntent(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}
	if err := ctrl.RequestSubmit(); err != nil {
		failSittingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"phase": ctrl.Phase()})
}

// SubmitCancel godoc
// POST /api/v1/sittings/exams/:exam_id/submit/cancel
// Abandons the confirm step and resumes the sitting.
func (h *SessionHandler) SubmitCancel(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}
	if err := ctrl.CancelSubmit(); err != nil {
		failSittingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"phase": ctrl.Phase()})
}

// SubmitConfirm godoc
// POST /api/v1/sittings/exams/:exam_id/submit/confirm
// Freezes the answers and grades the sitting. Works from the confirm step
// or directly from a running sitting.
func (h *SessionHandler) SubmitConfirm(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}
	result, err := ctrl.ConfirmSubmit(c.Request.Context())
	if err != nil {
		failSittingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// SubmitRetry godoc
// POST /api/v1/sittings/exams/:exam_id/submit/retry
// Resends the frozen payload after a failed submission.
func (h *SessionHandler) SubmitRetry(c *gin.Context) {
	ctrl := h.resolve(c)
	if ctrl == nil {
		return
	}
	result, err := ctrl.RetrySubmit(c.Request.Context())
	if err != nil {
		failSittingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// failSittingError maps domain errors onto the response envelope.
func failSittingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrUnknownQuestion):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrUnknownQuestion)
	case errors.Is(err, session.ErrInvalidChoice):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidChoice)
	case errors.Is(err, session.ErrFrozen):
		response.Fail(c, http.StatusConflict, response.ErrSittingLocked)
	case errors.Is(err, session.ErrPhaseConflict):
		response.Fail(c, http.StatusConflict, response.ErrPhaseConflict)
	case errors.Is(err, session.ErrPartNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrPartNotFound)
	case errors.Is(err, session.ErrSubmissionFailed):
		response.Fail(c, http.StatusBadGateway, response.ErrSubmissionFailed)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
