package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/englishhub/sitting-backend/internal/middleware"
	"github.com/englishhub/sitting-backend/internal/service"
	"github.com/englishhub/sitting-backend/internal/session"
	ws "github.com/englishhub/sitting-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a sitting: countdown ticks and submission outcomes go
// out, answers, flags and navigation come in.
type WSHandler struct {
	sittings *service.SittingService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sittings *service.SittingService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sittings: sittings,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// SittingStream godoc
// WS /ws/v1/sittings/exams/:exam_id/stream
// Upgrades to WebSocket for the live sitting stream.
func (h *WSHandler) SittingStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exam ID"})
		return
	}

	ctrl, err := h.sittings.Get(claims.UserID, examID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sitting for this exam"})
		return
	}

	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	conn := ws.NewConn(raw)
	defer conn.Close()

	wsLog := h.log.With().
		Str("user_id", claims.UserID.String()).
		Str("exam_id", examID.String()).
		Logger()
	wsLog.Info().Msg("Sitting stream connected")

	events, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()
	go h.pumpEvents(conn, events, wsLog)

	for {
		var msg ws.RequestEnvelope
		frame, err := conn.Read(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionAnswer:
			h.handleAnswer(conn, ctrl, frame)
		case ws.ActionFlag:
			h.handleFlag(conn, ctrl, frame)
		case ws.ActionGoto:
			h.handleGoto(conn, ctrl, frame)
		case ws.ActionSubmit:
			h.handleSubmit(conn, ctrl, wsLog)
		case ws.ActionPing:
			conn.WriteTyped(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			conn.WriteError("unknown action: " + string(msg.Action))
		}
	}
}

// pumpEvents forwards controller events until the subscription closes.
func (h *WSHandler) pumpEvents(conn *ws.Conn, events <-chan session.Event, wsLog zerolog.Logger) {
	for ev := range events {
		var err error
		switch ev.Kind {
		case session.EventTick:
			err = conn.WriteTyped(ws.TickResponse{Event: ws.EventTick, Remaining: ev.Remaining})
		case session.EventExpired:
			err = conn.WriteTyped(ws.ExpiredResponse{Event: ws.EventExpired})
		case session.EventSubmitted:
			err = conn.WriteTyped(ws.SubmittedResponse{Event: ws.EventSubmitted, Status: "completed", Result: ev.Result})
		case session.EventSubmitFailed:
			err = conn.WriteTyped(ws.SubmittedResponse{Event: ws.EventSubmitted, Status: "failed"})
		}
		if err != nil {
			wsLog.Debug().Err(err).Msg("Stream write failed, stopping pump")
			return
		}
	}
}

func (h *WSHandler) handleAnswer(conn *ws.Conn, ctrl *session.Controller, frame []byte) {
	var req ws.AnswerRequest
	if err := ws.DecodeMessage(frame, &req); err != nil {
		conn.WriteError("malformed answer payload")
		return
	}
	if req.QID == "" || req.Choice == "" {
		conn.WriteError("q_id and choice are required")
		return
	}
	if _, err := uuid.Parse(req.QID); err != nil {
		conn.WriteError("invalid q_id format")
		return
	}

	if err := ctrl.SelectAnswer(req.QID, req.Choice); err != nil {
		conn.WriteError(sittingErrorMessage(err))
		return
	}
	answered, total := ctrl.Progress()
	conn.WriteTyped(ws.SavedResponse{
		Event:    ws.EventSaved,
		QID:      req.QID,
		Answered: answered,
		Total:    total,
	})
}

func (h *WSHandler) handleFlag(conn *ws.Conn, ctrl *session.Controller, frame []byte) {
	var req ws.FlagRequest
	if err := ws.DecodeMessage(frame, &req); err != nil {
		conn.WriteError("malformed flag payload")
		return
	}
	if req.QID == "" {
		conn.WriteError("q_id is required")
		return
	}

	flagged, err := ctrl.ToggleFlag(req.QID)
	if err != nil {
		conn.WriteError(sittingErrorMessage(err))
		return
	}
	conn.WriteTyped(ws.FlaggedResponse{Event: ws.EventFlagged, QID: req.QID, Flagged: flagged})
}

func (h *WSHandler) handleGoto(conn *ws.Conn, ctrl *session.Controller, frame []byte) {
	var req ws.GotoRequest
	if err := ws.DecodeMessage(frame, &req); err != nil {
		conn.WriteError("malformed goto payload")
		return
	}

	anchor, found := ctrl.GoToQuestion(req.QID)
	conn.WriteTyped(ws.AnchorResponse{Event: ws.EventAnchor, QID: req.QID, Found: found, Anchor: anchor})
}

// handleSubmit skips the confirmation step and submits directly; the
// submitted/failed outcome reaches the client through the event pump.
func (h *WSHandler) handleSubmit(conn *ws.Conn, ctrl *session.Controller, wsLog zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := ctrl.ConfirmSubmit(ctx); err != nil {
		wsLog.Warn().Err(err).Msg("Stream submit rejected")
		conn.WriteError(sittingErrorMessage(err))
	}
}

func sittingErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrUnknownQuestion):
		return "question does not belong to this exam"
	case errors.Is(err, session.ErrInvalidChoice):
		return "choice is not an option on this question"
	case errors.Is(err, session.ErrFrozen):
		return "sitting is already submitted"
	case errors.Is(err, session.ErrPhaseConflict):
		return "action not allowed in the current state"
	case errors.Is(err, session.ErrSubmissionFailed):
		return "submission failed, answers retained; retry"
	default:
		return "internal error"
	}
}
