package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"algoview/internal/metrics"
	"algoview/internal/models"
	"algoview/internal/orchestrator"
	"algoview/internal/store"
)

// WSHandler runs the per-session persistent connection: one read loop per
// interview, consuming code updates and completion events in receipt order.
type WSHandler struct {
	store        *store.SessionStore
	orchestrator *orchestrator.Orchestrator
	upgrader     websocket.Upgrader
	logger       *zap.Logger
}

func NewWSHandler(sessionStore *store.SessionStore, orch *orchestrator.Orchestrator, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		store:        sessionStore,
		orchestrator: orch,
		upgrader:     websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:       logger,
	}
}

// InterviewWS upgrades the connection and serves the interview event loop.
// Protocol errors are reported as error events and keep the connection
// open; only a dead connection or an unknown session closes it. Connection
// loss does not touch session state.
func (h *WSHandler) InterviewWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	metrics.WSConnOpened()
	defer metrics.WSConnClosed()

	session, ok := h.store.Get(sessionID)
	if !ok {
		conn.WriteJSON(models.ServerEvent{
			Type:    models.EventError,
			Message: "Session not found",
		})
		return
	}

	conn.WriteJSON(models.ServerEvent{
		Type:      models.EventConnected,
		SessionID: sessionID,
		Phase:     string(session.Phase()),
	})

	for {
		var event models.ClientEvent
		if err := conn.ReadJSON(&event); err != nil {
			h.logger.Info("websocket closed",
				zap.String("session_id", sessionID),
				zap.Error(err))
			return
		}

		switch event.Type {
		case models.EventCodeUpdate:
			h.handleCodeUpdate(r, conn, sessionID, &event)
		case models.EventCodeComplete:
			h.handleCodeComplete(r, conn, sessionID)
		case models.EventPhaseTransition:
			h.handlePhaseTransition(conn, sessionID, event.Phase)
		case models.EventPing:
			h.handlePing(conn, sessionID)
		default:
			conn.WriteJSON(models.ServerEvent{
				Type:    models.EventError,
				Message: "Unknown message type: " + event.Type,
			})
		}
	}
}

func (h *WSHandler) handleCodeUpdate(r *http.Request, conn *websocket.Conn, sessionID string, event *models.ClientEvent) {
	review := h.orchestrator.HandleCodeUpdate(r.Context(), sessionID, event.Code, event.LineCount)
	if review == nil {
		return
	}

	metrics.ReviewTriggered("incremental")
	conn.WriteJSON(models.ServerEvent{
		Type:      models.EventReviewTriggered,
		LineCount: event.LineCount,
		Review:    review,
	})
}

func (h *WSHandler) handleCodeComplete(r *http.Request, conn *websocket.Conn, sessionID string) {
	review := h.orchestrator.HandleCodeCompletion(r.Context(), sessionID)
	if review == nil {
		conn.WriteJSON(models.ServerEvent{
			Type:    models.EventError,
			Message: "Session not found",
		})
		return
	}

	metrics.ReviewTriggered("final")
	conn.WriteJSON(models.ServerEvent{
		Type:   models.EventFinalReview,
		Review: review,
	})
	conn.WriteJSON(models.ServerEvent{
		Type:  models.EventPhaseUpdated,
		Phase: string(models.PhaseEvaluation),
	})
}

func (h *WSHandler) handlePhaseTransition(conn *websocket.Conn, sessionID, phase string) {
	// Any ordering between known phases is accepted; only unknown names
	// are rejected.
	if !models.ValidPhase(phase) {
		conn.WriteJSON(models.ServerEvent{
			Type:    models.EventError,
			Message: "Unknown phase: " + phase,
		})
		return
	}

	session, ok := h.store.Get(sessionID)
	if !ok {
		conn.WriteJSON(models.ServerEvent{
			Type:    models.EventError,
			Message: "Session not found",
		})
		return
	}

	session.SetPhase(models.InterviewPhase(phase))
	conn.WriteJSON(models.ServerEvent{
		Type:  models.EventPhaseUpdated,
		Phase: phase,
	})
}

func (h *WSHandler) handlePing(conn *websocket.Conn, sessionID string) {
	remaining, ok := h.orchestrator.RemainingTime(sessionID)
	if !ok {
		conn.WriteJSON(models.ServerEvent{
			Type:    models.EventError,
			Message: "Session not found",
		})
		return
	}

	seconds := remaining.Seconds()
	conn.WriteJSON(models.ServerEvent{
		Type:          models.EventPong,
		RemainingTime: &seconds,
	})
}
