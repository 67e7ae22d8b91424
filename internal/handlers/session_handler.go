package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"algoview/internal/metrics"
	"algoview/internal/middleware"
	"algoview/internal/models"
	"algoview/internal/orchestrator"
	"algoview/internal/problems"
	"algoview/internal/realtime"
	"algoview/internal/store"
	"algoview/internal/utils"
)

// CredentialIssuer issues ephemeral credentials for a new realtime
// conversation.
type CredentialIssuer interface {
	CreateEphemeralKey(ctx context.Context) (*realtime.EphemeralSession, error)
}

type SessionHandler struct {
	store        *store.SessionStore
	catalog      *problems.Catalog
	orchestrator *orchestrator.Orchestrator
	gateway      CredentialIssuer
	logger       *zap.Logger
}

func NewSessionHandler(
	sessionStore *store.SessionStore,
	catalog *problems.Catalog,
	orch *orchestrator.Orchestrator,
	gateway CredentialIssuer,
	logger *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		store:        sessionStore,
		catalog:      catalog,
		orchestrator: orch,
		gateway:      gateway,
		logger:       logger,
	}
}

// CreateHandler creates a session and exchanges credentials for the
// realtime conversation. If the credential exchange fails the session is
// deleted again so no half-initialized interview survives.
func (h *SessionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateSessionRequest](r)

	problem, ok := h.catalog.Get(req.ProblemID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "problem_not_found",
			Message: "Problem not found: " + req.ProblemID,
		})
		return
	}

	session := h.store.Create(req.ProblemID)

	eph, err := h.gateway.CreateEphemeralKey(r.Context())
	if err != nil {
		h.store.Delete(session.SessionID)
		h.logger.Error("failed to create realtime credential",
			zap.Error(err),
			zap.String("session_id", session.SessionID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "realtime_error",
			Message: "Failed to create realtime session",
		})
		return
	}

	if eph.SessionID != "" {
		session.SetRealtimeSession(eph.SessionID)
	}

	metrics.SetActiveSessions(h.store.Count())
	h.logger.Info("interview session created",
		zap.String("session_id", session.SessionID),
		zap.String("problem_id", req.ProblemID))

	utils.JSON(w, http.StatusOK, models.CreateSessionResponse{
		SessionID:    session.SessionID,
		EphemeralKey: eph.Value,
		Problem:      *problem,
	})
}

// StatusHandler reports phase, clock and code progress for a session.
func (h *SessionHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	session, ok := h.store.Get(sessionID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Session not found",
		})
		return
	}

	elapsed, _ := h.orchestrator.ElapsedTime(sessionID)
	remaining, _ := h.orchestrator.RemainingTime(sessionID)
	_, lineCount := session.CodeSnapshot()

	utils.JSON(w, http.StatusOK, models.SessionStatusResponse{
		SessionID:     session.SessionID,
		ProblemID:     session.ProblemID,
		CurrentPhase:  string(session.Phase()),
		ElapsedTime:   elapsed.Seconds(),
		RemainingTime: remaining.Seconds(),
		LineCount:     lineCount,
		IsActive:      session.IsActive,
	})
}

// ResultsHandler returns the final interview artifacts.
func (h *SessionHandler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	session, ok := h.store.Get(sessionID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Session not found",
		})
		return
	}

	problem, ok := h.catalog.Get(session.ProblemID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "problem_not_found",
			Message: "Problem not found: " + session.ProblemID,
		})
		return
	}

	code, _ := session.CodeSnapshot()

	utils.JSON(w, http.StatusOK, models.SessionResultsResponse{
		SessionID:     session.SessionID,
		Problem:       *problem,
		CandidateCode: code,
		FinalReview:   session.FinalReview(),
		Notes:         session.NotesSnapshot(),
		FinalRatings:  session.RatingsSnapshot(),
	})
}

// DeleteHandler removes a session explicitly.
func (h *SessionHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	if !h.store.Delete(sessionID) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "Session not found",
		})
		return
	}

	metrics.SetActiveSessions(h.store.Count())
	h.logger.Info("interview session deleted", zap.String("session_id", sessionID))

	utils.JSON(w, http.StatusOK, models.DeleteSessionResponse{
		SessionID: sessionID,
		Deleted:   true,
	})
}

// ProblemsHandler lists the full catalog.
func (h *SessionHandler) ProblemsHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, models.ProblemListResponse{
		Problems: h.catalog.All(),
	})
}
