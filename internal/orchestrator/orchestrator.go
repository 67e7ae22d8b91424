package orchestrator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"algoview/internal/models"
	"algoview/internal/store"
)

// CodeReviewer is the review collaborator. Implementations never fail; on
// provider trouble they return a degraded review instead.
type CodeReviewer interface {
	Review(ctx context.Context, code string, problem *models.Problem, isFinal bool) *models.CodeReview
}

// ContextInjector pushes text into an ongoing realtime conversation.
type ContextInjector interface {
	InjectContext(ctx context.Context, realtimeSessionID, content string) error
}

// ProblemCatalog resolves problem IDs to catalog entries.
type ProblemCatalog interface {
	Get(id string) (*models.Problem, bool)
}

// Orchestrator is the interview coordination core: it consumes code-update
// and completion events, decides when to trigger a review, records review
// results on the session, relays them into the realtime conversation, and
// tracks the interview clock.
type Orchestrator struct {
	store           *store.SessionStore
	catalog         ProblemCatalog
	reviewer        CodeReviewer
	injector        ContextInjector
	reviewThreshold int
	duration        time.Duration
	logger          *zap.Logger

	now func() time.Time
}

func New(
	sessionStore *store.SessionStore,
	catalog ProblemCatalog,
	reviewer CodeReviewer,
	injector ContextInjector,
	reviewThreshold int,
	duration time.Duration,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:           sessionStore,
		catalog:         catalog,
		reviewer:        reviewer,
		injector:        injector,
		reviewThreshold: reviewThreshold,
		duration:        duration,
		logger:          logger,
		now:             time.Now,
	}
}

// HandleCodeUpdate records the latest code buffer and triggers an
// incremental review when the line count has advanced at least
// reviewThreshold lines past the last reviewed line. Returns nil when no
// review was triggered or the session is unknown.
//
// The baseline only moves when a review triggers, so deleting code and
// rewriting past the threshold still reviews, and a single large paste
// triggers exactly one review.
func (o *Orchestrator) HandleCodeUpdate(ctx context.Context, sessionID, code string, lineCount int) *models.CodeReview {
	session, ok := o.store.Get(sessionID)
	if !ok {
		return nil
	}

	session.UpdateCode(code, lineCount)

	if session.LinesSinceReview() < o.reviewThreshold {
		return nil
	}

	problem, ok := o.catalog.Get(session.ProblemID)
	if !ok {
		o.logger.Warn("session references unknown problem",
			zap.String("session_id", sessionID),
			zap.String("problem_id", session.ProblemID))
		return nil
	}

	review := o.reviewer.Review(ctx, code, problem, false)
	review.LineCount = lineCount
	review.Timestamp = o.now()

	// The session may have been deleted while the review was in flight;
	// the result is discarded rather than recreating the session.
	session, ok = o.store.Get(sessionID)
	if !ok {
		o.logger.Info("discarding review for deleted session",
			zap.String("session_id", sessionID))
		return nil
	}

	session.AppendReview(*review, true)

	o.injectReviewContext(ctx, session, formatReviewContext(review))

	o.logger.Info("incremental review triggered",
		zap.String("session_id", sessionID),
		zap.Int("line_count", lineCount),
		zap.Int("bugs", len(review.Bugs)))

	return review
}

// HandleCodeCompletion runs the comprehensive final review against the
// session's current code, stores it, relays it to the conversation, and
// forces the session into the evaluation phase. Returns nil when the
// session is unknown.
func (o *Orchestrator) HandleCodeCompletion(ctx context.Context, sessionID string) *models.CodeReview {
	session, ok := o.store.Get(sessionID)
	if !ok {
		return nil
	}

	problem, ok := o.catalog.Get(session.ProblemID)
	if !ok {
		o.logger.Warn("session references unknown problem",
			zap.String("session_id", sessionID),
			zap.String("problem_id", session.ProblemID))
		return nil
	}

	code, lineCount := session.CodeSnapshot()

	review := o.reviewer.Review(ctx, code, problem, true)
	review.LineCount = lineCount
	review.Timestamp = o.now()

	session, ok = o.store.Get(sessionID)
	if !ok {
		o.logger.Info("discarding final review for deleted session",
			zap.String("session_id", sessionID))
		return nil
	}

	session.AppendReview(*review, false)

	o.injectReviewContext(ctx, session, formatFinalReviewContext(review))

	session.SetPhase(models.PhaseEvaluation)

	o.logger.Info("final review completed",
		zap.String("session_id", sessionID),
		zap.Int("line_count", lineCount))

	return review
}

// injectReviewContext forwards formatted review context to the realtime
// conversation, if one is associated. Best effort: failure is logged and
// the stored review stands.
func (o *Orchestrator) injectReviewContext(ctx context.Context, session *models.InterviewSession, content string) {
	realtimeID := session.RealtimeSession()
	if realtimeID == "" {
		return
	}
	if err := o.injector.InjectContext(ctx, realtimeID, content); err != nil {
		o.logger.Warn("context injection failed",
			zap.Error(err),
			zap.String("session_id", session.SessionID))
	}
}

// ElapsedTime returns the time since session creation.
func (o *Orchestrator) ElapsedTime(sessionID string) (time.Duration, bool) {
	session, ok := o.store.Get(sessionID)
	if !ok {
		return 0, false
	}
	return o.now().Sub(session.StartTime), true
}

// RemainingTime returns the unspent interview budget, clamped at zero.
func (o *Orchestrator) RemainingTime(sessionID string) (time.Duration, bool) {
	elapsed, ok := o.ElapsedTime(sessionID)
	if !ok {
		return 0, false
	}
	remaining := o.duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// IsTimeExpired reports whether the interview budget is used up. Expiry is
// advisory; the orchestrator never terminates a session on its own.
func (o *Orchestrator) IsTimeExpired(sessionID string) bool {
	remaining, ok := o.RemainingTime(sessionID)
	return ok && remaining <= 0
}
