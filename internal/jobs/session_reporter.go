package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"algoview/internal/metrics"
	"algoview/internal/store"
)

// TimeKeeper reports whether a session's interview budget has run out.
type TimeKeeper interface {
	IsTimeExpired(sessionID string) bool
}

// SessionReporterJob periodically logs live and expired session counts and
// refreshes the session gauge. Purely advisory: expired sessions are
// reported, never deleted — session lifetime is owned by the handlers.
type SessionReporterJob struct {
	store      *store.SessionStore
	timeKeeper TimeKeeper
	schedule   string
	cron       *cron.Cron
	logger     *zap.Logger
}

func NewSessionReporterJob(sessionStore *store.SessionStore, timeKeeper TimeKeeper, schedule string, logger *zap.Logger) *SessionReporterJob {
	return &SessionReporterJob{
		store:      sessionStore,
		timeKeeper: timeKeeper,
		schedule:   schedule,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start begins the scheduled reporting job.
func (j *SessionReporterJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.Run)
	if err != nil {
		return fmt.Errorf("failed to schedule session reporter: %w", err)
	}

	j.cron.Start()
	j.logger.Info("session reporter started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduled job.
func (j *SessionReporterJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
		j.logger.Info("session reporter stopped")
	}
}

// Run performs a single report pass.
func (j *SessionReporterJob) Run() {
	sessions := j.store.All()

	expired := 0
	for _, session := range sessions {
		if j.timeKeeper.IsTimeExpired(session.SessionID) {
			expired++
		}
	}

	metrics.SetActiveSessions(len(sessions))
	j.logger.Info("session report",
		zap.Int("live_sessions", len(sessions)),
		zap.Int("expired_sessions", expired))
}
