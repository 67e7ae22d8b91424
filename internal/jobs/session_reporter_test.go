package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"algoview/internal/store"
)

type fakeTimeKeeper struct {
	expired map[string]bool
}

func (k *fakeTimeKeeper) IsTimeExpired(sessionID string) bool {
	return k.expired[sessionID]
}

func TestSessionReporterRunDoesNotDeleteSessions(t *testing.T) {
	sessionStore := store.NewSessionStore()
	live := sessionStore.Create("two-sum")
	stale := sessionStore.Create("two-sum")

	keeper := &fakeTimeKeeper{expired: map[string]bool{stale.SessionID: true}}
	job := NewSessionReporterJob(sessionStore, keeper, "*/5 * * * *", zap.NewNop())

	job.Run()

	// advisory only: expired sessions survive the report pass
	_, ok := sessionStore.Get(live.SessionID)
	assert.True(t, ok)
	_, ok = sessionStore.Get(stale.SessionID)
	assert.True(t, ok)
	assert.Equal(t, 2, sessionStore.Count())
}

func TestSessionReporterStartRejectsBadSchedule(t *testing.T) {
	job := NewSessionReporterJob(store.NewSessionStore(), &fakeTimeKeeper{}, "not a schedule", zap.NewNop())

	err := job.Start()
	assert.Error(t, err)
}

func TestSessionReporterStartAndStop(t *testing.T) {
	job := NewSessionReporterJob(store.NewSessionStore(), &fakeTimeKeeper{}, "*/5 * * * *", zap.NewNop())

	assert.NoError(t, job.Start())
	job.Stop()
}
