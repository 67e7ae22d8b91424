package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"algoview/internal/models"
)

func TestCreateSession(t *testing.T) {
	s := NewSessionStore()

	session := s.Create("two-sum")

	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "two-sum", session.ProblemID)
	assert.Equal(t, models.PhaseIntroduction, session.CurrentPhase)
	assert.True(t, session.IsActive)
	assert.WithinDuration(t, time.Now(), session.StartTime, time.Second)
	assert.Empty(t, session.Reviews)
	assert.Zero(t, session.LastReviewLine)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := NewSessionStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		session := s.Create("two-sum")
		assert.False(t, seen[session.SessionID], "duplicate session id")
		seen[session.SessionID] = true
	}
	assert.Equal(t, 100, s.Count())
}

func TestGetSession(t *testing.T) {
	s := NewSessionStore()
	created := s.Create("two-sum")

	got, ok := s.Get(created.SessionID)
	assert.True(t, ok)
	assert.Same(t, created, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestDeleteSession(t *testing.T) {
	s := NewSessionStore()
	session := s.Create("two-sum")

	assert.True(t, s.Delete(session.SessionID))
	assert.False(t, s.Delete(session.SessionID))

	_, ok := s.Get(session.SessionID)
	assert.False(t, ok)
}

func TestAllSessions(t *testing.T) {
	s := NewSessionStore()
	assert.Empty(t, s.All())

	s.Create("two-sum")
	s.Create("two-sum")

	assert.Len(t, s.All(), 2)
}

func TestConcurrentAccess(t *testing.T) {
	s := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := s.Create("two-sum")
			if _, ok := s.Get(session.SessionID); !ok {
				t.Errorf("created session not found")
			}
			s.All()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Count())
}
