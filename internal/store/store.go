package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"algoview/internal/models"
)

// SessionStore holds all live interview sessions keyed by ID. Pure in-memory
// CRUD; callers own the business invariants. Sessions live until explicitly
// deleted or the process exits.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.InterviewSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.InterviewSession),
	}
}

// Create allocates a session with a fresh ID and the current timestamp.
func (s *SessionStore) Create(problemID string) *models.InterviewSession {
	session := &models.InterviewSession{
		SessionID:    uuid.New().String(),
		ProblemID:    problemID,
		StartTime:    time.Now(),
		CurrentPhase: models.PhaseIntroduction,
		IsActive:     true,
	}

	s.mu.Lock()
	s.sessions[session.SessionID] = session
	s.mu.Unlock()

	return session
}

// Get returns the session and whether it exists.
func (s *SessionStore) Get(sessionID string) (*models.InterviewSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// Delete removes the session and reports whether it existed.
func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}

// All returns every live session.
func (s *SessionStore) All() []*models.InterviewSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*models.InterviewSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
