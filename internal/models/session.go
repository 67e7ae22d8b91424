package models

import (
	"sync"
	"time"
)

// InterviewPhase identifies where the interview currently is.
type InterviewPhase string

const (
	PhaseIntroduction        InterviewPhase = "introduction"
	PhaseProblemPresentation InterviewPhase = "problem_presentation"
	PhaseClarification       InterviewPhase = "clarification"
	PhasePlanning            InterviewPhase = "planning"
	PhaseCoding              InterviewPhase = "coding"
	PhaseTesting             InterviewPhase = "testing"
	PhaseEvaluation          InterviewPhase = "evaluation"
	PhaseComplete            InterviewPhase = "complete"
)

var knownPhases = map[InterviewPhase]bool{
	PhaseIntroduction:        true,
	PhaseProblemPresentation: true,
	PhaseClarification:       true,
	PhasePlanning:            true,
	PhaseCoding:              true,
	PhaseTesting:             true,
	PhaseEvaluation:          true,
	PhaseComplete:            true,
}

// ValidPhase reports whether the value names a known interview phase.
// Clients may request any ordering between known phases; unknown names
// are rejected at the transport layer.
func ValidPhase(phase string) bool {
	return knownPhases[InterviewPhase(phase)]
}

// InterviewNotes holds the running observations the interviewer agent
// accumulates over the interview. Lists only ever grow.
type InterviewNotes struct {
	ClarifyingQuestions []string `json:"clarifying_questions"`
	TechnicalSkills     []string `json:"technical_skills"`
	SoftSkills          []string `json:"soft_skills"`
	Concerns            []string `json:"concerns"`
}

// FinalRatings is the 1-5 scorecard produced once at interview conclusion.
type FinalRatings struct {
	Communication   int    `json:"communication"`
	ProblemSolving  int    `json:"problem_solving"`
	CodeQuality     int    `json:"code_quality"`
	TechnicalSkills int    `json:"technical_skills"`
	Optimization    int    `json:"optimization"`
	OverallFeedback string `json:"overall_feedback"`
	WouldHire       bool   `json:"would_hire"`
}

// InterviewSession is one candidate's attempt at one problem. Sessions live
// in memory for the lifetime of the process; there is no persistence.
//
// A session is mutated by the websocket read loop (one per session) and read
// by HTTP handlers, so all field access goes through the mutex-guarded
// methods below.
type InterviewSession struct {
	mu sync.Mutex

	SessionID         string
	ProblemID         string
	StartTime         time.Time
	CurrentPhase      InterviewPhase
	Code              string
	LineCount         int
	LastReviewLine    int
	Notes             InterviewNotes
	Reviews           []CodeReview
	FinalRatings      *FinalRatings
	RealtimeSessionID string
	IsActive          bool
}

// UpdateCode overwrites the code buffer wholesale. Last write wins, no
// diffing. The client-reported line count is stored as-is.
func (s *InterviewSession) UpdateCode(code string, lineCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Code = code
	s.LineCount = lineCount
}

// CodeSnapshot returns the current code buffer and line count.
func (s *InterviewSession) CodeSnapshot() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Code, s.LineCount
}

// LinesSinceReview is the line-count advance since the last triggered
// review. Decreases (the candidate deleting code) can make this negative;
// the baseline only moves forward when a review triggers.
func (s *InterviewSession) LinesSinceReview() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LineCount - s.LastReviewLine
}

// AppendReview appends a review to the append-only log. When
// advanceBaseline is set the review baseline moves to the review's line
// count (incremental reviews); final reviews leave the baseline alone.
func (s *InterviewSession) AppendReview(review CodeReview, advanceBaseline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reviews = append(s.Reviews, review)
	if advanceBaseline {
		s.LastReviewLine = review.LineCount
	}
}

// ReviewCount returns the number of stored reviews.
func (s *InterviewSession) ReviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Reviews)
}

// FinalReview returns the first review flagged final, if any.
func (s *InterviewSession) FinalReview() *CodeReview {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Reviews {
		if s.Reviews[i].IsFinal {
			review := s.Reviews[i]
			return &review
		}
	}
	return nil
}

// Phase returns the current interview phase.
func (s *InterviewSession) Phase() InterviewPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CurrentPhase
}

// SetPhase moves the session to the given phase. Ordering between known
// phases is not validated here; see ValidPhase for name checking.
func (s *InterviewSession) SetPhase(phase InterviewPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentPhase = phase
}

// SetRealtimeSession records the external conversation reference once the
// credential exchange succeeds.
func (s *InterviewSession) SetRealtimeSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RealtimeSessionID = id
}

// RealtimeSession returns the external conversation reference, or "" when
// no conversation is associated.
func (s *InterviewSession) RealtimeSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.RealtimeSessionID
}

// NotesSnapshot returns a copy of the accumulated interviewer notes.
func (s *InterviewSession) NotesSnapshot() InterviewNotes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Notes
}

// RatingsSnapshot returns the final ratings, or nil if not yet recorded.
func (s *InterviewSession) RatingsSnapshot() *FinalRatings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.FinalRatings
}
