package models

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

type CreateSessionResponse struct {
	SessionID    string  `json:"session_id"`
	EphemeralKey string  `json:"ephemeral_key"`
	Problem      Problem `json:"problem"`
}

type SessionStatusResponse struct {
	SessionID     string  `json:"session_id"`
	ProblemID     string  `json:"problem_id"`
	CurrentPhase  string  `json:"current_phase"`
	ElapsedTime   float64 `json:"elapsed_time"`
	RemainingTime float64 `json:"remaining_time"`
	LineCount     int     `json:"line_count"`
	IsActive      bool    `json:"is_active"`
}

type SessionResultsResponse struct {
	SessionID     string         `json:"session_id"`
	Problem       Problem        `json:"problem"`
	CandidateCode string         `json:"candidate_code"`
	FinalReview   *CodeReview    `json:"final_review"`
	Notes         InterviewNotes `json:"llm_notes"`
	FinalRatings  *FinalRatings  `json:"final_ratings"`
}

type DeleteSessionResponse struct {
	SessionID string `json:"session_id"`
	Deleted   bool   `json:"deleted"`
}

type ProblemListResponse struct {
	Problems []Problem `json:"problems"`
}
