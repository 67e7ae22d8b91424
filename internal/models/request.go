package models

// DefaultProblemID is used when a create request names no problem.
const DefaultProblemID = "two-sum"

type CreateSessionRequest struct {
	ProblemID string `json:"problem_id"`
}

// implements the Validator interface
func (r *CreateSessionRequest) Validate() error {
	if r.ProblemID == "" {
		r.ProblemID = DefaultProblemID
	}
	return nil
}
