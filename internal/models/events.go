package models

// Websocket event kinds. Clients send the first four; everything else is
// server-to-client.
const (
	EventCodeUpdate      = "code_update"
	EventCodeComplete    = "code_complete"
	EventPhaseTransition = "phase_transition"
	EventPing            = "ping"

	EventConnected       = "connected"
	EventReviewTriggered = "review_triggered"
	EventFinalReview     = "final_review"
	EventPhaseUpdated    = "phase_updated"
	EventPong            = "pong"
	EventError           = "error"
)

// ClientEvent is one inbound websocket message. Fields beyond Type are
// populated depending on the event kind.
type ClientEvent struct {
	Type      string `json:"type"`
	Code      string `json:"code,omitempty"`
	LineCount int    `json:"line_count,omitempty"`
	Phase     string `json:"phase,omitempty"`
}

// ServerEvent is one outbound websocket message.
type ServerEvent struct {
	Type          string      `json:"type"`
	SessionID     string      `json:"session_id,omitempty"`
	Phase         string      `json:"phase,omitempty"`
	LineCount     int         `json:"line_count,omitempty"`
	Review        *CodeReview `json:"review,omitempty"`
	RemainingTime *float64    `json:"remaining_time,omitempty"`
	Message       string      `json:"message,omitempty"`
}
