package messaging

import "time"

// Subjects for chat lifecycle events.
const (
	SubjectQueryProcessed = "seclens.chat.query.processed"
)

// QueryProcessedEvent is published after each chat turn completes.
type QueryProcessedEvent struct {
	SessionID   string    `json:"session_id"`
	Intent      string    `json:"intent"`
	UserQuery   string    `json:"user_query"`
	ResultCount int       `json:"result_count"`
	HighRisk    int       `json:"high_risk"`
	Timestamp   time.Time `json:"timestamp"`
}
