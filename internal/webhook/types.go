package webhook

import (
	"time"

	"github.com/google/uuid"
)

// Job is one queued delivery. Rows live in webhook_queue and are
// processed by the Worker with at-least-once semantics.
type Job struct {
	ID          uuid.UUID  `json:"id"`
	EventType   string     `json:"event_type"`
	Payload     []byte     `json:"payload"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
	Status      string     `json:"status"`
	LastError   string     `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventPayload is the JSON body delivered to the configured endpoint.
type EventPayload struct {
	Type      string      `json:"type"`
	SessionID uuid.UUID   `json:"session_id"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
