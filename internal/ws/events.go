package ws

import (
	"time"

	"github.com/google/uuid"
)

// Event is one state update pushed to the clients watching a session.
// Type values come from the service layer (session.detected,
// challenge.advanced, session.reset, session.too_big,
// session.completed).
type Event struct {
	SessionID uuid.UUID   `json:"-"`
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
