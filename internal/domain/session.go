package domain

import (
	"time"

	"github.com/google/uuid"
)

// DetectionState is the user-visible progress of one liveness session.
// Invariants: Complete is true iff ChallengeIndex equals the challenge
// count; ProgressFill never decreases while FaceDetected holds and drops
// back to zero when the face is lost.
type DetectionState struct {
	FaceDetected   bool    `json:"face_detected"`
	FaceTooBig     bool    `json:"face_too_big"`
	ChallengeIndex int     `json:"challenge_index"`
	ProgressFill   float64 `json:"progress_fill"`
	Complete       bool    `json:"complete"`
}

// Session is the service-level record for one liveness attempt in flight.
// The detection state and nod history live in the liveness core; this
// record carries identity and expiry.
type Session struct {
	ID        uuid.UUID `json:"id"`
	ClientRef string    `json:"client_ref,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired checks if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Attempt is the audit record written when a session finishes, whether it
// completed every challenge or was abandoned.
type Attempt struct {
	ID               uuid.UUID `json:"id"`
	SessionID        uuid.UUID `json:"session_id"`
	ClientRef        string    `json:"client_ref,omitempty"`
	Completed        bool      `json:"completed"`
	ChallengesPassed int       `json:"challenges_passed"`
	FramesSeen       int       `json:"frames_seen"`
	DurationMs       int64     `json:"duration_ms"`
	CreatedAt        time.Time `json:"created_at"`
}
