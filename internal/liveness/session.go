package liveness

import (
	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

// Session drives one liveness attempt frame by frame. It owns the
// detection state and, alongside it, the nod detector's roll history —
// detector memory is not user-visible progress, so it lives next to the
// state rather than inside it.
//
// A session is single-owner: exactly one goroutine may call EvaluateFrame
// at a time, and frames must arrive in capture order or the nod window
// loses its temporal meaning. Callers that accept frames concurrently
// serialize around the session.
type Session struct {
	cfg     Config
	reducer Reducer
	nod     *NodDetector
	state   domain.DetectionState
	frames  int
}

// NewSession creates a session at the initial state: no face, challenge
// index zero, zero progress.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:     cfg,
		reducer: NewReducer(len(cfg.Challenges)),
		nod:     NewNodDetector(),
	}
}

// EvaluateFrame runs one frame through qualification, the current
// challenge and the reducer, returning the resulting state. measurement
// may be nil when faceCount is not exactly one.
//
// Qualification order: exactly one face, containment of the inset face
// box in the preview guide, then, only while the face is not yet
// acquired, the oversize gate. Challenge evaluation runs on every
// qualifying frame until the sequence completes. Once complete the
// terminal state is frozen: further frames, qualifying or not, return
// it unchanged.
func (s *Session) EvaluateFrame(m *domain.FaceMeasurement, faceCount int) domain.DetectionState {
	if s.state.Complete {
		return s.state
	}

	s.frames++

	if faceCount != 1 || m == nil {
		return s.reset()
	}

	adjusted := m.Bounds.Shrink(s.cfg.EdgeInset)
	if !s.cfg.Preview.Contains(adjusted) {
		return s.reset()
	}

	if !s.state.FaceDetected {
		// Oversize is judged on the raw, un-inset face box.
		limit := s.cfg.oversizeLimit()
		if m.Bounds.Width >= limit && m.Bounds.Height >= limit {
			s.state = s.reducer.Apply(s.state, FaceTooBig{TooBig: true})
			return s.state
		}
		if s.state.FaceTooBig {
			s.state = s.reducer.Apply(s.state, FaceTooBig{TooBig: false})
		}
		s.state = s.reducer.Apply(s.state, FaceDetected{Detected: true})
	}

	ch := s.cfg.Challenges[s.state.ChallengeIndex]
	var ok bool
	if ch.Kind == domain.ChallengeNod {
		ok = s.nod.Observe(m.RollAngle, ch.Threshold)
	} else {
		ok = satisfied(ch, *m)
	}
	if ok {
		s.state = s.reducer.Apply(s.state, ChallengeAdvanced{})
	}

	return s.state
}

// reset discards all progress and the nod history. The roll window must
// not survive a face loss: stale angles from the previous acquisition
// would make the first post-reacquire average meaningless.
func (s *Session) reset() domain.DetectionState {
	s.state = s.reducer.Apply(s.state, FaceDetected{Detected: false})
	s.nod.Reset()
	return s.state
}

// State returns the current detection state.
func (s *Session) State() domain.DetectionState {
	return s.state
}

// Instruction returns the prompt for the current challenge. There is no
// instruction before a well-positioned face is acquired, while the face
// is oversize, or after the sequence completes.
func (s *Session) Instruction() (string, bool) {
	if !s.state.FaceDetected || s.state.FaceTooBig || s.state.Complete {
		return "", false
	}
	return s.cfg.Challenges[s.state.ChallengeIndex].Instruction, true
}

// Challenges returns the configured challenge sequence.
func (s *Session) Challenges() []domain.Challenge {
	return s.cfg.Challenges
}

// Frames returns how many frames the session has evaluated.
func (s *Session) Frames() int {
	return s.frames
}
