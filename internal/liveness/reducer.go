package liveness

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

// Event is one input to the detection reducer. The set is closed: the
// three types below are the only values a well-formed caller may apply,
// and the reducer panics on anything else.
type Event interface {
	isEvent()
}

// FaceDetected reports whether a single, well-positioned face is present.
type FaceDetected struct {
	Detected bool
}

// FaceTooBig reports whether the face fills too much of the preview.
type FaceTooBig struct {
	TooBig bool
}

// ChallengeAdvanced moves the session to the next challenge in sequence.
type ChallengeAdvanced struct{}

func (FaceDetected) isEvent()      {}
func (FaceTooBig) isEvent()        {}
func (ChallengeAdvanced) isEvent() {}

// Reducer is the pure transition function over DetectionState. It holds
// no state of its own beyond the challenge count; every Apply consumes a
// state value and returns the next one.
type Reducer struct {
	steps int
}

// NewReducer creates a reducer for a sequence of steps challenges.
func NewReducer(steps int) Reducer {
	return Reducer{steps: steps}
}

// Apply transitions state by one event. Losing the face resets the whole
// state; re-detecting an already-detected face is a no-op; advancing past
// the final challenge pins progress at exactly 100 and marks completion.
func (r Reducer) Apply(state domain.DetectionState, ev Event) domain.DetectionState {
	switch e := ev.(type) {
	case FaceDetected:
		if !e.Detected {
			return domain.DetectionState{}
		}
		if state.FaceDetected {
			return state
		}
		state.FaceDetected = true
		// Detection itself takes the first progress slot, ahead of any
		// challenge.
		state.ProgressFill = r.slot()
		return state

	case FaceTooBig:
		state.FaceTooBig = e.TooBig
		return state

	case ChallengeAdvanced:
		next := state.ChallengeIndex + 1
		state.ChallengeIndex = next
		if next == r.steps {
			state.Complete = true
			state.ProgressFill = 100
		} else {
			state.ProgressFill = r.slot() * float64(next+1)
		}
		return state

	default:
		panic(fmt.Sprintf("liveness: unknown event %T", ev))
	}
}

// slot is the progress share of one step; detection plus each challenge
// split 100 evenly.
func (r Reducer) slot() float64 {
	return 100 / float64(r.steps+1)
}
