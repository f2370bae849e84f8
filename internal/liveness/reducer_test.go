package liveness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

func TestReducer_FaceDetected_Idempotent(t *testing.T) {
	r := NewReducer(5)

	once := r.Apply(domain.DetectionState{}, FaceDetected{Detected: true})
	twice := r.Apply(once, FaceDetected{Detected: true})

	assert.Equal(t, once, twice)
	assert.True(t, once.FaceDetected)
	assert.InDelta(t, 100.0/6.0, once.ProgressFill, 0.0001)
}

func TestReducer_FaceLost_ResetsEverything(t *testing.T) {
	r := NewReducer(5)

	// Build up an arbitrary mid-session state first.
	state := r.Apply(domain.DetectionState{}, FaceDetected{Detected: true})
	state = r.Apply(state, ChallengeAdvanced{})
	state = r.Apply(state, ChallengeAdvanced{})
	state = r.Apply(state, FaceTooBig{TooBig: true})
	require.NotEqual(t, domain.DetectionState{}, state)

	got := r.Apply(state, FaceDetected{Detected: false})

	assert.Equal(t, domain.DetectionState{}, got)
}

func TestReducer_FaceTooBig_OnlyTouchesFlag(t *testing.T) {
	r := NewReducer(5)

	state := r.Apply(domain.DetectionState{}, FaceDetected{Detected: true})
	before := state

	state = r.Apply(state, FaceTooBig{TooBig: true})
	assert.True(t, state.FaceTooBig)
	assert.Equal(t, before.ProgressFill, state.ProgressFill)
	assert.Equal(t, before.ChallengeIndex, state.ChallengeIndex)

	state = r.Apply(state, FaceTooBig{TooBig: false})
	assert.Equal(t, before, state)
}

func TestReducer_ProgressSequence(t *testing.T) {
	// Scenario: five challenges, detection takes the first slot, each
	// advance takes the next, exactly 100 on the last.
	r := NewReducer(5)

	state := r.Apply(domain.DetectionState{}, FaceDetected{Detected: true})
	assert.InDelta(t, 16.67, state.ProgressFill, 0.01)

	wantFills := []float64{33.33, 50, 66.67, 83.33, 100}
	for i, want := range wantFills {
		prev := state.ProgressFill
		state = r.Apply(state, ChallengeAdvanced{})

		assert.Greater(t, state.ProgressFill, prev, "progress must strictly increase")
		assert.InDelta(t, want, state.ProgressFill, 0.01)
		assert.LessOrEqual(t, state.ProgressFill, 100.0)

		if i == len(wantFills)-1 {
			assert.True(t, state.Complete)
			assert.Equal(t, 100.0, state.ProgressFill)
			assert.Equal(t, 5, state.ChallengeIndex)
		} else {
			assert.False(t, state.Complete)
			assert.Equal(t, i+1, state.ChallengeIndex)
		}
	}
}

type bogusEvent struct{}

func (bogusEvent) isEvent() {}

func TestReducer_UnknownEventPanics(t *testing.T) {
	r := NewReducer(5)

	assert.Panics(t, func() {
		r.Apply(domain.DetectionState{}, bogusEvent{})
	})
}
