package liveness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

func challengeByKind(t *testing.T, kind domain.ChallengeKind) domain.Challenge {
	t.Helper()
	for _, ch := range domain.DefaultChallenges() {
		if ch.Kind == kind {
			return ch
		}
	}
	t.Fatalf("no challenge of kind %s", kind)
	return domain.Challenge{}
}

func TestSatisfied_Blink(t *testing.T) {
	ch := challengeByKind(t, domain.ChallengeBlink)

	cases := []struct {
		name        string
		left, right float64
		want        bool
	}{
		{"both eyes closed", 0.1, 0.2, true},
		{"exactly at threshold", 0.3, 0.3, true},
		{"left open", 0.8, 0.1, false},
		{"right open", 0.1, 0.8, false},
		{"both open", 0.95, 0.97, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.FaceMeasurement{
				LeftEyeOpenProbability:  tt.left,
				RightEyeOpenProbability: tt.right,
			}
			assert.Equal(t, tt.want, satisfied(ch, m))
		})
	}
}

func TestSatisfied_HeadTurns(t *testing.T) {
	left := challengeByKind(t, domain.ChallengeTurnHeadLeft)
	right := challengeByKind(t, domain.ChallengeTurnHeadRight)

	// The same measurement satisfies exactly one of the two directions.
	m := domain.FaceMeasurement{YawAngle: -20}
	assert.True(t, satisfied(left, m))
	assert.False(t, satisfied(right, m))

	m.YawAngle = 20
	assert.False(t, satisfied(left, m))
	assert.True(t, satisfied(right, m))

	m.YawAngle = 0
	assert.False(t, satisfied(left, m))
	assert.False(t, satisfied(right, m))

	// Threshold boundaries count.
	m.YawAngle = -15
	assert.True(t, satisfied(left, m))
	m.YawAngle = 15
	assert.True(t, satisfied(right, m))
}

func TestSatisfied_Smile(t *testing.T) {
	ch := challengeByKind(t, domain.ChallengeSmile)

	assert.True(t, satisfied(ch, domain.FaceMeasurement{SmilingProbability: 0.9}))
	assert.True(t, satisfied(ch, domain.FaceMeasurement{SmilingProbability: 0.7}))
	assert.False(t, satisfied(ch, domain.FaceMeasurement{SmilingProbability: 0.5}))
}

func TestNodDetector_PartialWindowNeverSatisfies(t *testing.T) {
	d := NewNodDetector()

	// Nine wildly different samples still are not enough history.
	rolls := []float64{0, 40, -40, 80, -80, 15, -15, 60, -60}
	for _, roll := range rolls {
		assert.False(t, d.Observe(roll, 1.5))
	}
	assert.Equal(t, 9, d.Len())
}

func TestNodDetector_SteadyHeadNeverSatisfies(t *testing.T) {
	d := NewNodDetector()

	for i := 0; i < 20; i++ {
		assert.False(t, d.Observe(5.0, 1.5), "identical rolls give zero deviation")
	}
}

func TestNodDetector_SharpDeviationSatisfies(t *testing.T) {
	d := NewNodDetector()

	for i := 0; i < 9; i++ {
		assert.False(t, d.Observe(0, 1.5))
	}
	// Mean of the previous nine is ~0; |10| deviates far past 1.5.
	assert.True(t, d.Observe(10, 1.5))
}

func TestNodDetector_WindowSlides(t *testing.T) {
	d := NewNodDetector()

	for i := 0; i < 15; i++ {
		d.Observe(0, 1.5)
	}
	assert.Equal(t, nodWindow, d.Len())

	// Still full after sliding, and still reactive to a new deviation.
	assert.True(t, d.Observe(30, 1.5))
}

func TestNodDetector_Reset(t *testing.T) {
	d := NewNodDetector()

	for i := 0; i < 10; i++ {
		d.Observe(0, 1.5)
	}
	d.Reset()

	assert.Equal(t, 0, d.Len())
	// Back to needing a full window.
	assert.False(t, d.Observe(25, 1.5))
}
