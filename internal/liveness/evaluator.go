package liveness

import (
	"math"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

// nodWindow is the capacity of the roll-angle history the nod detector
// smooths over.
const nodWindow = 10

// satisfied evaluates the stateless challenges against one measurement.
// Nod is history-dependent and handled by NodDetector instead.
func satisfied(ch domain.Challenge, m domain.FaceMeasurement) bool {
	switch ch.Kind {
	case domain.ChallengeBlink:
		// Lower eye-open probability means more closed.
		return m.LeftEyeOpenProbability <= ch.Threshold &&
			m.RightEyeOpenProbability <= ch.Threshold
	case domain.ChallengeTurnHeadLeft:
		return m.YawAngle <= ch.Threshold
	case domain.ChallengeTurnHeadRight:
		return m.YawAngle >= ch.Threshold
	case domain.ChallengeSmile:
		return m.SmilingProbability >= ch.Threshold
	default:
		return false
	}
}

// NodDetector keeps a bounded FIFO of recent roll angles and flags a nod
// when the newest sample deviates sharply from the steady-state average
// of the samples before it. The window smooths out frame-to-frame jitter
// from the oracle.
type NodDetector struct {
	window []float64
}

func NewNodDetector() *NodDetector {
	return &NodDetector{window: make([]float64, 0, nodWindow)}
}

// Observe appends roll to the history and reports whether the deviation
// of |roll| from the mean of the previous samples' absolute values meets
// the threshold. A partial window never satisfies: the detector needs a
// full history before the average means anything.
func (d *NodDetector) Observe(roll, threshold float64) bool {
	d.window = append(d.window, roll)
	if len(d.window) > nodWindow {
		d.window = d.window[1:]
	}
	if len(d.window) < nodWindow {
		return false
	}

	var sum float64
	prior := d.window[:len(d.window)-1]
	for _, r := range prior {
		sum += math.Abs(r)
	}
	mean := sum / float64(len(prior))

	return math.Abs(mean-math.Abs(roll)) >= threshold
}

// Reset discards the history. Called whenever the session resets so roll
// angles from a previous acquisition cannot skew the average.
func (d *NodDetector) Reset() {
	d.window = d.window[:0]
}

// Len returns the number of samples currently held.
func (d *NodDetector) Len() int {
	return len(d.window)
}
