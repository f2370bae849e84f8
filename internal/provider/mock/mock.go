package mock

import (
	"context"
	"sync"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
	"github.com/saturnino-fabrica-de-software/liva/internal/provider"
)

// Oracle implements provider.FrameOracle for tests and development. By
// default every frame yields one well-positioned neutral face; a script
// of frames can be queued to drive a session through specific states
// without a camera or an AWS account.
type Oracle struct {
	mu     sync.Mutex
	script [][]domain.FaceMeasurement
}

// Ensure Oracle implements provider.FrameOracle at compile time
var _ provider.FrameOracle = (*Oracle)(nil)

// New creates a mock oracle with no script queued.
func New() *Oracle {
	return &Oracle{}
}

// Enqueue appends frames to the script. Each entry is consumed by one
// MeasureFaces call, in order; once the script drains, the oracle falls
// back to the default neutral face.
func (o *Oracle) Enqueue(frames ...[]domain.FaceMeasurement) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.script = append(o.script, frames...)
}

// MeasureFaces pops the next scripted frame, or returns the neutral face.
func (o *Oracle) MeasureFaces(ctx context.Context, image []byte) ([]domain.FaceMeasurement, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidImage
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.script) > 0 {
		frame := o.script[0]
		o.script = o.script[1:]
		return frame, nil
	}

	return []domain.FaceMeasurement{NeutralFace()}, nil
}

// NeutralFace returns a centered, well-sized face with open eyes, no
// smile and a level head.
func NeutralFace() domain.FaceMeasurement {
	return domain.FaceMeasurement{
		Bounds:                  domain.Rect{MinX: 60, MinY: 60, Width: 200, Height: 200},
		LeftEyeOpenProbability:  0.95,
		RightEyeOpenProbability: 0.95,
		SmilingProbability:      0.05,
	}
}
