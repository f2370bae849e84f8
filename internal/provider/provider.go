package provider

import (
	"context"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

// FrameOracle is the per-frame face-geometry estimator feeding the
// liveness core. Implementations analyze one camera frame and return a
// measurement for every face found, already scaled to preview
// coordinates. An empty slice means no face; more than one entry means
// the frame does not qualify.
type FrameOracle interface {
	MeasureFaces(ctx context.Context, image []byte) ([]domain.FaceMeasurement, error)
}
