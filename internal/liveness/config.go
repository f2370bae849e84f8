package liveness

import (
	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

const (
	// DefaultPreviewSize is the side of the square guide rectangle, in
	// preview units.
	DefaultPreviewSize = 325

	// DefaultEdgeInset is the tolerance subtracted from the face box
	// before the containment check.
	DefaultEdgeInset = 50

	// DefaultOversizeMargin defines the "too close" cutoff: a face whose
	// raw width and height both reach preview size minus this margin is
	// oversize.
	DefaultOversizeMargin = 90
)

// Config is the immutable per-session configuration: guide geometry and
// the ordered challenge sequence. Sessions never mutate it.
type Config struct {
	Preview        domain.Rect
	EdgeInset      float64
	OversizeMargin float64
	Challenges     []domain.Challenge
}

// DefaultConfig returns the production geometry (square 325 guide at the
// origin) with the default challenge sequence.
func DefaultConfig() Config {
	return Config{
		Preview: domain.Rect{
			MinX:   0,
			MinY:   0,
			Width:  DefaultPreviewSize,
			Height: DefaultPreviewSize,
		},
		EdgeInset:      DefaultEdgeInset,
		OversizeMargin: DefaultOversizeMargin,
		Challenges:     domain.DefaultChallenges(),
	}
}

// oversizeLimit is the raw face dimension at which a face counts as too
// big. The guide is square, so the preview width is the size scalar.
func (c Config) oversizeLimit() float64 {
	return c.Preview.Width - c.OversizeMargin
}
