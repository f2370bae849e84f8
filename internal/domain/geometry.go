package domain

// Rect is an axis-aligned rectangle in preview coordinates.
// A rect is well-formed when Width >= 0 and Height >= 0; degenerate rects
// are not special-cased, the containment inequalities decide.
type Rect struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MaxX returns the right edge of the rect.
func (r Rect) MaxX() float64 {
	return r.MinX + r.Width
}

// MaxY returns the bottom edge of the rect.
func (r Rect) MaxY() float64 {
	return r.MinY + r.Height
}

// Contains reports whether inner is fully enclosed by r.
// Edges count as inside, so r.Contains(r) is always true.
func (r Rect) Contains(inner Rect) bool {
	return inner.MinX >= r.MinX &&
		inner.MinY >= r.MinY &&
		inner.MaxX() <= r.MaxX() &&
		inner.MaxY() <= r.MaxY()
}

// Shrink returns a copy of r with the tolerance subtracted from width and
// height. The origin stays put, so all of the slack accrues to the right
// and bottom edges; the detection gate depends on this exact behavior.
func (r Rect) Shrink(tolerance float64) Rect {
	return Rect{
		MinX:   r.MinX,
		MinY:   r.MinY,
		Width:  r.Width - tolerance,
		Height: r.Height - tolerance,
	}
}
