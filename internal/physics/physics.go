// Package physics provides axis-aligned collision and clamping utilities.
package physics

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
// Y grows downwards, matching screen coordinates.
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether a and b intersect with positive area.
// Rectangles that only share an edge do not overlap.
func (a Rect) Overlaps(b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
