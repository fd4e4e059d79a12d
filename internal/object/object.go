// Package object defines the player, the falling entities and the spawner
// that creates them.
package object

import (
	"github.com/tomz197/rocketman/internal/draw"
)

// Area is the play area in logical units.
type Area struct {
	Width  float64
	Height float64
}

// Usable reports whether both dimensions reach min.
func (a Area) Usable(min float64) bool {
	return a.Width >= min && a.Height >= min
}

// UpdateContext provides what an entity needs to advance one frame.
type UpdateContext struct {
	Area  Area
	Speed float64 // current fall speed in units per frame
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
}

// Object is a drawable entity that advances once per frame.
type Object interface {
	// Update advances the object. Returns true if it should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw paints the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}
