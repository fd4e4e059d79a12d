package object

import (
	"github.com/tomz197/rocketman/internal/physics"
)

// Entity is a falling obstacle or powerup.
type Entity struct {
	physics.Rect
	Kind Kind
}

// NewEntity creates an entity of kind k at (x, y).
func NewEntity(k Kind, x, y, w, h float64) *Entity {
	return &Entity{
		Rect: physics.Rect{X: x, Y: y, W: w, H: h},
		Kind: k,
	}
}

// IsPowerup reports whether touching the entity awards a bonus.
func (e *Entity) IsPowerup() bool {
	return e.Kind.Powerup
}

// Update moves the entity down by the current fall speed and asks for
// removal once it has dropped below the play area.
func (e *Entity) Update(ctx UpdateContext) (bool, error) {
	e.Y += ctx.Speed
	return e.Y > ctx.Area.Height, nil
}

// Draw paints the entity as a filled block with a darker accent band.
func (e *Entity) Draw(ctx DrawContext) error {
	c := ctx.Canvas
	c.FillRect(e.X, e.Y, e.W, e.H, e.Kind.Color)
	if e.Kind.Powerup {
		// wrapper stripe
		c.FillRect(e.X, e.Y+e.H*0.25, e.W, e.H*0.25, e.Kind.Accent)
	} else {
		c.FillRect(e.X+e.W*0.25, e.Y+e.H*0.5, e.W*0.5, e.H*0.25, e.Kind.Accent)
	}
	return nil
}
