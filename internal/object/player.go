package object

import (
	"github.com/tomz197/rocketman/internal/config"
	"github.com/tomz197/rocketman/internal/draw"
	"github.com/tomz197/rocketman/internal/input"
	"github.com/tomz197/rocketman/internal/physics"
)

// Player is the rocket. It moves freely horizontally and inside a
// vertical band at the bottom of the play area.
type Player struct {
	physics.Rect
	Speed         float64 // horizontal units per frame
	VerticalSpeed float64 // vertical units per frame
	MinY, MaxY    float64 // vertical band, fixed at creation
}

// NewPlayer places a player centered horizontally near the bottom of area.
// The band is computed once here and does not follow later resizes.
func NewPlayer(area Area, t config.PlayerTuning) *Player {
	p := &Player{
		Rect:          physics.Rect{W: t.Width, H: t.Height},
		Speed:         t.Speed,
		VerticalSpeed: t.VerticalSpeed,
	}
	p.MaxY = area.Height - p.H - t.BottomMargin
	p.MinY = area.Height*t.BandTop - p.H
	p.X = area.Width/2 - p.W/2
	p.Y = p.MaxY - t.StartLift
	return p
}

// Move applies a resolved movement intent and clamps to the play area.
func (p *Player) Move(in input.Intent, area Area) {
	p.X, p.Y = in.Apply(p.X, p.Y)
	p.Clamp(area)
}

// Clamp keeps the player inside [0, width-w] horizontally and inside its
// band vertically. A dimension that is not known yet is left alone.
func (p *Player) Clamp(area Area) {
	if area.Width > 0 {
		p.X = physics.Clamp(p.X, 0, area.Width-p.W)
	}
	if area.Height > 0 {
		p.Y = physics.Clamp(p.Y, p.MinY, p.MaxY)
	}
}

// Draw paints the rocket: body, window, fins and flame.
func (p *Player) Draw(ctx DrawContext) error {
	c := ctx.Canvas
	bodyX := p.X + p.W*0.2
	bodyW := p.W * 0.6

	c.FillRect(bodyX, p.Y, bodyW, p.H*0.8, draw.ColorBrightWhite)
	c.FillRect(bodyX+bodyW*0.25, p.Y+p.H*0.15, bodyW*0.5, p.H*0.15, draw.ColorBrightCyan)
	c.FillRect(p.X, p.Y+p.H*0.55, p.W*0.2, p.H*0.25, draw.ColorRed)
	c.FillRect(p.X+p.W*0.8, p.Y+p.H*0.55, p.W*0.2, p.H*0.25, draw.ColorRed)
	c.FillRect(bodyX+bodyW*0.25, p.Y+p.H*0.8, bodyW*0.5, p.H*0.2, draw.ColorBrightYellow)
	return nil
}
