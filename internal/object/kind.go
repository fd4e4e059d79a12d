package object

import "github.com/tomz197/rocketman/internal/draw"

// Kind describes one type of falling entity.
type Kind struct {
	ID      string
	Name    string
	Powerup bool
	Color   draw.Color
	Accent  draw.Color
}

// Obstacles is the catalog of deadly kinds, chosen uniformly.
var Obstacles = []Kind{
	{ID: "coldcuts", Name: "Nick's Cold Cuts", Color: draw.ColorRed, Accent: draw.ColorBrightWhite},
	{ID: "juice", Name: "Gaeta's Juice", Color: draw.ColorBrightMagenta, Accent: draw.ColorMagenta},
	{ID: "kevin", Name: "Kevin", Color: draw.ColorBlue, Accent: draw.ColorBrightBlue},
	{ID: "basketball", Name: "Nicky's Basketball", Color: draw.ColorBrightRed, Accent: draw.ColorGray},
}

// Powerup is the single bonus kind.
var Powerup = Kind{ID: "loussnacks", Name: "Lou's Snacks", Powerup: true, Color: draw.ColorBrightYellow, Accent: draw.ColorYellow}

// KindByID looks up a kind in the catalog, including the powerup.
func KindByID(id string) (Kind, bool) {
	if id == Powerup.ID {
		return Powerup, true
	}
	for _, k := range Obstacles {
		if k.ID == id {
			return k, true
		}
	}
	return Kind{}, false
}
