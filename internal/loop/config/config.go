// Package config centralizes the frame-loop and rendering parameters of
// the terminal client.
package config

import "time"

// Logical units per terminal cell. A cell is roughly twice as tall as it
// is wide, so a row covers twice the units of a column. Each row holds two
// half-block sub-pixels of 10 units.
const (
	UnitsPerCol = 10.0
	UnitsPerRow = 20.0
)

// Maximum render area in cells. Larger terminals get a centered, framed
// play area so the field does not become trivially wide.
const (
	MaxTermWidth  = 80
	MaxTermHeight = 45
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Presentation pulses
const (
	ScoreHighlight = 200 * time.Millisecond
	LevelHighlight = 500 * time.Millisecond
)

// Player names
const (
	MaxUsernameLength = 16
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show the shutdown notice before disconnecting
)
