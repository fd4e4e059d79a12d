// Package draw renders the play area to a terminal with colored
// half-block characters and buffers frames for chunked output.
package draw

import "strconv"

// Block characters used by the canvas.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a 16-color ANSI palette entry. ColorNone is transparent.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)

// ColorReset restores default attributes.
const ColorReset = "\033[0m"

// ansiIndex maps a Color to its 0–15 palette index.
var ansiIndex = [...]int{
	ColorNone:          0,
	ColorRed:           1,
	ColorGreen:         2,
	ColorYellow:        3,
	ColorBlue:          4,
	ColorMagenta:       5,
	ColorCyan:          6,
	ColorWhite:         7,
	ColorGray:          8,
	ColorBrightRed:     9,
	ColorBrightGreen:   10,
	ColorBrightYellow:  11,
	ColorBrightBlue:    12,
	ColorBrightMagenta: 13,
	ColorBrightCyan:    14,
	ColorBrightWhite:   15,
}

// FG returns the foreground escape sequence for c.
func (c Color) FG() string {
	i := ansiIndex[c]
	if i < 8 {
		return "\033[" + strconv.Itoa(30+i) + "m"
	}
	return "\033[" + strconv.Itoa(90+i-8) + "m"
}

// BG returns the background escape sequence for c.
func (c Color) BG() string {
	i := ansiIndex[c]
	if i < 8 {
		return "\033[" + strconv.Itoa(40+i) + "m"
	}
	return "\033[" + strconv.Itoa(100+i-8) + "m"
}
