package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Canvas is a colored drawing buffer with 2x vertical resolution using
// half-block characters. Shapes are given in logical play-area units and
// scaled to terminal cells by a fixed number of units per column and row.
type Canvas struct {
	cols, rows  int
	subRows     int     // rows * 2
	pixels      []Color // flat [subRow*cols + col]
	unitsPerCol float64
	unitsPerRow float64

	// 0-based terminal offset of the canvas origin, for centering.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas of cols x rows terminal cells.
func NewCanvas(cols, rows int, unitsPerCol, unitsPerRow float64) *Canvas {
	c := &Canvas{unitsPerCol: unitsPerCol, unitsPerRow: unitsPerRow}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell dimensions, reallocating only when they change.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols == c.cols && rows == c.rows && c.pixels != nil {
		return
	}
	c.cols = cols
	c.rows = rows
	c.subRows = rows * 2
	c.pixels = make([]Color, c.subRows*cols)
}

// SetOffset sets the 0-based terminal column and row of the canvas origin.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// Cols returns the canvas width in terminal cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in terminal cells.
func (c *Canvas) Rows() int { return c.rows }

// LogicalWidth returns the canvas width in play-area units.
func (c *Canvas) LogicalWidth() float64 { return float64(c.cols) * c.unitsPerCol }

// LogicalHeight returns the canvas height in play-area units.
func (c *Canvas) LogicalHeight() float64 { return float64(c.rows) * c.unitsPerRow }

// Clear resets every pixel to ColorNone.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// FillRect paints the logical rectangle (x, y, w, h) with color.
// Parts outside the canvas are clipped.
func (c *Canvas) FillRect(x, y, w, h float64, color Color) {
	if w <= 0 || h <= 0 || c.cols == 0 || c.subRows == 0 {
		return
	}
	subUnits := c.unitsPerRow / 2

	col0 := clampInt(int(math.Floor(x/c.unitsPerCol)), 0, c.cols)
	col1 := clampInt(int(math.Ceil((x+w)/c.unitsPerCol)), 0, c.cols)
	row0 := clampInt(int(math.Floor(y/subUnits)), 0, c.subRows)
	row1 := clampInt(int(math.Ceil((y+h)/subUnits)), 0, c.subRows)

	for sy := row0; sy < row1; sy++ {
		line := c.pixels[sy*c.cols : (sy+1)*c.cols]
		for sx := col0; sx < col1; sx++ {
			line[sx] = color
		}
	}
}

// At returns the color of the sub-pixel at (col, subRow), or ColorNone
// when out of range.
func (c *Canvas) At(col, subRow int) Color {
	if col < 0 || col >= c.cols || subRow < 0 || subRow >= c.subRows {
		return ColorNone
	}
	return c.pixels[subRow*c.cols+col]
}

// CellToLogical returns the logical center of a 1-based terminal cell,
// relative to the canvas origin. ok is false when the cell lies outside
// the canvas.
func (c *Canvas) CellToLogical(termCol, termRow int) (x, y float64, ok bool) {
	col := termCol - 1 - c.offsetCol
	row := termRow - 1 - c.offsetRow
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0, 0, false
	}
	return (float64(col) + 0.5) * c.unitsPerCol, (float64(row) + 0.5) * c.unitsPerRow, true
}

// Render writes every canvas row to w. Empty cells are written as spaces
// so the previous frame is overwritten without a full screen clear.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.cols * c.rows * 4)

	for row := 0; row < c.rows; row++ {
		c.moveTo(row)
		var fg, bg Color
		for col := 0; col < c.cols; col++ {
			top := c.pixels[row*2*c.cols+col]
			bottom := c.pixels[(row*2+1)*c.cols+col]

			var ch rune
			var wantFG, wantBG Color
			switch {
			case top == ColorNone && bottom == ColorNone:
				ch = ' '
			case top == bottom:
				ch, wantFG = BlockFull, top
			case bottom == ColorNone:
				ch, wantFG = BlockUpperHalf, top
			case top == ColorNone:
				ch, wantFG = BlockLowerHalf, bottom
			default:
				ch, wantFG, wantBG = BlockUpperHalf, top, bottom
			}

			if wantFG != fg || wantBG != bg {
				c.renderBuf.WriteString(ColorReset)
				if wantFG != ColorNone {
					c.renderBuf.WriteString(wantFG.FG())
				}
				if wantBG != ColorNone {
					c.renderBuf.WriteString(wantBG.BG())
				}
				fg, bg = wantFG, wantBG
			}
			c.renderBuf.WriteRune(ch)
		}
		if fg != ColorNone || bg != ColorNone {
			c.renderBuf.WriteString(ColorReset)
		}
	}

	_, err := writeChunked(w, c.renderBuf.String())
	return err
}

func (c *Canvas) moveTo(row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(1+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder frames the canvas when there is room around it.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return nil
	}
	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1

	var b strings.Builder
	bar := strings.Repeat("─", c.cols)
	b.WriteString(cursor(left, top) + "┌" + bar + "┐")
	b.WriteString(cursor(left, bottom) + "└" + bar + "┘")
	for row := top + 1; row < bottom; row++ {
		b.WriteString(cursor(left, row) + "│" + cursor(right, row) + "│")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func cursor(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
