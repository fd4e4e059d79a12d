package client

import (
	"fmt"
	"time"

	"github.com/tomz197/rocketman/internal/draw"
	"github.com/tomz197/rocketman/internal/leaderboard"
	"github.com/tomz197/rocketman/internal/loop"
	"github.com/tomz197/rocketman/internal/object"
)

var titleArt = []string{
	` ___  ___   ___ _  _____ _____ __  __   _   _  _ `,
	`| _ \/ _ \ / __| |/ / __|_   _|  \/  | /_\ | \| |`,
	`|   / (_) | (__| ' <| _|  | | | |\/| |/ _ \| .' |`,
	`|_|_\\___/ \___|_|\_\___| |_| |_|  |_/_/ \_\_|\_|`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	// On state transitions, do a full terminal clear so UI elements from
	// the previous screen don't persist.
	gs := c.session.State()
	if gs != c.state.prevState || c.state.Shutdown != c.state.prevShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.state.prevState = gs
		c.state.prevShutdown = c.state.Shutdown
	}

	c.canvas.Clear()
	if gs == loop.StatePlaying || gs == loop.StatePaused {
		if err := c.drawObjects(); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(now)
	return c.chunkWriter.Flush()
}

// drawObjects paints the entities and the player onto the canvas.
func (c *Client) drawObjects() error {
	ctx := object.DrawContext{Canvas: c.canvas}
	for _, e := range c.session.Entities() {
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}
	if p := c.session.Player(); p != nil {
		return p.Draw(ctx)
	}
	return nil
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(now time.Time) {
	width := c.canvas.Cols()
	height := c.canvas.Rows()
	centerX := width / 2
	centerY := height / 2

	if c.state.Shutdown {
		c.drawShutdownScreen(now, centerX, centerY)
		return
	}

	switch c.session.State() {
	case loop.StateStart:
		c.drawStartScreen(now, centerX, centerY)
	case loop.StatePlaying:
		c.drawHUD(now, width)
	case loop.StatePaused:
		c.drawHUD(now, width)
		c.drawPauseOverlay(centerX, centerY)
	case loop.StateGameOver:
		c.drawGameOverScreen(now, centerX, centerY)
	}
}

func artWidth(art []string) int {
	w := 0
	for _, line := range art {
		if len(line) > w {
			w = len(line)
		}
	}
	return w
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(now time.Time, centerX, centerY int) {
	cw := c.chunkWriter
	titleWidth := artWidth(titleArt)
	titleStartY := centerY - 9
	for i, line := range titleArt {
		cw.WriteColorAt(centerX-titleWidth/2, titleStartY+i, draw.ColorBrightCyan, line)
	}

	subtitle := "~ Fly Lou's rocket. Dodge the junk. ~"
	cw.WriteCentered(centerX, titleStartY+len(titleArt)+1, draw.ColorNone, subtitle)

	legendY := titleStartY + len(titleArt) + 3
	cw.WriteCentered(centerX, legendY, draw.ColorBrightYellow, fmt.Sprintf("CATCH  %s  +%d", object.Powerup.Name, c.tuning.Entities.PowerupBonus))
	for i, k := range object.Obstacles {
		cw.WriteCentered(centerX, legendY+1+i, k.Color, "AVOID  "+k.Name)
	}

	controlsY := legendY + len(object.Obstacles) + 2
	cw.WriteCentered(centerX, controlsY, draw.ColorNone, "Controls")
	controlLines := []string{
		"ARROWS / WASD  . . . Move",
		"MOUSE  . . . . . .  Steer",
		"P  . . . . . . . .  Pause",
		"M  . . . . . . . . . Mute",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteCentered(centerX, controlsY+1+i, draw.ColorNone, line)
	}

	// Blinking start prompt
	if now.UnixMilli()/600%2 == 0 {
		cw.WriteCentered(centerX, controlsY+len(controlLines)+2, draw.ColorBrightWhite, ">>  Press SPACE to Start  <<")
	}
}

// drawHUD draws the in-game status line. Fields are fixed width so
// shrinking values leave no residue.
func (c *Client) drawHUD(now time.Time, width int) {
	cw := c.chunkWriter

	scoreColor := draw.ColorBrightWhite
	if now.Before(c.state.scoreFlashUntil) {
		scoreColor = draw.ColorBrightYellow
	}
	cw.WriteColorAt(2, 1, scoreColor, fmt.Sprintf("Score: %-10d", c.session.Score()))

	levelColor := draw.ColorBrightWhite
	if now.Before(c.state.levelFlashUntil) {
		levelColor = draw.ColorBrightGreen
	}
	cw.WriteColorAt(width/2-5, 1, levelColor, fmt.Sprintf("Level: %-3d", c.session.Level()))

	sound := "Sound: on "
	if c.music.Muted() {
		sound = "Sound: off"
	}
	players := fmt.Sprintf("Players: %-4d", c.hub.Players())
	right := sound + "  " + players
	cw.WriteAt(width-len(right), 1, right)
}

// drawPauseOverlay draws the pause notice over the frozen field.
func (c *Client) drawPauseOverlay(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-1, draw.ColorBrightWhite, "  PAUSED  ")
	cw.WriteCentered(centerX, centerY+1, draw.ColorNone, " Press P to resume ")
}

// drawGameOverScreen draws the final score, name entry and leaderboard.
func (c *Client) drawGameOverScreen(now time.Time, centerX, centerY int) {
	cw := c.chunkWriter
	titleWidth := artWidth(gameOverArt)
	y := centerY - 12
	if y < 2 {
		y = 2
	}
	for i, line := range gameOverArt {
		cw.WriteColorAt(centerX-titleWidth/2, y+i, draw.ColorBrightRed, line)
	}
	y += len(gameOverArt) + 1

	cw.WriteCentered(centerX, y, draw.ColorBrightWhite, fmt.Sprintf("Final Score: %d", c.session.FinalScore()))
	y += 2

	switch {
	case c.state.Submitted:
		cw.WriteCentered(centerX, y, draw.ColorBrightGreen, "SUBMITTED")
		cw.WriteCentered(centerX, y+1, draw.ColorNone, "SPACE play again  ESC menu")
	default:
		cursor := " "
		if now.UnixMilli()/400%2 == 0 {
			cursor = "_"
		}
		name := fmt.Sprintf("NAME: %-*s", 17, string(c.state.Name)+cursor)
		cw.WriteCentered(centerX, y, draw.ColorBrightWhite, name)
		hint := "ENTER submit  ESC skip"
		color := draw.ColorNone
		if c.state.SubmitFailed {
			hint, color = "SUBMIT FAILED, ENTER to retry", draw.ColorBrightRed
		}
		cw.WriteCentered(centerX, y+1, color, hint)
	}
	y += 3

	cw.WriteCentered(centerX, y, draw.ColorBrightCyan, "HIGH SCORES")
	y++
	if len(c.state.Leaderboard) == 0 {
		cw.WriteCentered(centerX, y+1, draw.ColorCyan, "NO SCORES YET")
		return
	}
	for i, e := range c.state.Leaderboard {
		color := draw.ColorNone
		if i == c.state.Highlight {
			color = draw.ColorBrightYellow
		}
		line := fmt.Sprintf("#%-2d %-16s %18d", i+1, leaderboard.Printable(e.Name), e.Score)
		cw.WriteCentered(centerX, y+1+i, color, line)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(now time.Time, centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, draw.ColorBrightRed, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, draw.ColorNone, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, draw.ColorNone, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownAt.Sub(now).Seconds()) + 1
	if remaining < 0 {
		remaining = 0
	}
	cw.WriteCentered(centerX, centerY+2, draw.ColorNone, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	cw.WriteCentered(centerX, centerY+4, draw.ColorNone, "Press Q to disconnect now")
}
