package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocketman/internal/audio"
	"github.com/tomz197/rocketman/internal/config"
	"github.com/tomz197/rocketman/internal/draw"
	"github.com/tomz197/rocketman/internal/hub"
	"github.com/tomz197/rocketman/internal/input"
	"github.com/tomz197/rocketman/internal/leaderboard"
	"github.com/tomz197/rocketman/internal/loop"
	loopconfig "github.com/tomz197/rocketman/internal/loop/config"
)

// storeTimeout bounds each leaderboard call made from the frame loop.
const storeTimeout = 3 * time.Second

// Client runs one game for a single terminal: it reads input, drives the
// session's frame scheduler and renders every frame.
type Client struct {
	hub          hub.Registry
	handle       *hub.Handle
	store        *leaderboard.Store
	session      *loop.Session
	sched        *loop.FrameScheduler
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	music        audio.Player
	tuning       config.Tuning
	logger       *log.Logger
	username     string
	termSizeFunc draw.TermSizeFunc
	mouse        bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       config.Tuning
	Music        audio.Player
	Logger       *log.Logger
	DisableMouse bool
}

// NewClient creates a client registered with the hub. Scores are submitted
// to store.
func NewClient(h hub.Registry, store *leaderboard.Store, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	music := opts.Music
	if music == nil {
		music = &audio.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	tuning := opts.Tuning
	if tuning == (config.Tuning{}) {
		tuning = config.DefaultTuning()
	}

	sched := loop.NewFrameScheduler()
	session := loop.NewSession(loop.Options{
		Tuning:    tuning,
		Scheduler: sched,
		Logger:    logger,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, loopconfig.UnitsPerCol, loopconfig.UnitsPerRow)
	canvas.SetOffset(offsetCol, offsetRow)
	session.SetPlayArea(canvas.LogicalWidth(), canvas.LogicalHeight())

	return &Client{
		hub:          h,
		handle:       h.Register(opts.Username),
		store:        store,
		session:      session,
		sched:        sched,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		music:        music,
		tuning:       tuning,
		logger:       logger,
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		mouse:        !opts.DisableMouse,
	}
}

// Run starts the client loop. Blocks until the player quits, the input
// ends, ctx is cancelled or the server shutdown countdown runs out.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	if c.mouse {
		draw.EnableMouse(c.writer)
		defer draw.DisableMouse(c.writer)
	}
	draw.ClearScreen(c.writer)
	defer c.music.Pause()
	defer c.hub.Unregister(c.handle.ID)

	for c.state.Running {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		in, closed := input.ReadInput(c.inputStream, frameStart)
		if closed {
			c.state.Running = false
		}

		c.processHubEvents(frameStart)
		c.updateScreen()
		c.handleInput(ctx, in)

		// Ticks requested before this refresh run now.
		c.sched.Refresh(frameStart)
		c.processSessionEvents(ctx, frameStart)

		if c.state.Shutdown && !frameStart.Before(c.state.shutdownAt) {
			c.state.Running = false
		}

		if err := c.drawFrame(frameStart); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < loopconfig.ClientTargetFrameTime {
			time.Sleep(loopconfig.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processHubEvents handles events from the hub.
func (c *Client) processHubEvents(now time.Time) {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case hub.EventServerShutdown:
				if !c.state.Shutdown {
					c.state.Shutdown = true
					c.state.shutdownAt = now.Add(time.Duration(loopconfig.ShutdownDisplaySeconds * float64(time.Second)))
					if c.session.State() == loop.StatePlaying {
						c.session.TogglePause()
						c.music.Pause()
					}
				}
			case hub.EventLeaderboardChanged:
				if c.session.State() == loop.StateGameOver {
					c.refreshLeaderboard(context.Background())
				}
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to the max render
// resolution, and records the new play-area size on the session.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.Cols() || renderHeight != c.canvas.Rows() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
	c.session.SetPlayArea(c.canvas.LogicalWidth(), c.canvas.LogicalHeight())
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > loopconfig.MaxTermWidth {
		renderWidth = loopconfig.MaxTermWidth
	}
	if renderHeight > loopconfig.MaxTermHeight {
		renderHeight = loopconfig.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// nameEntryActive reports whether typed letters go to the name field.
func (c *Client) nameEntryActive() bool {
	return c.session.State() == loop.StateGameOver && !c.state.Submitted && !c.state.Shutdown
}

// handleInput maps one frame of input onto the session and the screens.
func (c *Client) handleInput(ctx context.Context, in input.Input) {
	if in.Interrupt || (in.Quit && !c.nameEntryActive()) {
		c.state.Running = false
		return
	}
	if c.state.Shutdown {
		return
	}
	if in.Mute && !c.nameEntryActive() {
		c.music.ToggleMute()
	}

	switch c.session.State() {
	case loop.StateStart:
		if in.Space || in.Enter {
			c.startGame()
		}
	case loop.StatePlaying:
		if in.Pause {
			c.session.TogglePause()
			c.music.Pause()
			c.session.Input().Reset()
			return
		}
		c.applyPointer(in)
		input.ApplyMovement(in, c.session.Input())
	case loop.StatePaused:
		if in.Pause {
			input.ResetHeld(c.inputStream)
			c.session.TogglePause()
			c.music.Play()
		}
	case loop.StateGameOver:
		c.handleGameOverInput(ctx, in)
	}
}

// applyPointer forwards mouse motion as the pointer. Leaving the canvas
// clears it.
func (c *Client) applyPointer(in input.Input) {
	if in.Mouse == nil {
		return
	}
	x, y, ok := c.canvas.CellToLogical(in.Mouse.Col, in.Mouse.Row)
	if ok {
		c.session.Input().PointerMove(x, y)
	} else {
		c.session.Input().PointerLeave()
	}
}

func (c *Client) handleGameOverInput(ctx context.Context, in input.Input) {
	if in.Escape {
		c.restart()
		return
	}
	if c.state.Submitted {
		if in.Space || in.Enter {
			c.restart()
		}
		return
	}
	switch {
	case in.Enter:
		c.submitScore(ctx)
	case in.Backspace:
		c.state.backspace()
	default:
		c.state.typeName(in.Text, loopconfig.MaxUsernameLength)
	}
}

// startGame starts a run from the start screen.
func (c *Client) startGame() {
	input.ResetHeld(c.inputStream)
	c.session.Input().Reset()
	if c.session.Start() {
		c.music.Play()
	}
}

// restart returns to the start screen.
func (c *Client) restart() {
	if c.session.Restart() {
		c.state.resetEntry(c.username)
		c.state.Leaderboard = nil
	}
}

// processSessionEvents turns simulation events into presentation effects.
func (c *Client) processSessionEvents(ctx context.Context, now time.Time) {
	for {
		select {
		case ev := <-c.session.Events():
			switch ev.Type {
			case loop.EventPowerup:
				c.state.scoreFlashUntil = now.Add(loopconfig.ScoreHighlight)
			case loop.EventLevelUp:
				c.state.levelFlashUntil = now.Add(loopconfig.LevelHighlight)
			case loop.EventGameOver:
				c.music.Pause()
				c.session.Input().Reset()
				c.state.resetEntry(c.username)
				c.refreshLeaderboard(ctx)
				c.logger.Info("game over", "user", c.username, "score", ev.Score, "level", ev.Level)
			}
		default:
			return
		}
	}
}

// refreshLeaderboard reloads the displayed entries.
func (c *Client) refreshLeaderboard(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	entries, err := c.store.Read(ctx)
	if err != nil {
		c.logger.Warn("leaderboard unavailable", "err", err)
		entries = nil
	}
	c.state.Leaderboard = entries
	if c.state.Submitted {
		c.state.Highlight = leaderboard.HighlightIndex(entries, c.session.FinalScore())
	}
}

// submitScore records the final score under the entered name.
func (c *Client) submitScore(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	entries, err := c.store.Submit(ctx, string(c.state.Name), c.session.FinalScore())
	if err != nil {
		c.logger.Error("submit score", "err", err)
		c.state.SubmitFailed = true
		return
	}
	c.state.Submitted = true
	c.state.SubmitFailed = false
	c.state.Leaderboard = entries
	c.state.Highlight = leaderboard.HighlightIndex(entries, c.session.FinalScore())
	c.hub.Broadcast(hub.Event{Type: hub.EventLeaderboardChanged, From: c.handle.ID})
	c.logger.Info("score submitted", "name", leaderboard.NormalizeName(string(c.state.Name)), "score", c.session.FinalScore())
}
