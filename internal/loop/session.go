package loop

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocketman/internal/config"
	"github.com/tomz197/rocketman/internal/input"
	"github.com/tomz197/rocketman/internal/object"
)

// Options configures a Session. Zero fields get defaults.
type Options struct {
	Tuning    config.Tuning
	Scheduler Scheduler
	Clock     func() time.Time
	Rand      object.Rand
	Logger    *log.Logger
}

// Session owns one game: its state machine, the player, the live entities,
// the difficulty and the elapsed play time. A session is single-threaded;
// every method and every scheduled tick must run on the goroutine that
// drives its Scheduler.
type Session struct {
	t       config.Tuning
	sched   Scheduler
	clock   func() time.Time
	logger  *log.Logger
	events  chan Event
	input   *input.Sampler
	spawner *object.Spawner
	diff    *Difficulty

	state         GameState
	area          object.Area
	player        *object.Player
	playerRetryAt time.Time
	entities      []*object.Entity

	elapsed    time.Duration // play time, pauses excluded
	bonus      int64
	finalScore int64
	lastFrame  time.Time
	tick       TickHandle
}

// NewSession creates a session on the start screen.
func NewSession(opts Options) *Session {
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.DefaultTuning()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewFrameScheduler()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	t := opts.Tuning
	return &Session{
		t:       t,
		sched:   opts.Scheduler,
		clock:   opts.Clock,
		logger:  opts.Logger,
		events:  make(chan Event, eventBuffer),
		input:   input.NewSampler(),
		spawner: object.NewSpawner(opts.Rand, t.Entities, t.Area.MinDimension),
		diff:    NewDifficulty(t.Difficulty, t.Entities),
		state:   StateStart,
	}
}

// SetPlayArea records the current play-area size. The client calls it
// every frame so resizes are picked up by the next tick.
func (s *Session) SetPlayArea(width, height float64) {
	s.area = object.Area{Width: width, Height: height}
}

// Start begins a run from the start screen. It resets score, level, speed,
// spawn rate and entities, creates the player and schedules the first
// tick. It reports false if the session is not on the start screen.
func (s *Session) Start() bool {
	if s.state != StateStart {
		return false
	}
	now := s.clock()

	s.elapsed = 0
	s.bonus = 0
	s.finalScore = 0
	s.diff.Reset()
	s.clearEntities()
	s.player = nil
	s.playerRetryAt = time.Time{}
	s.lastFrame = now
	s.createPlayer(now)

	s.state = StatePlaying
	s.scheduleTick()
	s.logger.Debug("session started", "width", s.area.Width, "height", s.area.Height)
	return true
}

// TogglePause pauses a running game or resumes a paused one and returns
// the resulting state. Other states are left unchanged. Pausing cancels
// the pending tick; resuming takes a fresh frame baseline so the paused
// interval never counts toward score or difficulty.
func (s *Session) TogglePause() GameState {
	switch s.state {
	case StatePlaying:
		s.cancelTick()
		s.state = StatePaused
	case StatePaused:
		s.lastFrame = s.clock()
		s.state = StatePlaying
		s.scheduleTick()
	}
	return s.state
}

// Restart returns from the game-over screen to the start screen.
func (s *Session) Restart() bool {
	if s.state != StateGameOver {
		return false
	}
	s.state = StateStart
	s.clearEntities()
	s.player = nil
	return true
}

// gameOver ends the run: the tick loop stops, the score is captured and
// the game-over event is raised.
func (s *Session) gameOver() {
	s.cancelTick()
	s.finalScore = s.Score()
	s.clearEntities()
	s.player = nil
	s.state = StateGameOver
	s.emit(Event{Type: EventGameOver, Score: s.finalScore, Level: s.diff.Level()})
	s.logger.Debug("game over", "score", s.finalScore, "level", s.diff.Level())
}

func (s *Session) scheduleTick() {
	if s.tick != 0 {
		return
	}
	s.tick = s.sched.RequestFrame(s.onFrame)
}

func (s *Session) cancelTick() {
	if s.tick == 0 {
		return
	}
	s.sched.CancelFrame(s.tick)
	s.tick = 0
}

func (s *Session) onFrame(now time.Time) {
	s.tick = 0
	if s.state != StatePlaying {
		return
	}
	terminal, err := s.step(now)
	if err != nil {
		s.logger.Error("tick failed", "err", err)
		terminal = true
	}
	if terminal {
		s.gameOver()
		return
	}
	s.scheduleTick()
}

// createPlayer builds the player when the play area is usable, otherwise
// schedules a retry.
func (s *Session) createPlayer(now time.Time) bool {
	if !s.area.Usable(s.t.Area.MinDimension) {
		s.playerRetryAt = now.Add(s.t.Area.RetryDelay())
		s.logger.Debug("play area too small, retrying", "width", s.area.Width, "height", s.area.Height)
		return false
	}
	s.player = object.NewPlayer(s.area, s.t.Player)
	return true
}

func (s *Session) clearEntities() {
	clear(s.entities)
	s.entities = s.entities[:0]
}

// emit delivers an event without blocking; events are dropped when the
// consumer falls behind.
func (s *Session) emit(e Event) {
	select {
	case s.events <- e:
	default:
	}
}

// Events returns the channel presentation events are published on.
func (s *Session) Events() <-chan Event { return s.events }

// State returns the current phase.
func (s *Session) State() GameState { return s.state }

// Score returns elapsed play milliseconds plus powerup bonuses.
func (s *Session) Score() int64 {
	return s.elapsed.Milliseconds() + s.bonus
}

// FinalScore returns the score captured at game over.
func (s *Session) FinalScore() int64 { return s.finalScore }

// Level returns the difficulty level.
func (s *Session) Level() int { return s.diff.Level() }

// Speed returns the current fall speed.
func (s *Session) Speed() float64 { return s.diff.Speed() }

// SpawnRate returns the current per-frame spawn probability.
func (s *Session) SpawnRate() float64 { return s.diff.SpawnRate() }

// Player returns the player, or nil before it could be created.
func (s *Session) Player() *object.Player { return s.player }

// Entities returns the live entities in spawn order. The slice is owned
// by the session and valid until the next tick.
func (s *Session) Entities() []*object.Entity { return s.entities }

// Area returns the last recorded play-area size.
func (s *Session) Area() object.Area { return s.area }

// Input returns the sampler fed by the client's input handlers.
func (s *Session) Input() *input.Sampler { return s.input }

// Pending reports whether a tick is scheduled.
func (s *Session) Pending() bool { return s.tick != 0 }
