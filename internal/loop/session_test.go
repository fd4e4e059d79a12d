package loop

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rocketman/internal/config"
	"github.com/tomz197/rocketman/internal/input"
	"github.com/tomz197/rocketman/internal/object"
	"github.com/tomz197/rocketman/internal/physics"
)

// seqRand returns vals in order, repeating the last one.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i]
	if r.i < len(r.vals)-1 {
		r.i++
	}
	return v
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) at(ms int) time.Time {
	return c.start().Add(time.Duration(ms) * time.Millisecond)
}

func (c *fakeClock) start() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

type harness struct {
	s     *Session
	sched *FrameScheduler
	clock *fakeClock
}

func newHarness(t *testing.T, rnd ...float64) *harness {
	t.Helper()
	return newTunedHarness(t, config.DefaultTuning(), rnd...)
}

func newTunedHarness(t *testing.T, tuning config.Tuning, rnd ...float64) *harness {
	t.Helper()
	if len(rnd) == 0 {
		rnd = []float64{0.99} // never spawn
	}
	clock := &fakeClock{}
	clock.now = clock.start()
	sched := NewFrameScheduler()
	s := NewSession(Options{
		Tuning:    tuning,
		Scheduler: sched,
		Clock:     clock.Now,
		Rand:      &seqRand{vals: rnd},
		Logger:    log.New(io.Discard),
	})
	s.SetPlayArea(400, 800)
	return &harness{s: s, sched: sched, clock: clock}
}

// frame advances the clock to ms after the start and refreshes.
func (h *harness) frame(ms int) int {
	h.clock.now = h.clock.at(ms)
	return h.sched.Refresh(h.clock.now)
}

func drain(s *Session) []Event {
	var out []Event
	for {
		select {
		case e := <-s.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestStartCreatesPlayerAndSchedulesTick(t *testing.T) {
	h := newHarness(t)
	if h.s.State() != StateStart {
		t.Fatalf("initial state = %v, want start", h.s.State())
	}
	if !h.s.Start() {
		t.Fatal("Start returned false")
	}
	if h.s.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", h.s.State())
	}
	if h.sched.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", h.sched.Pending())
	}
	p := h.s.Player()
	if p == nil {
		t.Fatal("player not created")
	}
	if p.X != 175 || p.Y != 680 {
		t.Errorf("player at (%v, %v), want (175, 680)", p.X, p.Y)
	}
	if h.s.Start() {
		t.Error("Start while playing should be rejected")
	}
}

func TestScoreCountsElapsedPlayTime(t *testing.T) {
	h := newHarness(t)
	h.s.Start()
	for ms := 16; ms <= 1000; ms += 16 {
		h.frame(ms)
	}
	h.frame(1000)
	if got := h.s.Score(); got != 1000 {
		t.Errorf("score = %d, want 1000", got)
	}
	if h.s.Level() != 1 {
		t.Errorf("level = %d, want 1", h.s.Level())
	}
}

func TestPauseExcludesPausedTime(t *testing.T) {
	h := newHarness(t)
	h.s.Start()
	h.frame(1000)

	if got := h.s.TogglePause(); got != StatePaused {
		t.Fatalf("state = %v, want paused", got)
	}
	if h.sched.Pending() != 0 {
		t.Fatalf("tick still pending after pause")
	}
	if ran := h.frame(5000); ran != 0 {
		t.Fatalf("%d ticks ran while paused", ran)
	}

	h.clock.now = h.clock.at(10000)
	if got := h.s.TogglePause(); got != StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
	h.frame(10500)

	if got := h.s.Score(); got != 1500 {
		t.Errorf("score = %d, want 1500", got)
	}
	if h.s.Level() != 1 {
		t.Errorf("level = %d, paused time must not advance difficulty", h.s.Level())
	}
}

func TestPauseResumeKeepsSingleTick(t *testing.T) {
	h := newHarness(t)
	h.s.Start()
	h.s.TogglePause()
	h.s.TogglePause()
	h.s.TogglePause()
	h.s.TogglePause()
	if h.sched.Pending() != 1 {
		t.Errorf("pending = %d, want 1", h.sched.Pending())
	}
}

func TestTogglePauseIgnoredOutsidePlay(t *testing.T) {
	h := newHarness(t)
	if got := h.s.TogglePause(); got != StateStart {
		t.Errorf("state = %v, want start", got)
	}
	if h.sched.Pending() != 0 {
		t.Error("tick scheduled from start screen")
	}
}

func TestDifficultyAppliesOncePerBoundary(t *testing.T) {
	h := newHarness(t)
	h.s.Start()
	for _, ms := range []int{1200, 3333, 4999, 5000, 5001, 5017, 5600, 9999} {
		h.frame(ms)
	}
	if h.s.Level() != 2 {
		t.Fatalf("level = %d, want 2", h.s.Level())
	}
	if got, want := h.s.Speed(), 2*1.2; !almostEqual(got, want) {
		t.Errorf("speed = %v, want %v", got, want)
	}
	if got, want := h.s.SpawnRate(), 0.02*1.15; !almostEqual(got, want) {
		t.Errorf("spawn rate = %v, want %v", got, want)
	}
	if n := countEvents(drain(h.s), EventLevelUp); n != 1 {
		t.Errorf("level-up events = %d, want 1", n)
	}

	// A stalled frame crossing two boundaries applies both.
	h.frame(15500)
	if h.s.Level() != 4 {
		t.Errorf("level = %d, want 4", h.s.Level())
	}
}

func TestPowerupAwardsBonus(t *testing.T) {
	h := newHarness(t)
	h.s.Start()
	h.s.entities = append(h.s.entities, object.NewEntity(object.Powerup, 180, 660, 40, 40))

	h.frame(0)
	if got := h.s.Score(); got != 50 {
		t.Errorf("score = %d, want 50", got)
	}
	if len(h.s.Entities()) != 0 {
		t.Errorf("powerup not removed")
	}
	if h.s.State() != StatePlaying {
		t.Errorf("state = %v, want playing", h.s.State())
	}
	if n := countEvents(drain(h.s), EventPowerup); n != 1 {
		t.Errorf("powerup events = %d, want 1", n)
	}
}

func TestObstacleEndsGame(t *testing.T) {
	h := newHarness(t)
	h.s.Start()
	h.frame(700)
	h.s.entities = append(h.s.entities, object.NewEntity(object.Obstacles[0], 180, 660, 40, 40))

	h.frame(750)
	if h.s.State() != StateGameOver {
		t.Fatalf("state = %v, want gameOver", h.s.State())
	}
	if h.s.FinalScore() != 750 {
		t.Errorf("final score = %d, want 750", h.s.FinalScore())
	}
	if h.sched.Pending() != 0 || h.s.Pending() {
		t.Error("tick still pending after game over")
	}
	if len(h.s.Entities()) != 0 || h.s.Player() != nil {
		t.Errorf("game over left %d entities, player %v", len(h.s.Entities()), h.s.Player())
	}
	events := drain(h.s)
	if n := countEvents(events, EventGameOver); n != 1 {
		t.Fatalf("game-over events = %d, want 1", n)
	}
	if ran := h.frame(800); ran != 0 {
		t.Errorf("%d ticks ran after game over", ran)
	}
}

func TestCollisionScanOrder(t *testing.T) {
	t.Run("powerup before obstacle counts", func(t *testing.T) {
		h := newHarness(t)
		h.s.Start()
		h.s.entities = append(h.s.entities,
			object.NewEntity(object.Powerup, 180, 660, 40, 40),
			object.NewEntity(object.Obstacles[1], 180, 660, 40, 40),
		)
		h.frame(0)
		if h.s.State() != StateGameOver {
			t.Fatalf("state = %v, want gameOver", h.s.State())
		}
		if h.s.FinalScore() != 50 {
			t.Errorf("final score = %d, want 50", h.s.FinalScore())
		}
	})
	t.Run("obstacle first stops the scan", func(t *testing.T) {
		h := newHarness(t)
		h.s.Start()
		h.s.entities = append(h.s.entities,
			object.NewEntity(object.Obstacles[1], 180, 660, 40, 40),
			object.NewEntity(object.Powerup, 180, 660, 40, 40),
		)
		if !h.s.checkCollisions() {
			t.Fatal("checkCollisions() = false, want hit")
		}
		if len(h.s.entities) != 2 || h.s.bonus != 0 {
			t.Errorf("scan went past the obstacle: entities %d bonus %d", len(h.s.entities), h.s.bonus)
		}
	})
	t.Run("obstacle first scores nothing", func(t *testing.T) {
		h := newHarness(t)
		h.s.Start()
		h.s.entities = append(h.s.entities,
			object.NewEntity(object.Obstacles[1], 180, 660, 40, 40),
			object.NewEntity(object.Powerup, 180, 660, 40, 40),
		)
		h.frame(0)
		if h.s.State() != StateGameOver {
			t.Fatalf("state = %v, want gameOver", h.s.State())
		}
		if h.s.FinalScore() != 0 {
			t.Errorf("final score = %d, want 0", h.s.FinalScore())
		}
		if n := countEvents(drain(h.s), EventPowerup); n != 0 {
			t.Errorf("powerup events = %d, want 0", n)
		}
	})
}

func TestCheckCollisionsOverlap(t *testing.T) {
	tests := []struct {
		name   string
		entity physics.Rect
		want   bool
	}{
		{"same origin", physics.Rect{X: 100, Y: 500, W: 40, H: 40}, true},
		{"degenerate inside", physics.Rect{X: 120, Y: 530, W: 1, H: 1}, true},
		{"touching edge", physics.Rect{X: 150, Y: 500, W: 40, H: 40}, false},
		{"above", physics.Rect{X: 100, Y: 400, W: 40, H: 40}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.s.player = &object.Player{Rect: physics.Rect{X: 100, Y: 500, W: 50, H: 70}}
			h.s.entities = []*object.Entity{{Rect: tt.entity, Kind: object.Obstacles[0]}}
			if got := h.s.checkCollisions(); got != tt.want {
				t.Errorf("checkCollisions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntitiesCulledBelowArea(t *testing.T) {
	h := newHarness(t)
	h.s.Start()
	h.s.entities = append(h.s.entities,
		object.NewEntity(object.Obstacles[0], 20, 797, 40, 40),
		object.NewEntity(object.Obstacles[2], 20, 799, 40, 40),
		object.NewEntity(object.Obstacles[3], 20, 10, 40, 40),
	)
	h.frame(0)
	es := h.s.Entities()
	if len(es) != 2 {
		t.Fatalf("entities = %d, want 2", len(es))
	}
	if es[0].Kind.ID != object.Obstacles[0].ID || es[1].Kind.ID != object.Obstacles[3].ID {
		t.Errorf("spawn order not preserved: %s, %s", es[0].Kind.ID, es[1].Kind.ID)
	}
	if es[0].Y != 799 {
		t.Errorf("y = %v, want 799", es[0].Y)
	}
}

func TestSpawnAppendsEntity(t *testing.T) {
	// spawn draw, powerup draw, kind draw, x draw, then never again
	h := newHarness(t, 0.01, 0.9, 0, 0.5, 0.99)
	h.s.Start()
	h.frame(16)
	es := h.s.Entities()
	if len(es) != 1 {
		t.Fatalf("entities = %d, want 1", len(es))
	}
	e := es[0]
	if e.Kind.ID != object.Obstacles[0].ID {
		t.Errorf("kind = %s, want %s", e.Kind.ID, object.Obstacles[0].ID)
	}
	if e.X != 180 || e.Y != -38 {
		t.Errorf("entity at (%v, %v), want (180, -38)", e.X, e.Y)
	}
}

func TestSpawnedEntityCollidesOnItsFirstTick(t *testing.T) {
	tuning := config.DefaultTuning()
	tuning.Entities.SpawnY = 660

	t.Run("obstacle", func(t *testing.T) {
		h := newTunedHarness(t, tuning, 0, 0.9, 0, 0.5, 0.99)
		h.s.Start()
		h.frame(16)
		if h.s.State() != StateGameOver {
			t.Fatalf("state = %v, want gameOver", h.s.State())
		}
		if h.s.FinalScore() != 16 {
			t.Errorf("final score = %d, want 16", h.s.FinalScore())
		}
		if n := countEvents(drain(h.s), EventGameOver); n != 1 {
			t.Errorf("game-over events = %d, want 1", n)
		}
	})
	t.Run("powerup", func(t *testing.T) {
		h := newTunedHarness(t, tuning, 0, 0.1, 0.5, 0.99)
		h.s.Start()
		h.frame(16)
		if h.s.State() != StatePlaying {
			t.Fatalf("state = %v, want playing", h.s.State())
		}
		if h.s.Score() != 66 {
			t.Errorf("score = %d, want 66", h.s.Score())
		}
		if len(h.s.Entities()) != 0 {
			t.Errorf("entities = %d, want powerup collected", len(h.s.Entities()))
		}
		if n := countEvents(drain(h.s), EventPowerup); n != 1 {
			t.Errorf("powerup events = %d, want 1", n)
		}
	})
}

func TestPlayerCreationRetriesOnSmallArea(t *testing.T) {
	h := newHarness(t)
	h.s.SetPlayArea(50, 50)
	h.s.Start()
	if h.s.Player() != nil {
		t.Fatal("player created on unusable area")
	}
	if h.s.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", h.s.State())
	}

	h.frame(50)
	h.s.SetPlayArea(400, 800)
	h.frame(60)
	if h.s.Player() != nil {
		t.Fatal("player created before retry delay")
	}
	h.frame(100)
	if h.s.Player() == nil {
		t.Fatal("player not created after retry delay")
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	h := newHarness(t)
	h.s.Start()
	in := h.s.Input()

	in.KeyDown(input.KeyArrowLeft)
	in.KeyDown(input.KeyDown)
	for i := 1; i <= 100; i++ {
		h.frame(i * 16)
	}
	p := h.s.Player()
	if p.X != 0 || p.Y != p.MaxY {
		t.Errorf("player at (%v, %v), want (0, %v)", p.X, p.Y, p.MaxY)
	}

	in.Reset()
	in.PointerMove(10000, -10000)
	h.frame(1700)
	if p.X != 350 || p.Y != p.MinY {
		t.Errorf("player at (%v, %v), want (350, %v)", p.X, p.Y, p.MinY)
	}

	in.PointerMove(200, 700)
	h.frame(1716)
	if p.X != 175 || p.Y != 665 {
		t.Errorf("player at (%v, %v), want (175, 665)", p.X, p.Y)
	}
}

func TestRestartFlow(t *testing.T) {
	h := newHarness(t)
	if h.s.Restart() {
		t.Error("Restart from start screen should be rejected")
	}
	h.s.Start()
	h.frame(2000)
	h.s.entities = append(h.s.entities, object.NewEntity(object.Obstacles[0], 180, 660, 40, 40))
	h.frame(2016)
	if h.s.State() != StateGameOver {
		t.Fatalf("state = %v, want gameOver", h.s.State())
	}
	if h.s.Start() {
		t.Error("Start from game over should be rejected")
	}
	if !h.s.Restart() {
		t.Fatal("Restart returned false")
	}
	if h.s.State() != StateStart {
		t.Fatalf("state = %v, want start", h.s.State())
	}

	h.clock.now = h.clock.at(3000)
	h.s.Start()
	if h.s.Score() != 0 || h.s.Level() != 1 || len(h.s.Entities()) != 0 {
		t.Errorf("session not reset: score %d level %d entities %d",
			h.s.Score(), h.s.Level(), len(h.s.Entities()))
	}
	h.frame(3100)
	if h.s.Score() != 100 {
		t.Errorf("score = %d, want 100", h.s.Score())
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
