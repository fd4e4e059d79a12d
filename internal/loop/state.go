// Package loop implements the game simulation: the session state machine,
// the per-frame tick and its phases.
package loop

// GameState is the session phase.
type GameState int

const (
	StateStart    GameState = iota // Title screen, no simulation
	StatePlaying                   // Ticks scheduled every frame
	StatePaused                    // Simulation frozen, no tick pending
	StateGameOver                  // Final score captured, waiting for restart
)

func (s GameState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// EventType identifies a presentation signal raised by the simulation.
type EventType int

const (
	EventPowerup  EventType = iota // score highlight
	EventLevelUp                   // level highlight
	EventGameOver                  // leaderboard refresh
)

// Event is a transient signal for the presentation layer. It carries no
// simulation state beyond a snapshot of the values it announces.
type Event struct {
	Type  EventType
	Score int64
	Level int
}

// eventBuffer is the capacity of the session's event channel.
const eventBuffer = 32
