package client

import (
	"time"

	"github.com/tomz197/rocketman/internal/leaderboard"
	"github.com/tomz197/rocketman/internal/loop"
	loopconfig "github.com/tomz197/rocketman/internal/loop/config"
)

// ClientState holds the presentation state of one client. Simulation state
// lives in the session.
type ClientState struct {
	Running  bool
	Shutdown bool // server is shutting down

	prevState    loop.GameState
	prevShutdown bool
	shutdownAt   time.Time // when the client disconnects on its own

	scoreFlashUntil time.Time
	levelFlashUntil time.Time

	Name         []byte // name entry on the game-over screen
	Submitted    bool
	SubmitFailed bool
	Leaderboard  []leaderboard.Entry
	Highlight    int // index into Leaderboard, -1 for none
}

// NewClientState creates a running client state on the start screen.
func NewClientState() *ClientState {
	return &ClientState{
		Running:   true,
		prevState: loop.StateStart,
		Highlight: -1,
	}
}

// resetEntry clears the name entry and submission state for a new game.
func (s *ClientState) resetEntry(prefill string) {
	s.Name = s.Name[:0]
	s.typeName([]byte(prefill), loopconfig.MaxUsernameLength)
	s.Submitted = false
	s.SubmitFailed = false
	s.Highlight = -1
}

// typeName appends printable text to the name entry up to max bytes.
func (s *ClientState) typeName(text []byte, max int) {
	for _, b := range text {
		if len(s.Name) >= max {
			return
		}
		if b < 0x20 || b > 0x7e {
			continue
		}
		s.Name = append(s.Name, b)
	}
}

// backspace removes the last character of the name entry.
func (s *ClientState) backspace() {
	if len(s.Name) > 0 {
		s.Name = s.Name[:len(s.Name)-1]
	}
}
