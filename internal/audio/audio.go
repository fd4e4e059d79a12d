// Package audio plays the looping background tune. Playback follows the
// game: it starts with a run, pauses with it and can be muted at any time.
// When no audio device is available the music stays silent and the game
// carries on.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player is what the client needs from a music source.
type Player interface {
	Play()
	Pause()
	ToggleMute() bool
	Muted() bool
	Close()
}

// Music drives the speaker. The device is opened lazily on the first Play.
type Music struct {
	mu          sync.Mutex
	logger      *log.Logger
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	initialized bool
	failed      bool
	muted       bool
}

// NewMusic creates a paused, unmuted player.
func NewMusic(logger *log.Logger) *Music {
	if logger == nil {
		logger = log.Default()
	}
	ctrl := &beep.Ctrl{Streamer: newTune(sampleRate), Paused: true}
	return &Music{
		logger: logger,
		ctrl:   ctrl,
		volume: &effects.Volume{Streamer: ctrl, Base: 2, Volume: -2},
	}
}

// Play starts or resumes the tune. A device that fails to open is
// remembered and playback is skipped from then on.
func (m *Music) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized && !m.failed {
		if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
			m.failed = true
			m.logger.Debug("audio unavailable, playing silently", "err", err)
			return
		}
		speaker.Play(m.volume)
		m.initialized = true
	}
	m.setPaused(false)
}

// Pause holds the tune at its current position.
func (m *Music) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setPaused(true)
}

// ToggleMute flips the mute state and returns it. Muting works before the
// device is opened and is applied once playback starts.
func (m *Music) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	if m.initialized {
		speaker.Lock()
		m.volume.Silent = m.muted
		speaker.Unlock()
	} else {
		m.volume.Silent = m.muted
	}
	return m.muted
}

// Muted reports the mute state.
func (m *Music) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Close stops playback.
func (m *Music) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	m.setPaused(true)
	speaker.Clear()
	m.initialized = false
}

func (m *Music) setPaused(paused bool) {
	if !m.initialized {
		m.ctrl.Paused = paused
		return
	}
	speaker.Lock()
	m.ctrl.Paused = paused
	speaker.Unlock()
}

// Nop is a Player without sound. Remote sessions use it: the audio device
// belongs to the server, not the player. It still tracks the mute state so
// the HUD stays consistent.
type Nop struct {
	muted bool
}

func (*Nop) Play() {}
func (*Nop) Pause() {}
func (*Nop) Close() {}

func (n *Nop) ToggleMute() bool {
	n.muted = !n.muted
	return n.muted
}

func (n *Nop) Muted() bool { return n.muted }

var (
	_ Player = (*Music)(nil)
	_ Player = (*Nop)(nil)
)
