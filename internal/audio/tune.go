package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// note is a pitch in Hz held for a number of eighths. Zero Hz is a rest.
type note struct {
	freq    float64
	eighths int
}

// melody is a short chiptune loop in A minor.
var melody = []note{
	{440.00, 1}, {523.25, 1}, {659.25, 1}, {523.25, 1},
	{587.33, 2}, {493.88, 2},
	{440.00, 1}, {523.25, 1}, {659.25, 1}, {783.99, 1},
	{659.25, 2}, {0, 2},
	{349.23, 1}, {440.00, 1}, {523.25, 1}, {440.00, 1},
	{392.00, 1}, {493.88, 1}, {587.33, 1}, {493.88, 1},
	{440.00, 3}, {0, 1},
}

const (
	eighth    = 150 * time.Millisecond
	tuneGain  = 0.12
	releaseMS = 20
)

// tune is an endless square-wave rendition of melody.
type tune struct {
	sr      beep.SampleRate
	step    int // samples per eighth
	idx     int // current note
	pos     int // sample within the current note
	phase   float64
	release int // samples of fade at the end of each note
}

func newTune(sr beep.SampleRate) *tune {
	return &tune{
		sr:      sr,
		step:    sr.N(eighth),
		release: sr.N(releaseMS * time.Millisecond),
	}
}

// Stream implements beep.Streamer. It never runs dry.
func (t *tune) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		n := melody[t.idx]
		length := n.eighths * t.step

		v := 0.0
		if n.freq > 0 {
			v = tuneGain
			if math.Mod(t.phase, 1) >= 0.5 {
				v = -v
			}
			if left := length - t.pos; left < t.release {
				v *= float64(left) / float64(t.release)
			}
			t.phase += n.freq / float64(t.sr)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.pos++
		if t.pos >= length {
			t.pos = 0
			t.phase = 0
			t.idx = (t.idx + 1) % len(melody)
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (t *tune) Err() error { return nil }
