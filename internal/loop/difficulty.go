package loop

import (
	"github.com/tomz197/rocketman/internal/config"
)

// Difficulty tracks the level and the two values it scales: fall speed and
// spawn rate. Levels are tied to elapsed play time, one per interval.
type Difficulty struct {
	t        config.DifficultyTuning
	base     config.EntityTuning
	level    int
	speed    float64
	rate     float64
	lastTier int64
}

// NewDifficulty returns a controller at level 1 with base values.
func NewDifficulty(t config.DifficultyTuning, base config.EntityTuning) *Difficulty {
	d := &Difficulty{t: t, base: base}
	d.Reset()
	return d
}

// Reset returns to level 1 and the base speed and spawn rate.
func (d *Difficulty) Reset() {
	d.level = 1
	d.speed = d.base.BaseSpeed
	d.rate = d.base.BaseSpawnRate
	d.lastTier = 0
}

// Update applies every interval boundary crossed by elapsedMS since the
// last call and returns how many levels were gained. Each boundary applies
// exactly once, however the frame deltas fall; a long frame that crosses
// several boundaries applies all of them.
func (d *Difficulty) Update(elapsedMS int64) int {
	if d.t.IntervalSeconds <= 0 {
		return 0
	}
	tier := (elapsedMS / 1000) / int64(d.t.IntervalSeconds)
	gained := 0
	for d.lastTier < tier {
		d.lastTier++
		d.level++
		d.speed *= d.t.SpeedFactor
		d.rate *= d.t.SpawnFactor
		gained++
	}
	return gained
}

// Level returns the current level, starting at 1.
func (d *Difficulty) Level() int { return d.level }

// Speed returns the fall speed in units per frame.
func (d *Difficulty) Speed() float64 { return d.speed }

// SpawnRate returns the per-frame spawn probability. It may exceed 1.
func (d *Difficulty) SpawnRate() float64 { return d.rate }
