package object

import (
	"github.com/tomz197/rocketman/internal/config"
)

// Rand is the uniform [0, 1) source the spawner draws from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spawner creates falling entities. At most one entity spawns per call,
// even once the spawn rate has grown past 1.
type Spawner struct {
	rng      Rand
	t        config.EntityTuning
	minWidth float64
}

// NewSpawner creates a spawner. Spawning is skipped while the play area is
// narrower than minWidth.
func NewSpawner(rng Rand, t config.EntityTuning, minWidth float64) *Spawner {
	return &Spawner{rng: rng, t: t, minWidth: minWidth}
}

// Spawn runs the per-frame spawn attempt for the current spawn rate.
// It returns nil when nothing spawns.
func (s *Spawner) Spawn(rate float64, area Area) *Entity {
	if s.rng.Float64() >= rate {
		return nil
	}
	if area.Width < s.minWidth {
		return nil
	}

	kind := Powerup
	if s.rng.Float64() >= s.t.PowerupChance {
		i := int(s.rng.Float64() * float64(len(Obstacles)))
		if i >= len(Obstacles) {
			i = len(Obstacles) - 1
		}
		kind = Obstacles[i]
	}

	pad := s.t.SpawnPadding
	maxX := area.Width - s.t.Width - pad
	x := pad + s.rng.Float64()*(maxX-pad)

	return NewEntity(kind, x, s.t.SpawnY, s.t.Width, s.t.Height)
}
