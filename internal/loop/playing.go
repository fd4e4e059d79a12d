package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/rocketman/internal/object"
)

// step runs one tick: time and difficulty, player movement, spawning,
// entity motion and culling, then collisions. It reports whether the
// player hit an obstacle.
func (s *Session) step(now time.Time) (bool, error) {
	delta := now.Sub(s.lastFrame)
	if delta < 0 {
		delta = 0
	}
	s.lastFrame = now
	s.elapsed += delta

	if gained := s.diff.Update(s.elapsed.Milliseconds()); gained > 0 {
		s.emit(Event{Type: EventLevelUp, Score: s.Score(), Level: s.diff.Level()})
		s.logger.Debug("level up", "level", s.diff.Level(), "speed", s.diff.Speed(), "rate", s.diff.SpawnRate())
	}

	s.updatePlayer(now)

	if e := s.spawner.Spawn(s.diff.SpawnRate(), s.area); e != nil {
		s.entities = append(s.entities, e)
	}

	if err := s.advanceEntities(); err != nil {
		return false, err
	}
	return s.checkCollisions(), nil
}

func (s *Session) updatePlayer(now time.Time) {
	if s.player == nil {
		if now.Before(s.playerRetryAt) || !s.createPlayer(now) {
			return
		}
	}
	p := s.player
	intent := s.input.Resolve(p.W, p.H, p.Speed, p.VerticalSpeed)
	p.Move(intent, s.area)
}

// advanceEntities moves every entity down and drops the ones that left the
// bottom edge, keeping spawn order.
func (s *Session) advanceEntities() error {
	ctx := object.UpdateContext{Area: s.area, Speed: s.diff.Speed()}
	kept := s.entities[:0]
	for _, e := range s.entities {
		remove, err := e.Update(ctx)
		if err != nil {
			return fmt.Errorf("update entity: %w", err)
		}
		if !remove {
			kept = append(kept, e)
		}
	}
	clear(s.entities[len(kept):])
	s.entities = kept
	return nil
}
