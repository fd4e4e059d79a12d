package loop

// checkCollisions scans entities oldest first. Overlapped powerups award
// the bonus and are removed; the first overlapped obstacle ends the scan
// and reports a terminal hit. Entities after the hit stay untouched.
func (s *Session) checkCollisions() bool {
	if s.player == nil {
		return false
	}
	pr := s.player.Rect

	kept := s.entities[:0]
	hit := false
	for i, e := range s.entities {
		if !pr.Overlaps(e.Rect) {
			kept = append(kept, e)
			continue
		}
		if e.IsPowerup() {
			s.bonus += s.t.Entities.PowerupBonus
			s.emit(Event{Type: EventPowerup, Score: s.Score(), Level: s.diff.Level()})
			continue
		}
		kept = append(kept, s.entities[i:]...)
		hit = true
		break
	}
	clear(s.entities[len(kept):])
	s.entities = kept
	return hit
}
