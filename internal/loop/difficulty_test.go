package loop

import (
	"testing"

	"github.com/tomz197/rocketman/internal/config"
)

func TestDifficultyUpdate(t *testing.T) {
	tun := config.DefaultTuning()
	tests := []struct {
		name    string
		elapsed []int64
		level   int
		gained  int // on the last call
	}{
		{"start", []int64{0}, 1, 0},
		{"just before boundary", []int64{4999}, 1, 0},
		{"on boundary", []int64{5000}, 2, 1},
		{"boundary repeated", []int64{5000, 5001, 5999}, 2, 0},
		{"second boundary", []int64{5000, 10000}, 3, 1},
		{"skipped boundaries", []int64{16000}, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDifficulty(tun.Difficulty, tun.Entities)
			var gained int
			for _, ms := range tt.elapsed {
				gained = d.Update(ms)
			}
			if d.Level() != tt.level {
				t.Errorf("level = %d, want %d", d.Level(), tt.level)
			}
			if gained != tt.gained {
				t.Errorf("gained = %d, want %d", gained, tt.gained)
			}
		})
	}
}

func TestDifficultyReset(t *testing.T) {
	tun := config.DefaultTuning()
	d := NewDifficulty(tun.Difficulty, tun.Entities)
	d.Update(20000)
	d.Reset()
	if d.Level() != 1 || d.Speed() != 2 || d.SpawnRate() != 0.02 {
		t.Errorf("after reset: level %d speed %v rate %v", d.Level(), d.Speed(), d.SpawnRate())
	}
	if d.Update(4000) != 0 {
		t.Error("reset did not clear the last boundary")
	}
}
