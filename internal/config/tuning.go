package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds every simulation constant. Values are in play-area units
// (one unit is one logical pixel) and per-frame amounts.
type Tuning struct {
	Player     PlayerTuning     `yaml:"player"`
	Entities   EntityTuning     `yaml:"entities"`
	Difficulty DifficultyTuning `yaml:"difficulty"`
	Area       AreaTuning       `yaml:"area"`
}

// PlayerTuning defines the player sprite and its movement band.
type PlayerTuning struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`          // horizontal units per frame
	VerticalSpeed float64 `yaml:"vertical_speed"` // vertical units per frame
	BandTop       float64 `yaml:"band_top"`       // fraction of the area height where the band starts
	BottomMargin  float64 `yaml:"bottom_margin"`
	StartLift     float64 `yaml:"start_lift"` // spawn distance above maxY
}

// EntityTuning defines falling obstacles and powerups.
type EntityTuning struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	BaseSpeed     float64 `yaml:"base_speed"`
	BaseSpawnRate float64 `yaml:"base_spawn_rate"`
	PowerupChance float64 `yaml:"powerup_chance"`
	PowerupBonus  int64   `yaml:"powerup_bonus"`
	SpawnPadding  float64 `yaml:"spawn_padding"`
	SpawnY        float64 `yaml:"spawn_y"`
}

// DifficultyTuning defines the level-up cadence and multipliers.
type DifficultyTuning struct {
	IntervalSeconds int     `yaml:"interval_seconds"`
	SpeedFactor     float64 `yaml:"speed_factor"`
	SpawnFactor     float64 `yaml:"spawn_factor"`
}

// AreaTuning defines the play-area sanity guard.
type AreaTuning struct {
	MinDimension float64 `yaml:"min_dimension"`
	RetryDelayMS int     `yaml:"retry_delay_ms"`
}

// RetryDelay returns the player-creation retry delay.
func (a AreaTuning) RetryDelay() time.Duration {
	return time.Duration(a.RetryDelayMS) * time.Millisecond
}

// DefaultTuning returns the stock game balance.
func DefaultTuning() Tuning {
	return Tuning{
		Player: PlayerTuning{
			Width:         50,
			Height:        70,
			Speed:         5,
			VerticalSpeed: 4,
			BandTop:       0.75,
			BottomMargin:  10,
			StartLift:     40,
		},
		Entities: EntityTuning{
			Width:         40,
			Height:        40,
			BaseSpeed:     2,
			BaseSpawnRate: 0.02,
			PowerupChance: 0.15,
			PowerupBonus:  50,
			SpawnPadding:  20,
			SpawnY:        -40,
		},
		Difficulty: DifficultyTuning{
			IntervalSeconds: 5,
			SpeedFactor:     1.2,
			SpawnFactor:     1.15,
		},
		Area: AreaTuning{
			MinDimension: 100,
			RetryDelayMS: 100,
		},
	}
}

// LoadTuning reads a YAML tuning file on top of DefaultTuning.
// An empty path or a missing file yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	positive := map[string]float64{
		"player.width":               t.Player.Width,
		"player.height":              t.Player.Height,
		"player.speed":               t.Player.Speed,
		"player.vertical_speed":      t.Player.VerticalSpeed,
		"entities.width":             t.Entities.Width,
		"entities.height":            t.Entities.Height,
		"entities.base_speed":        t.Entities.BaseSpeed,
		"entities.base_spawn_rate":   t.Entities.BaseSpawnRate,
		"difficulty.speed_factor":    t.Difficulty.SpeedFactor,
		"difficulty.spawn_factor":    t.Difficulty.SpawnFactor,
		"area.min_dimension":         t.Area.MinDimension,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
	}
	if t.Difficulty.IntervalSeconds <= 0 {
		return fmt.Errorf("difficulty.interval_seconds must be positive, got %d", t.Difficulty.IntervalSeconds)
	}
	if t.Entities.PowerupChance < 0 || t.Entities.PowerupChance > 1 {
		return fmt.Errorf("entities.powerup_chance must be within [0, 1], got %v", t.Entities.PowerupChance)
	}
	if t.Player.BandTop <= 0 || t.Player.BandTop >= 1 {
		return fmt.Errorf("player.band_top must be within (0, 1), got %v", t.Player.BandTop)
	}
	if t.Entities.PowerupBonus < 0 {
		return fmt.Errorf("entities.powerup_bonus must not be negative, got %d", t.Entities.PowerupBonus)
	}
	return nil
}
