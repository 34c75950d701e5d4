// Package config provides YAML-based game configuration loading for the
// catcher game: field geometry, spawn policy, item categories, the high-score
// store, logging and audio.
package config

import (
	"errors"
	"fmt"
)

// CatchConfig contains all configuration for the catcher game.
type CatchConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Catcher    CatcherConfig    `yaml:"catcher"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Categories []CategoryConfig `yaml:"categories"`
	Store      StoreConfig      `yaml:"store"`
	Log        LogConfig        `yaml:"log"`
	Audio      AudioConfig      `yaml:"audio"`
}

// FieldConfig defines the logical play field in field units.
// Rendering scales it to whatever terminal size is available.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CatcherConfig defines the player-controlled catcher.
type CatcherConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from field bottom to catcher center
	KeyStep      float64 `yaml:"key_step"`      // Units moved per tick while a key is held
}

// SpawnConfig defines the two periodic spawn timers.
type SpawnConfig struct {
	RewardIntervalMS int     `yaml:"reward_interval_ms"`
	HazardIntervalMS int     `yaml:"hazard_interval_ms"`
	EdgeMargin       float64 `yaml:"edge_margin"`
	DriftMin         float64 `yaml:"drift_min"` // Horizontal velocity range, units/s
	DriftMax         float64 `yaml:"drift_max"`
}

// CategoryConfig defines one falling item category.
type CategoryConfig struct {
	Name      string  `yaml:"name"` // common, special, bonus, rare, hazard
	Points    int     `yaml:"points"`
	Weight    int     `yaml:"weight"`     // Relative reward spawn weight; ignored for hazard
	FallSpeed float64 `yaml:"fall_speed"` // Vertical velocity, units/s
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Glyph     string  `yaml:"glyph"`
	Color     string  `yaml:"color"`
}

// StoreConfig selects the high-score store driver.
type StoreConfig struct {
	Driver string `yaml:"driver"` // "sqlite", "postgres" or "memory"
	DSN    string `yaml:"dsn"`    // File path for sqlite, connection URL for postgres
}

// LogConfig configures the charmbracelet logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, logfmt
	File   string `yaml:"file"`   // Interactive sessions log here instead of stderr
}

// AudioConfig configures sound cues.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	AssetDir string  `yaml:"asset_dir"` // Optional directory with collect/game-over/music files
	Volume   float64 `yaml:"volume"`    // Master volume, 0 mutes, 1 is unchanged
}

// Category returns the named category config and whether it exists.
func (c CatchConfig) Category(name string) (CategoryConfig, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return CategoryConfig{}, false
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that the configuration describes a playable game.
func (c CatchConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("%w: field must have positive size, got %gx%g", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	}
	if c.Catcher.Width <= 0 || c.Catcher.Height <= 0 {
		return fmt.Errorf("%w: catcher must have positive size", ErrInvalidConfig)
	}
	if c.Catcher.Width > c.Field.Width {
		return fmt.Errorf("%w: catcher width %g exceeds field width %g", ErrInvalidConfig, c.Catcher.Width, c.Field.Width)
	}
	if c.Spawn.RewardIntervalMS <= 0 || c.Spawn.HazardIntervalMS <= 0 {
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalidConfig)
	}
	if c.Spawn.DriftMin > c.Spawn.DriftMax {
		return fmt.Errorf("%w: drift_min %g > drift_max %g", ErrInvalidConfig, c.Spawn.DriftMin, c.Spawn.DriftMax)
	}
	if 2*c.Spawn.EdgeMargin > c.Field.Width {
		return fmt.Errorf("%w: edge_margin %g leaves no spawn band", ErrInvalidConfig, c.Spawn.EdgeMargin)
	}

	totalWeight := 0
	hasHazard := false
	for _, cat := range c.Categories {
		switch cat.Name {
		case "common", "special", "bonus", "rare":
			if cat.Points < 0 || cat.Weight < 0 {
				return fmt.Errorf("%w: category %q has negative points or weight", ErrInvalidConfig, cat.Name)
			}
			totalWeight += cat.Weight
		case "hazard":
			hasHazard = true
		default:
			return fmt.Errorf("%w: unknown category %q", ErrInvalidConfig, cat.Name)
		}
		if cat.Width <= 0 || cat.Height <= 0 || cat.FallSpeed <= 0 {
			return fmt.Errorf("%w: category %q needs positive size and fall speed", ErrInvalidConfig, cat.Name)
		}
	}
	if totalWeight == 0 {
		return fmt.Errorf("%w: reward weights sum to zero", ErrInvalidConfig)
	}
	if !hasHazard {
		return fmt.Errorf("%w: hazard category missing", ErrInvalidConfig)
	}

	switch c.Store.Driver {
	case "", "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	return nil
}
