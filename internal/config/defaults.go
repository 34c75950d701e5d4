package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// DefaultCatchConfig returns the hardcoded default configuration.
// It mirrors defaults/catch.yaml and is used if the embedded file fails to parse.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Catcher: CatcherConfig{
			Width:        100,
			Height:       50,
			BottomOffset: 50,
			KeyStep:      7,
		},
		Spawn: SpawnConfig{
			RewardIntervalMS: 1000,
			HazardIntervalMS: 3000,
			EdgeMargin:       50,
			DriftMin:         -100,
			DriftMax:         100,
		},
		Categories: []CategoryConfig{
			{Name: "common", Points: 10, Weight: 6, FallSpeed: 200, Width: 30, Height: 30, Glyph: "●", Color: "pink"},
			{Name: "special", Points: 20, Weight: 2, FallSpeed: 200, Width: 30, Height: 30, Glyph: "◆", Color: "gold"},
			{Name: "bonus", Points: 40, Weight: 1, FallSpeed: 200, Width: 30, Height: 30, Glyph: "♣", Color: "bright_blue"},
			{Name: "rare", Points: 50, Weight: 1, FallSpeed: 200, Width: 30, Height: 30, Glyph: "★", Color: "purple"},
			{Name: "hazard", Points: 0, Weight: 0, FallSpeed: 300, Width: 10, Height: 30, Glyph: "ϟ", Color: "bright_yellow"},
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    "~/.catcher/scores.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "~/.catcher/catcher.log",
		},
		Audio: AudioConfig{
			Enabled:  true,
			AssetDir: "~/.catcher/assets",
			Volume:   1.0,
		},
	}
}
