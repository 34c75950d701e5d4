// Package catch implements the catcher gameplay session engine: spawning of
// falling items, motion and culling, collision and scoring, and the round
// lifecycle (menu -> playing -> game over -> restart or menu).
//
// Everything here is plain data and fixed-step functions. The package has no
// terminal, audio or network dependencies; those are wired in by the platform.
package catch

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/catcher/internal/config"
	"github.com/vovakirdan/catcher/internal/core"
)

// Category classifies a falling item.
type Category int

const (
	Common Category = iota
	Special
	Rare
	Bonus
	Hazard
	categoryCount
)

// rewardOrder is the order in which reward weights are accumulated.
var rewardOrder = [...]Category{Common, Special, Bonus, Rare}

// String returns the config name of the category.
func (c Category) String() string {
	switch c {
	case Common:
		return "common"
	case Special:
		return "special"
	case Rare:
		return "rare"
	case Bonus:
		return "bonus"
	case Hazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// IsReward reports whether catching the item scores points.
func (c Category) IsReward() bool {
	return c >= Common && c < Hazard
}

// ParseCategory resolves a config name.
func ParseCategory(name string) (Category, bool) {
	for c := Common; c < categoryCount; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// Categories lists every category, rewards first.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Common; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// CategorySpec holds the fixed attributes every item of a category gets at spawn.
type CategorySpec struct {
	Points    int
	Weight    int
	FallSpeed float64 // units/s, positive is down
	Size      core.Vec2
	Glyph     rune
	Color     core.Color
}

// Fallback glyphs and colors used when the configured ones are unusable.
var (
	fallbackGlyphs = [categoryCount]rune{'o', 'o', 'o', 'o', '!'}
	fallbackColors = [categoryCount]core.Color{core.ColorPink, core.ColorGold, core.ColorPurple, core.ColorBlue, core.ColorYellow}
)

// Rules is the immutable game tuning derived from configuration.
type Rules struct {
	Field          core.Vec2
	CatcherSize    core.Vec2
	CatcherY       float64 // Center line of the catcher
	KeyStep        float64 // Units per tick while a direction key is held
	RewardInterval time.Duration
	HazardInterval time.Duration
	EdgeMargin     float64
	DriftMin       float64
	DriftMax       float64
	Specs          [categoryCount]CategorySpec

	// Fallbacks lists human-readable notes for every glyph or color that had
	// to be substituted. The caller decides whether to log them.
	Fallbacks []string
}

// Spec returns the attributes of a category.
func (r *Rules) Spec(c Category) CategorySpec {
	if c < 0 || c >= categoryCount {
		return CategorySpec{}
	}
	return r.Specs[c]
}

// CatcherBounds returns the clamp range for the catcher's center.
func (r *Rules) CatcherBounds() (lo, hi float64) {
	half := r.CatcherSize.X / 2
	return half, r.Field.X - half
}

// RulesFromConfig validates cfg and converts it into Rules.
func RulesFromConfig(cfg config.CatchConfig) (Rules, error) {
	if err := cfg.Validate(); err != nil {
		return Rules{}, err
	}

	r := Rules{
		Field:          core.Vec2{X: cfg.Field.Width, Y: cfg.Field.Height},
		CatcherSize:    core.Vec2{X: cfg.Catcher.Width, Y: cfg.Catcher.Height},
		CatcherY:       cfg.Field.Height - cfg.Catcher.BottomOffset,
		KeyStep:        cfg.Catcher.KeyStep,
		RewardInterval: time.Duration(cfg.Spawn.RewardIntervalMS) * time.Millisecond,
		HazardInterval: time.Duration(cfg.Spawn.HazardIntervalMS) * time.Millisecond,
		EdgeMargin:     cfg.Spawn.EdgeMargin,
		DriftMin:       cfg.Spawn.DriftMin,
		DriftMax:       cfg.Spawn.DriftMax,
	}

	for _, cc := range cfg.Categories {
		cat, ok := ParseCategory(cc.Name)
		if !ok {
			return Rules{}, fmt.Errorf("catch: unknown category %q", cc.Name)
		}
		spec := CategorySpec{
			Points:    cc.Points,
			Weight:    cc.Weight,
			FallSpeed: cc.FallSpeed,
			Size:      core.Vec2{X: cc.Width, Y: cc.Height},
		}
		if cat == Hazard {
			spec.Points = 0
			spec.Weight = 0
		}

		if g, size := utf8.DecodeRuneInString(cc.Glyph); g != utf8.RuneError && size == len(cc.Glyph) {
			spec.Glyph = g
		} else {
			spec.Glyph = fallbackGlyphs[cat]
			r.Fallbacks = append(r.Fallbacks, fmt.Sprintf("%s: glyph %q unusable, using %q", cat, cc.Glyph, spec.Glyph))
		}
		if c, ok := core.ParseColor(cc.Color); ok {
			spec.Color = c
		} else {
			spec.Color = fallbackColors[cat]
			r.Fallbacks = append(r.Fallbacks, fmt.Sprintf("%s: color %q unknown, using fallback", cat, cc.Color))
		}

		r.Specs[cat] = spec
	}
	return r, nil
}

// DefaultRules returns Rules for the built-in configuration.
func DefaultRules() Rules {
	r, err := RulesFromConfig(config.DefaultCatchConfig())
	if err != nil {
		panic(fmt.Sprintf("catch: default config invalid: %v", err))
	}
	return r
}
