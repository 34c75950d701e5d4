package catch

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/catcher/internal/config"
	"github.com/vovakirdan/catcher/internal/core"
)

// seqSource replays fixed values.
type seqSource struct {
	ints   []int
	floats []float64
}

func (s *seqSource) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *seqSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestRulesFromDefaults(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, 800.0, r.Field.X)
	assert.Equal(t, 600.0, r.Field.Y)
	assert.Equal(t, 550.0, r.CatcherY)
	assert.Equal(t, time.Second, r.RewardInterval)
	assert.Equal(t, 3*time.Second, r.HazardInterval)

	assert.Equal(t, 10, r.Spec(Common).Points)
	assert.Equal(t, 20, r.Spec(Special).Points)
	assert.Equal(t, 40, r.Spec(Bonus).Points)
	assert.Equal(t, 50, r.Spec(Rare).Points)
	assert.Equal(t, 0, r.Spec(Hazard).Points)
	assert.Equal(t, 300.0, r.Spec(Hazard).FallSpeed)
	assert.Empty(t, r.Fallbacks)

	lo, hi := r.CatcherBounds()
	assert.Equal(t, 50.0, lo)
	assert.Equal(t, 750.0, hi)
}

func TestRulesFallbacks(t *testing.T) {
	cfg := config.DefaultCatchConfig()
	for i := range cfg.Categories {
		switch cfg.Categories[i].Name {
		case "common":
			cfg.Categories[i].Glyph = ""
		case "hazard":
			cfg.Categories[i].Color = "ultraviolet"
			cfg.Categories[i].Points = 99
		}
	}

	r, err := RulesFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 'o', r.Spec(Common).Glyph)
	assert.Equal(t, core.ColorYellow, r.Spec(Hazard).Color)
	assert.Equal(t, 0, r.Spec(Hazard).Points, "hazards never score")
	assert.Len(t, r.Fallbacks, 2)
}

func TestRulesRejectInvalidConfig(t *testing.T) {
	cfg := config.DefaultCatchConfig()
	cfg.Spawn.RewardIntervalMS = 0

	_, err := RulesFromConfig(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestParseCategory(t *testing.T) {
	require.Len(t, Categories(), int(categoryCount))
	for _, c := range Categories() {
		got, ok := ParseCategory(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := ParseCategory("lollipop")
	assert.False(t, ok)

	assert.True(t, Rare.IsReward())
	assert.False(t, Hazard.IsReward())
}

func TestChooseCategoryBuckets(t *testing.T) {
	rules := DefaultRules()
	// Weights accumulate Common(6), Special(2), Bonus(1), Rare(1).
	src := &seqSource{ints: []int{0, 5, 6, 7, 8, 9}}
	p := NewRandomPolicy(src, &rules)

	want := []Category{Common, Common, Special, Special, Bonus, Rare}
	for i, w := range want {
		assert.Equal(t, w, p.ChooseCategory(), "draw %d", i)
	}
}

func TestChooseCategoryDistribution(t *testing.T) {
	rules := DefaultRules()
	p := NewRandomPolicy(rand.New(rand.NewSource(7)), &rules)

	counts := map[Category]int{}
	const draws = 20000
	for range draws {
		counts[p.ChooseCategory()]++
	}

	assert.Zero(t, counts[Hazard])
	assert.InDelta(t, 0.6, float64(counts[Common])/draws, 0.02)
	assert.InDelta(t, 0.2, float64(counts[Special])/draws, 0.02)
	assert.InDelta(t, 0.1, float64(counts[Bonus])/draws, 0.02)
	assert.InDelta(t, 0.1, float64(counts[Rare])/draws, 0.02)
}

func TestUniform(t *testing.T) {
	rules := DefaultRules()
	p := NewRandomPolicy(&seqSource{floats: []float64{0, 0.5, 0.999}}, &rules)

	assert.Equal(t, -100.0, p.Uniform(-100, 100))
	assert.Equal(t, 0.0, p.Uniform(-100, 100))
	assert.InDelta(t, 99.8, p.Uniform(-100, 100), 1e-9)
	assert.Equal(t, 5.0, p.Uniform(5, 5), "degenerate range consumes nothing")
}

func TestSpawnerTimers(t *testing.T) {
	rules := DefaultRules()
	p := NewRandomPolicy(rand.New(rand.NewSource(1)), &rules)
	s := NewSpawner(&rules, p)
	var set EntitySet

	assert.Equal(t, 0, s.Advance(5*time.Second, &set), "stopped spawner is inert")

	s.Start()
	assert.Equal(t, 0, s.Advance(999*time.Millisecond, &set))
	assert.Equal(t, 1, s.Advance(time.Millisecond, &set))
	assert.Equal(t, 3, s.Advance(2*time.Second, &set), "two rewards and one hazard")
	require.Equal(t, 4, set.Len())

	hazards := 0
	for _, e := range set.All() {
		assert.Equal(t, 0.0, e.Pos.Y)
		assert.GreaterOrEqual(t, e.Pos.X, rules.EdgeMargin)
		assert.LessOrEqual(t, e.Pos.X, rules.Field.X-rules.EdgeMargin)
		assert.GreaterOrEqual(t, e.Vel.X, rules.DriftMin)
		assert.LessOrEqual(t, e.Vel.X, rules.DriftMax)
		assert.Equal(t, rules.Spec(e.Category).FallSpeed, e.Vel.Y)
		if e.Category == Hazard {
			hazards++
		}
	}
	assert.Equal(t, 1, hazards)

	s.Cancel()
	assert.False(t, s.Running())
	assert.Equal(t, 0, s.Advance(10*time.Second, &set))

	// Restart begins from zero, no catch-up burst.
	s.Start()
	assert.Equal(t, 0, s.Advance(999*time.Millisecond, &set))
}

func TestEntityIDsUnique(t *testing.T) {
	var set EntitySet
	a := set.Insert(Entity{})
	b := set.Insert(Entity{})
	set.RemoveIf(func(e *Entity) bool { return e.ID == a.ID })
	c := set.Insert(Entity{})

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
	assert.Equal(t, 2, set.Len())
}

func TestMotionAndCull(t *testing.T) {
	var set EntitySet
	set.Insert(Entity{Pos: core.Vec2{X: 100, Y: 0}, Vel: core.Vec2{X: -100, Y: 200}})
	set.Insert(Entity{Pos: core.Vec2{X: 100, Y: 500}, Vel: core.Vec2{Y: 200}})
	set.Insert(Entity{Pos: core.Vec2{X: 100, Y: 599}, Vel: core.Vec2{Y: 2}})

	Advance(&set, 0.5)

	all := set.All()
	assert.Equal(t, core.Vec2{X: 50, Y: 100}, all[0].Pos)
	assert.Equal(t, core.Vec2{X: 100, Y: 600}, all[1].Pos)
	assert.Equal(t, core.Vec2{X: 100, Y: 600}, all[2].Pos)

	assert.Equal(t, 0, Cull(&set, 600), "exactly on the bottom edge stays")

	Advance(&set, 0.5)
	assert.Equal(t, 2, Cull(&set, 600))
	require.Equal(t, 1, set.Len())
	assert.Equal(t, 200.0, set.All()[0].Pos.Y)
}

func TestResolve(t *testing.T) {
	catcher := core.BoxAt(200, 550, 100, 50)

	tests := []struct {
		name      string
		entities  []Entity
		points    int
		hazard    bool
		remaining int
	}{
		{
			name:     "reward overlap",
			entities: []Entity{{Category: Common, Points: 10, Pos: core.Vec2{X: 200, Y: 550}, Size: core.Vec2{X: 30, Y: 30}}},
			points:   10,
		},
		{
			name:      "touching edge does not collect",
			entities:  []Entity{{Category: Common, Points: 10, Pos: core.Vec2{X: 265, Y: 550}, Size: core.Vec2{X: 30, Y: 30}}},
			remaining: 1,
		},
		{
			name:     "hazard overlap",
			entities: []Entity{{Category: Hazard, Pos: core.Vec2{X: 160, Y: 530}, Size: core.Vec2{X: 10, Y: 30}}},
			hazard:   true,
		},
		{
			name: "reward and hazard together",
			entities: []Entity{
				{Category: Rare, Points: 50, Pos: core.Vec2{X: 220, Y: 540}, Size: core.Vec2{X: 30, Y: 30}},
				{Category: Hazard, Pos: core.Vec2{X: 180, Y: 540}, Size: core.Vec2{X: 10, Y: 30}},
				{Category: Common, Points: 10, Pos: core.Vec2{X: 600, Y: 540}, Size: core.Vec2{X: 30, Y: 30}},
			},
			points:    50,
			hazard:    true,
			remaining: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set EntitySet
			for _, e := range tt.entities {
				set.Insert(e)
			}
			c := Resolve(catcher, &set)
			assert.Equal(t, tt.points, c.Points)
			assert.Equal(t, tt.hazard, c.Hazard)
			assert.Equal(t, tt.remaining, set.Len())
		})
	}
}

func TestScoreTracker(t *testing.T) {
	var s ScoreTracker
	s.Add(10)
	s.Add(-40)
	s.Add(0)
	s.Add(20)
	assert.Equal(t, 30, s.Current())

	s.Reset()
	assert.Equal(t, 0, s.Current())
}
