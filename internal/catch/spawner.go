package catch

import (
	"time"

	"github.com/vovakirdan/catcher/internal/core"
)

// spawnTimer fires every interval of accumulated simulation time.
type spawnTimer struct {
	interval time.Duration
	elapsed  time.Duration
	running  bool
}

func (t *spawnTimer) start() {
	t.elapsed = 0
	t.running = true
}

func (t *spawnTimer) stop() {
	t.elapsed = 0
	t.running = false
}

// advance adds dt and returns how many times the timer fired.
func (t *spawnTimer) advance(dt time.Duration) int {
	if !t.running || t.interval <= 0 {
		return 0
	}
	t.elapsed += dt
	fired := 0
	for t.elapsed >= t.interval {
		t.elapsed -= t.interval
		fired++
	}
	return fired
}

// Spawner owns the reward and hazard timers and creates entities when they fire.
type Spawner struct {
	rules  *Rules
	policy *RandomPolicy
	reward spawnTimer
	hazard spawnTimer
}

// NewSpawner creates a stopped spawner.
func NewSpawner(rules *Rules, policy *RandomPolicy) *Spawner {
	return &Spawner{
		rules:  rules,
		policy: policy,
		reward: spawnTimer{interval: rules.RewardInterval},
		hazard: spawnTimer{interval: rules.HazardInterval},
	}
}

// Start restarts both timers from zero.
func (s *Spawner) Start() {
	s.reward.start()
	s.hazard.start()
}

// Cancel stops both timers. Nothing spawns until the next Start.
func (s *Spawner) Cancel() {
	s.reward.stop()
	s.hazard.stop()
}

// Running reports whether the timers are active.
func (s *Spawner) Running() bool {
	return s.reward.running || s.hazard.running
}

// Advance moves both timers forward by dt and inserts one entity per firing.
// It returns the number of entities spawned.
func (s *Spawner) Advance(dt time.Duration, set *EntitySet) int {
	n := 0
	for range s.reward.advance(dt) {
		s.Spawn(s.policy.ChooseCategory(), set)
		n++
	}
	for range s.hazard.advance(dt) {
		s.Spawn(Hazard, set)
		n++
	}
	return n
}

// Spawn creates one entity of category c at a random X on the top edge.
func (s *Spawner) Spawn(c Category, set *EntitySet) Entity {
	spec := s.rules.Spec(c)
	x := s.policy.Uniform(s.rules.EdgeMargin, s.rules.Field.X-s.rules.EdgeMargin)
	vx := s.policy.Uniform(s.rules.DriftMin, s.rules.DriftMax)
	return set.Insert(Entity{
		Category: c,
		Pos:      core.Vec2{X: x, Y: 0},
		Vel:      core.Vec2{X: vx, Y: spec.FallSpeed},
		Points:   spec.Points,
		Size:     spec.Size,
	})
}
