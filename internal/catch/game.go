package catch

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/catcher/internal/core"
	"github.com/vovakirdan/catcher/internal/highscore"
)

// State is the summary the platform shows and reacts to after each step.
type State struct {
	Round    RoundState
	Paused   bool
	CatcherX float64
	Entities int
	Tick     uint64
}

// StepResult is what one tick produced.
type StepResult struct {
	State     State
	Collected []Entity           // Rewards caught this tick
	Save      *highscore.Request // Set on the tick the round ended, if a player is set
}

// Game is the fixed-step gameplay session. It is not safe for concurrent use;
// the platform loop owns it.
type Game struct {
	rules    Rules
	runtime  core.RuntimeConfig
	rng      *rand.Rand
	policy   *RandomPolicy
	spawner  *Spawner
	entities EntitySet
	score    ScoreTracker
	round    RoundState
	catcherX float64
	paused   bool
	tick     uint64
	lastSave *highscore.Result
	cues     CueSink
	idGen    func() uuid.UUID
}

// Option configures a Game.
type Option func(*Game)

// WithCues routes audio cues to sink.
func WithCues(sink CueSink) Option {
	return func(g *Game) {
		if sink != nil {
			g.cues = sink
		}
	}
}

// WithRoundIDs overrides round ID generation.
func WithRoundIDs(fn func() uuid.UUID) Option {
	return func(g *Game) {
		if fn != nil {
			g.idGen = fn
		}
	}
}

// New creates a game in the menu phase. Call Reset before stepping.
func New(rules Rules, opts ...Option) *Game {
	g := &Game{
		rules: rules,
		cues:  NopCues{},
		idGen: uuid.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "catch"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Candy Catcher"
}

// Reset reseeds the game and returns it to the menu. The player ID survives.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.policy = NewRandomPolicy(g.rng, &g.rules)
	g.spawner = NewSpawner(&g.rules, g.policy)
	g.entities.Clear()
	g.score.Reset()
	g.catcherX = g.rules.Field.X / 2
	g.paused = false
	g.tick = 0
	g.lastSave = nil
	g.round = RoundState{Phase: PhaseMenu, PlayerID: g.round.PlayerID}
}

// Rules returns the game's tuning.
func (g *Game) Rules() *Rules {
	return &g.rules
}

// Round returns the lifecycle state.
func (g *Game) Round() RoundState {
	r := g.round
	r.Score = g.score.Current()
	return r
}

// Entities returns the live entities. Read-only.
func (g *Game) Entities() []Entity {
	return g.entities.All()
}

// CatcherBox returns the catcher's bounding box.
func (g *Game) CatcherBox() core.Box {
	return core.BoxAt(g.catcherX, g.rules.CatcherY, g.rules.CatcherSize.X, g.rules.CatcherSize.Y)
}

// State returns the current state summary.
func (g *Game) State() State {
	return State{
		Round:    g.Round(),
		Paused:   g.paused,
		CatcherX: g.catcherX,
		Entities: g.entities.Len(),
		Tick:     g.tick,
	}
}

// Step advances the game by one fixed tick: input, motion and culling,
// collision, then the spawn timers. Only PhasePlaying advances anything.
// Motion and collision run in as many sub-steps as needed for no item to
// move further than the catcher is thick.
func (g *Game) Step(in core.InputFrame) StepResult {
	if g.round.Phase != PhasePlaying {
		return StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return StepResult{State: g.State()}
	}

	g.tick++
	dt := g.runtime.TickDuration()

	g.applyInput(in)

	res := StepResult{}
	n := g.rules.substeps(dt)
	sub := dt.Seconds() / float64(n)
	for range n {
		Advance(&g.entities, sub)
		Cull(&g.entities, g.rules.Field.Y)

		hit := Resolve(g.CatcherBox(), &g.entities)
		if len(hit.Collected) > 0 {
			g.score.Add(hit.Points)
			for _, e := range hit.Collected {
				g.cues.Collect(e.Category)
			}
			res.Collected = append(res.Collected, hit.Collected...)
		}
		if hit.Hazard {
			res.Save = g.terminate()
			break
		}
	}

	if g.round.Phase == PhasePlaying {
		g.spawner.Advance(dt, &g.entities)
	}

	res.State = g.State()
	return res
}

// applyInput moves the catcher: the pointer proposes an absolute X, held
// keys then nudge it, and the result is always clamped to the field.
func (g *Game) applyInput(in core.InputFrame) {
	x := g.catcherX
	if in.HasPointer {
		x = in.PointerX
	}
	if in.Has(core.ActionLeft) {
		x -= g.rules.KeyStep
	}
	if in.Has(core.ActionRight) {
		x += g.rules.KeyStep
	}
	lo, hi := g.rules.CatcherBounds()
	g.catcherX = core.ClampF(x, lo, hi)
}

func (g *Game) newRoundID() uuid.UUID {
	return g.idGen()
}
