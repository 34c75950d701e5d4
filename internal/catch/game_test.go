package catch

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/catcher/internal/core"
	"github.com/vovakirdan/catcher/internal/highscore"
)

type cueRecorder struct {
	collected  []Category
	gameOvers  int
	musicStart int
	musicStop  int
}

func (r *cueRecorder) Collect(c Category) { r.collected = append(r.collected, c) }
func (r *cueRecorder) GameOver()          { r.gameOvers++ }
func (r *cueRecorder) MusicStart()        { r.musicStart++ }
func (r *cueRecorder) MusicStop()         { r.musicStop++ }

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

func newPlayingGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g := New(DefaultRules(), opts...)
	g.Reset(testRuntime())
	require.NoError(t, g.SetPlayerID("  alice "))
	require.NoError(t, g.Start())
	return g
}

func (g *Game) place(c Category, x, y float64) Entity {
	spec := g.rules.Spec(c)
	return g.entities.Insert(Entity{Category: c, Pos: core.Vec2{X: x, Y: y}, Points: spec.Points, Size: spec.Size})
}

func pointerAt(x float64) core.InputFrame {
	in := core.NewInputFrame()
	in.Point(x)
	return in
}

func TestStartRequiresPlayerID(t *testing.T) {
	g := New(DefaultRules())
	g.Reset(testRuntime())

	err := g.Start()
	assert.ErrorIs(t, err, ErrInvalidPlayerID)
	assert.Equal(t, PhaseMenu, g.Round().Phase)

	assert.ErrorIs(t, g.SetPlayerID("   "), highscore.ErrInvalidPlayerID)
	assert.Equal(t, "", g.Round().PlayerID)
	assert.ErrorIs(t, g.Start(), ErrInvalidPlayerID)
	assert.Equal(t, PhaseMenu, g.Round().Phase)
}

func TestStartEntersPlaying(t *testing.T) {
	cues := &cueRecorder{}
	g := newPlayingGame(t, WithCues(cues))

	r := g.Round()
	assert.Equal(t, PhasePlaying, r.Phase)
	assert.Equal(t, "alice", r.PlayerID)
	assert.NotEqual(t, uuid.Nil, r.RoundID)
	assert.Equal(t, 0, r.Score)
	assert.True(t, g.spawner.Running())
	assert.Equal(t, 400.0, g.State().CatcherX)
	assert.Equal(t, 1, cues.musicStart)
}

func TestInvalidTransitions(t *testing.T) {
	g := New(DefaultRules())
	assert.ErrorIs(t, g.Restart(), ErrInvalidTransition)
	assert.ErrorIs(t, g.BackToMenu(), ErrInvalidTransition)

	g = newPlayingGame(t)
	before := g.Round()
	assert.ErrorIs(t, g.Start(), ErrInvalidTransition)
	assert.ErrorIs(t, g.Restart(), ErrInvalidTransition)
	assert.ErrorIs(t, g.BackToMenu(), ErrInvalidTransition)
	assert.ErrorIs(t, g.SetPlayerID("bob"), ErrInvalidTransition)
	assert.Equal(t, before, g.Round())
}

func TestCatcherClamp(t *testing.T) {
	g := newPlayingGame(t)
	lo, hi := g.rules.CatcherBounds()

	for _, x := range []float64{-1e9, -1, 0, 49, 50, 400, 750, 751, 800, 1e9} {
		g.Step(pointerAt(x))
		got := g.State().CatcherX
		assert.GreaterOrEqual(t, got, lo, "pointer %v", x)
		assert.LessOrEqual(t, got, hi, "pointer %v", x)
	}

	g.Step(pointerAt(lo))
	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	g.Step(left)
	assert.Equal(t, lo, g.State().CatcherX)

	g.Step(pointerAt(hi))
	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	g.Step(right)
	assert.Equal(t, hi, g.State().CatcherX)

	g.Step(pointerAt(400))
	g.Step(right)
	assert.Equal(t, 400+g.rules.KeyStep, g.State().CatcherX)
}

func TestScoreIsSumOfCollected(t *testing.T) {
	cues := &cueRecorder{}
	g := newPlayingGame(t, WithCues(cues))

	g.place(Common, 400, 550)
	g.place(Rare, 420, 560)
	g.place(Bonus, 380, 540)
	g.place(Special, 700, 100)

	res := g.Step(pointerAt(400))
	assert.Len(t, res.Collected, 3)
	assert.Equal(t, 100, res.State.Round.Score)
	assert.Nil(t, res.Save)
	assert.ElementsMatch(t, []Category{Common, Rare, Bonus}, cues.collected)

	g.place(Special, 400, 550)
	res = g.Step(pointerAt(400))
	assert.Equal(t, 120, res.State.Round.Score)
	assert.Equal(t, PhasePlaying, res.State.Round.Phase)
}

func TestSameTickRewardAndHazard(t *testing.T) {
	cues := &cueRecorder{}
	g := newPlayingGame(t, WithCues(cues))
	roundID := g.Round().RoundID

	g.place(Common, 200, 550)
	g.place(Hazard, 210, 545)

	res := g.Step(pointerAt(200))

	assert.Equal(t, 10, res.State.Round.Score)
	assert.Equal(t, PhaseGameOver, res.State.Round.Phase)
	assert.Equal(t, 0, g.entities.Len())
	require.NotNil(t, res.Save)
	assert.Equal(t, highscore.Request{RoundID: roundID, PlayerID: "alice", Score: 10}, *res.Save)
	assert.Equal(t, 1, cues.gameOvers)
	assert.Equal(t, 1, cues.musicStop)
}

func TestTerminationIsIdempotent(t *testing.T) {
	cues := &cueRecorder{}
	g := newPlayingGame(t, WithCues(cues))

	g.place(Hazard, 400, 550)
	g.place(Hazard, 410, 550)
	res := g.Step(pointerAt(400))
	require.NotNil(t, res.Save)
	end := g.Snapshot()

	assert.Nil(t, g.terminate())
	res = g.Step(pointerAt(400))
	assert.Nil(t, res.Save)

	after := g.Snapshot()
	assert.Equal(t, end.Hash(), after.Hash())
	assert.Equal(t, 1, cues.gameOvers)
	assert.Equal(t, 1, cues.musicStop)
}

func TestGameOverFreezesWorld(t *testing.T) {
	g := newPlayingGame(t)

	g.place(Common, 100, 100)
	g.entities.items[0].Vel = core.Vec2{X: 50, Y: 200}
	g.place(Hazard, 400, 550)
	g.Step(pointerAt(400))
	require.Equal(t, PhaseGameOver, g.Round().Phase)

	require.Equal(t, 1, g.entities.Len())
	assert.Equal(t, core.Vec2{}, g.entities.All()[0].Vel)
	assert.False(t, g.spawner.Running())

	for range 600 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, 1, g.entities.Len(), "no spawns after game over")
	assert.Equal(t, 0, g.spawner.Advance(g.rules.HazardInterval*10, &g.entities))
}

func TestHazardCancelsSpawnDueSameTick(t *testing.T) {
	g := newPlayingGame(t)
	dt := g.runtime.TickDuration()
	g.spawner.reward.elapsed = g.rules.RewardInterval - dt
	g.spawner.hazard.elapsed = g.rules.HazardInterval - dt

	g.place(Hazard, 400, 550)
	g.Step(pointerAt(400))

	assert.Equal(t, PhaseGameOver, g.Round().Phase)
	assert.Equal(t, 0, g.entities.Len(), "timers due on the terminating tick must not fire")
}

func TestLowTickRateDoesNotTunnel(t *testing.T) {
	g := New(DefaultRules())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 2, Seed: 1})
	require.NoError(t, g.SetPlayerID("alice"))
	require.NoError(t, g.Start())

	// 150 units per tick would step the hazard from 505 straight past the
	// 525..575 catcher band.
	g.place(Hazard, 400, 355)
	g.entities.items[0].Vel = core.Vec2{Y: 300}

	g.Step(pointerAt(400))
	require.Equal(t, PhasePlaying, g.Round().Phase)
	g.Step(pointerAt(400))
	assert.Equal(t, PhaseGameOver, g.Round().Phase)
}

func TestSubsteps(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, 1, r.substeps(time.Second/60))
	// (300 fall + 100 drift) * 0.5s over a 50 unit catcher.
	assert.Equal(t, 4, r.substeps(500*time.Millisecond))
	assert.Equal(t, 1, r.substeps(0))
}

func TestRestartResets(t *testing.T) {
	cues := &cueRecorder{}
	g := newPlayingGame(t, WithCues(cues))
	first := g.Round().RoundID

	g.place(Bonus, 400, 550)
	g.Step(pointerAt(400))
	for range 200 {
		g.Step(core.NewInputFrame())
	}
	g.place(Hazard, g.State().CatcherX, 550)
	g.Step(core.NewInputFrame())
	require.Equal(t, PhaseGameOver, g.Round().Phase)
	require.Positive(t, g.Round().Score)
	require.Positive(t, g.entities.Len())

	require.NoError(t, g.Restart())
	r := g.Round()
	assert.Equal(t, PhasePlaying, r.Phase)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, 0, g.entities.Len())
	assert.NotEqual(t, first, r.RoundID)
	assert.Equal(t, "alice", r.PlayerID)
	assert.True(t, g.spawner.Running())
	assert.Equal(t, 2, cues.musicStart)
}

func TestBackToMenuKeepsPlayer(t *testing.T) {
	g := newPlayingGame(t)
	g.place(Rare, 400, 550)
	g.place(Hazard, 400, 550)
	g.Step(pointerAt(400))
	require.Equal(t, 50, g.Round().Score)

	require.NoError(t, g.BackToMenu())
	r := g.Round()
	assert.Equal(t, PhaseMenu, r.Phase)
	assert.Equal(t, "alice", r.PlayerID)
	assert.Equal(t, 0, r.Score, "finished score is discarded")
	assert.Equal(t, 0, g.entities.Len())

	require.NoError(t, g.Start())
	assert.Equal(t, PhasePlaying, g.Round().Phase)
}

func TestNoSaveWithoutPlayer(t *testing.T) {
	g := newPlayingGame(t)
	g.round.PlayerID = ""

	g.place(Hazard, 400, 550)
	res := g.Step(pointerAt(400))
	assert.Equal(t, PhaseGameOver, res.State.Round.Phase)
	assert.Nil(t, res.Save)
}

func TestApplyHighScoreResult(t *testing.T) {
	g := newPlayingGame(t)
	g.place(Hazard, 400, 550)
	res := g.Step(pointerAt(400))
	require.NotNil(t, res.Save)

	stale := highscore.Result{Request: highscore.Request{RoundID: uuid.New(), PlayerID: "alice"}}
	assert.False(t, g.ApplyHighScoreResult(stale))
	_, ok := g.LastSave()
	assert.False(t, ok)

	current := highscore.Result{Request: *res.Save, Stored: 40, Found: true}
	assert.True(t, g.ApplyHighScoreResult(current))
	got, ok := g.LastSave()
	require.True(t, ok)
	assert.Equal(t, 40, got.Stored)

	// A result arriving after the next round started is stale.
	require.NoError(t, g.Restart())
	assert.False(t, g.ApplyHighScoreResult(current))
	_, ok = g.LastSave()
	assert.False(t, ok)

	failed := highscore.Result{Request: *res.Save, Err: errors.New("boom")}
	assert.False(t, g.ApplyHighScoreResult(failed), "not in game over")
}

func TestPauseFreezesTick(t *testing.T) {
	g := newPlayingGame(t)
	e := g.place(Common, 100, 100)
	g.entities.items[0].Vel = core.Vec2{Y: 200}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	require.True(t, g.State().Paused)
	tick := g.State().Tick

	for range 120 {
		g.Step(pointerAt(700))
	}
	assert.Equal(t, tick, g.State().Tick)
	assert.Equal(t, 400.0, g.State().CatcherX)
	assert.Equal(t, e.Pos, g.entities.All()[0].Pos)
	assert.Equal(t, PhasePlaying, g.Round().Phase)

	g.Step(pause)
	assert.False(t, g.State().Paused)
	assert.Equal(t, tick+1, g.State().Tick)
}

func TestGameDeterminism(t *testing.T) {
	fixed := uuid.MustParse("7b0c6a4e-2f5e-4d0b-9c0a-3d4f1b2a6e11")

	inputs := make([]core.InputFrame, 1500)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%90 < 30:
			inputs[i].Set(core.ActionLeft)
		case i%90 < 60:
			inputs[i].Set(core.ActionRight)
		case i%200 == 0:
			inputs[i].Point(float64(i % 800))
		}
	}

	run := func() (Snapshot, int) {
		g := New(DefaultRules(), WithRoundIDs(func() uuid.UUID { return fixed }))
		g.Reset(testRuntime())
		require.NoError(t, g.SetPlayerID("det"))
		require.NoError(t, g.Start())
		spawned := 0
		for _, in := range inputs {
			before := g.entities.nextID
			g.Step(in)
			spawned += int(g.entities.nextID - before) //#nosec G115 -- small counts
		}
		return g.Snapshot(), spawned
	}

	s1, n1 := run()
	s2, n2 := run()

	assert.Positive(t, n1)
	assert.Equal(t, n1, n2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, s1.Hash(), s2.Hash())
}

func TestRender(t *testing.T) {
	g := newPlayingGame(t)
	g.place(Common, 400, 300)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Contains(t, screen.Row(0), "Player: alice")
	assert.Contains(t, screen.String(), string(g.rules.Spec(Common).Glyph))

	g.place(Hazard, 400, 550)
	g.Step(pointerAt(400))
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "Saving score...")
	assert.Contains(t, out, "[R] Start Again")

	var red bool
	for y := range screen.Height() {
		for x := range screen.Width() {
			if c := screen.GetCell(x, y); c.Rune == CatcherEdge && c.Color == core.ColorRed {
				red = true
			}
		}
	}
	assert.True(t, red, "catcher is tinted on game over")
}
