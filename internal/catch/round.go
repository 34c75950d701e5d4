package catch

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/catcher/internal/highscore"
)

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidPlayerID is returned when starting without a player ID.
	ErrInvalidPlayerID = highscore.ErrInvalidPlayerID
	// ErrInvalidTransition is returned when a lifecycle call does not apply
	// to the current phase. The state is left untouched.
	ErrInvalidTransition = errors.New("catch: invalid phase transition")
)

// RoundState is the lifecycle state shared by the loop and the UI.
type RoundState struct {
	Score    int
	Phase    Phase
	PlayerID string    // Empty means no player captured
	RoundID  uuid.UUID // New on every entry into PhasePlaying
}

// SetPlayerID records the player ID from the menu. Whitespace is trimmed and
// an empty result clears the ID. Only allowed in the menu.
func (g *Game) SetPlayerID(raw string) error {
	if g.round.Phase != PhaseMenu {
		return fmt.Errorf("%w: set player in %s", ErrInvalidTransition, g.round.Phase)
	}
	id, err := highscore.NormalizePlayerID(raw)
	if err != nil {
		g.round.PlayerID = ""
		return err
	}
	g.round.PlayerID = id
	return nil
}

// Start moves Menu -> Playing. Requires a player ID.
func (g *Game) Start() error {
	if g.round.Phase != PhaseMenu {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, g.round.Phase)
	}
	if g.round.PlayerID == "" {
		return ErrInvalidPlayerID
	}
	g.enterPlaying()
	return nil
}

// Restart moves GameOver -> Playing with the same player.
func (g *Game) Restart() error {
	if g.round.Phase != PhaseGameOver {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, g.round.Phase)
	}
	g.enterPlaying()
	return nil
}

// BackToMenu moves GameOver -> Menu. The finished round's score is
// discarded; the player ID is kept.
func (g *Game) BackToMenu() error {
	if g.round.Phase != PhaseGameOver {
		return fmt.Errorf("%w: menu from %s", ErrInvalidTransition, g.round.Phase)
	}
	g.score.Reset()
	g.round.Score = 0
	g.entities.Clear()
	g.paused = false
	g.lastSave = nil
	g.round.Phase = PhaseMenu
	return nil
}

func (g *Game) enterPlaying() {
	g.score.Reset()
	g.entities.Clear()
	g.spawner.Start()
	g.catcherX = g.rules.Field.X / 2
	g.paused = false
	g.lastSave = nil
	g.tick = 0
	g.round.Score = 0
	g.round.RoundID = g.newRoundID()
	g.round.Phase = PhasePlaying
	g.cues.MusicStart()
}

// terminate ends the round. It runs at most once per round; later calls
// return nil. The returned request is nil when no player ID is set.
func (g *Game) terminate() *highscore.Request {
	if g.round.Phase != PhasePlaying {
		return nil
	}
	g.spawner.Cancel()
	g.entities.Freeze()
	g.round.Phase = PhaseGameOver
	g.paused = false
	g.cues.MusicStop()
	g.cues.GameOver()

	if g.round.PlayerID == "" {
		return nil
	}
	return &highscore.Request{
		RoundID:  g.round.RoundID,
		PlayerID: g.round.PlayerID,
		Score:    g.score.Current(),
	}
}

// ApplyHighScoreResult records the outcome of the round's high-score write.
// Results from an earlier round, or arriving outside the game-over screen,
// are discarded and false is returned.
func (g *Game) ApplyHighScoreResult(res highscore.Result) bool {
	if g.round.Phase != PhaseGameOver || res.RoundID != g.round.RoundID {
		return false
	}
	g.lastSave = &res
	return true
}

// LastSave returns the applied high-score result for this round, if any.
func (g *Game) LastSave() (highscore.Result, bool) {
	if g.lastSave == nil {
		return highscore.Result{}, false
	}
	return *g.lastSave, true
}
