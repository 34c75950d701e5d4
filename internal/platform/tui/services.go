package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catcher/internal/catch"
	"github.com/vovakirdan/catcher/internal/highscore"
	"github.com/vovakirdan/catcher/internal/storage"
)

// Services are the collaborators a session needs. One value is shared by
// every session of a process; each session builds its own catch.Game.
type Services struct {
	Rules  catch.Rules
	Store  storage.Store     // nil disables the scoreboard
	Scores *highscore.Client // nil disables saving
	Cues   catch.CueSink
	Logger *log.Logger
}

func (s *Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// newGame builds a fresh game session.
func (s *Services) newGame() *catch.Game {
	cues := s.Cues
	if cues == nil {
		cues = catch.NopCues{}
	}
	return catch.New(s.Rules, catch.WithCues(cues))
}

// highScoreMsg carries a finished high-score submission back to the loop.
type highScoreMsg struct {
	res highscore.Result
}

// submitHighScoreCmd runs the read-then-conditional-write off the loop.
func (s *Services) submitHighScoreCmd(ctx context.Context, req highscore.Request) tea.Cmd {
	if s.Scores == nil {
		return nil
	}
	ch := s.Scores.Launch(ctx, req)
	return func() tea.Msg {
		return highScoreMsg{res: <-ch}
	}
}

// registerMsg reports the outcome of the menu Save action.
type registerMsg struct {
	playerID string
	created  bool
	err      error
}

func (s *Services) registerCmd(ctx context.Context, raw string) tea.Cmd {
	return func() tea.Msg {
		if s.Scores == nil {
			return registerMsg{err: errNoStore}
		}
		id, created, err := s.Scores.Register(ctx, raw)
		return registerMsg{playerID: id, created: created, err: err}
	}
}

// scoresMsg delivers a loaded leaderboard.
type scoresMsg struct {
	records []highscore.Record
	err     error
}

func (s *Services) loadScoresCmd(ctx context.Context, limit int) tea.Cmd {
	return func() tea.Msg {
		if s.Store == nil {
			return scoresMsg{err: errNoStore}
		}
		ctx, cancel := context.WithTimeout(ctx, highscore.DefaultTimeout)
		defer cancel()
		records, err := s.Store.Top(ctx, limit)
		return scoresMsg{records: records, err: err}
	}
}
