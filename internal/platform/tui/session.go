package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catcher/internal/catch"
	"github.com/vovakirdan/catcher/internal/core"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full session flow: menu -> game -> menu, plus the
// scoreboard. It is the top-level model for local play and SSH sessions.
type SessionModel struct {
	ctx      context.Context
	svc      *Services
	config   core.RuntimeConfig
	game     *catch.Game
	menu     MenuModel
	play     GameModel
	scores   ScoreboardModel
	view     sessionView
	quitting bool
}

// NewSessionModel creates a new session model. playerID pre-fills the menu.
func NewSessionModel(ctx context.Context, svc *Services, cfg core.RuntimeConfig, playerID string) SessionModel {
	game := svc.newGame()
	game.Reset(cfg)

	return SessionModel{
		ctx:    ctx,
		svc:    svc,
		config: cfg,
		game:   game,
		menu:   NewMenuModel(ctx, svc, playerID, cfg.ScreenW, cfg.ScreenH),
		play:   NewGameModel(ctx, svc, game, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Every screen tracks the size, not just the visible one.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		var cmds [3]tea.Cmd
		m.menu, cmds[0] = updateAs[MenuModel](m.menu, msg)
		m.play, cmds[1] = updateAs[GameModel](m.play, msg)
		m.scores, cmds[2] = updateAs[ScoreboardModel](m.scores, msg)
		return m, tea.Batch(cmds[:]...)

	case highScoreMsg:
		// Results can arrive on any screen; the game decides if they are stale.
		var cmd tea.Cmd
		m.play, cmd = updateAs[GameModel](m.play, msg)
		return m, cmd
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = updateAs[MenuModel](m.menu, msg)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.menu = m.menu.Settle()
		m.scores = NewScoreboardModel(m.ctx, m.svc, m.menu.PlayerID(), m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()
	}

	if m.menu.StartRequested() {
		m.menu = m.menu.Settle()
		return m.startRound()
	}

	return m, cmd
}

// startRound hands the captured player ID to the game and switches screens.
func (m SessionModel) startRound() (tea.Model, tea.Cmd) {
	err := m.game.SetPlayerID(m.menu.PlayerID())
	if err == nil {
		err = m.game.Start()
	}
	if err != nil {
		text := msgEnterPlayer
		if !errors.Is(err, catch.ErrInvalidPlayerID) {
			text = err.Error()
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.ShowError(text)
		return m, cmd
	}

	r := m.game.Round()
	m.svc.logger().Info("round started", "player", r.PlayerID, "round", r.RoundID)

	var cmd tea.Cmd
	m.play, cmd = m.play.Begin()
	m.view = viewGame
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.play, cmd = updateAs[GameModel](m.play, msg)

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.view = viewMenu
		return m, tea.Batch(cmd, m.menu.Init())
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scores, cmd = updateAs[ScoreboardModel](m.scores, msg)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.view = viewMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.play.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Game exposes the session's game, mainly for tests.
func (m SessionModel) Game() *catch.Game {
	return m.game
}

// updateAs forwards msg to a sub-model and restores its concrete type.
func updateAs[M tea.Model](model M, msg tea.Msg) (M, tea.Cmd) {
	next, cmd := model.Update(msg)
	if typed, ok := next.(M); ok {
		return typed, cmd
	}
	return model, cmd
}

// Run starts an interactive local session.
func Run(ctx context.Context, svc *Services, cfg core.RuntimeConfig, playerID string) error {
	model := NewSessionModel(ctx, svc, cfg, playerID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer steers the catcher
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
