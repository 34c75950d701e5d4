package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catcher/internal/catch"
	"github.com/vovakirdan/catcher/internal/core"
)

// holdWindow keeps a direction key active between terminal key repeats,
// which arrive slower than the tick rate.
const holdWindow = 150 * time.Millisecond

// GameModel runs a catch.Game inside Bubble Tea.
type GameModel struct {
	ctx        context.Context
	svc        *Services
	game       *catch.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	held       map[core.Action]uint64 // Tick until which a direction stays pressed
	ticks      uint64
	gen        int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model around an existing game. The game keeps
// the player ID between visits to the menu.
func NewGameModel(ctx context.Context, svc *Services, game *catch.Game, cfg core.RuntimeConfig) GameModel {
	return GameModel{
		ctx:        ctx,
		svc:        svc,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		held:       make(map[core.Action]uint64),
	}
}

// Begin starts a new tick loop. Ticks from any previous loop are ignored.
func (m GameModel) Begin() (GameModel, tea.Cmd) {
	m.gen++
	m.backToMenu = false
	clear(m.held)
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickDuration(), m.gen)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickDuration(), m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.backToMenu {
			return m, nil
		}
		return m.handleTick()

	case highScoreMsg:
		return m.handleHighScore(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	phase := m.game.Round().Phase
	switch action {
	case core.ActionLeft, core.ActionRight:
		m.press(action)

	case core.ActionPause:
		m.inputFrame.Set(core.ActionPause)

	case core.ActionRestart:
		if phase == catch.PhaseGameOver {
			m.restart()
		}

	case core.ActionBack:
		switch phase {
		case catch.PhasePlaying:
			// Esc pauses mid-round; the menu is only reachable after game over.
			m.inputFrame.Set(core.ActionPause)
		case catch.PhaseGameOver:
			if err := m.game.BackToMenu(); err == nil {
				m.backToMenu = true
			}
		}
	}

	return m, nil
}

// press holds a direction for holdWindow and releases the opposite one.
func (m *GameModel) press(a core.Action) {
	ticks := uint64(holdWindow / m.config.TickDuration()) //#nosec G115 -- positive durations
	m.held[a] = m.ticks + max(ticks, 1)
	if a == core.ActionLeft {
		delete(m.held, core.ActionRight)
	} else {
		delete(m.held, core.ActionLeft)
	}
}

func (m *GameModel) restart() {
	if err := m.game.Restart(); err != nil {
		m.svc.logger().Warn("restart refused", "error", err)
		return
	}
	clear(m.held)
	m.svc.logger().Debug("round restarted", "round", m.game.Round().RoundID)
}

// handleMouse turns pointer motion into a catcher position proposal.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen.Width() == 0 {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionMotion, tea.MouseActionPress:
		field := m.game.Rules().Field.X
		x := (float64(msg.X) + 0.5) / float64(m.screen.Width()) * field
		m.inputFrame.Point(x)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.ticks++
	for a, until := range m.held {
		if m.ticks <= until {
			m.inputFrame.Set(a)
		} else {
			delete(m.held, a)
		}
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickDuration(), m.gen)}
	if result.Save != nil {
		m.svc.logger().Info("round over",
			"player", result.Save.PlayerID,
			"score", result.Save.Score,
			"round", result.Save.RoundID,
		)
		cmds = append(cmds, m.svc.submitHighScoreCmd(m.ctx, *result.Save))
	}
	return m, tea.Batch(cmds...)
}

func (m GameModel) handleHighScore(msg highScoreMsg) (tea.Model, tea.Cmd) {
	if !m.game.ApplyHighScoreResult(msg.res) {
		m.svc.logger().Debug("discarding stale high-score result", "round", msg.res.RoundID)
		return m, nil
	}
	res := msg.res
	switch {
	case res.Err != nil && !errors.Is(res.Err, context.Canceled):
		m.svc.logger().Warn("high score not saved", "player", res.PlayerID, "error", res.Err)
	case res.NewHighScore():
		m.svc.logger().Info("new high score", "player", res.PlayerID, "score", res.Score, "previous", res.Stored)
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
