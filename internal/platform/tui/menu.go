package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/catcher/internal/highscore"
)

var errNoStore = errors.New("no high-score store configured")

// Menu status messages
const (
	msgEnterPlayer = "Please enter a Player ID!"
	msgSaved       = "Player ID saved!"
	msgKnown       = "Player ID already saved."
	msgSaveFailed  = "Error saving Player ID!"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	menuBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("117")).
			Padding(1, 3)
	statusOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	menuHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the start screen: a player ID field plus Save and Start.
type MenuModel struct {
	ctx       context.Context
	svc       *Services
	input     textinput.Model
	keys      MenuKeyMap
	help      help.Model
	width     int
	height    int
	status    string
	statusErr bool
	statusSeq int

	startRequested  bool
	wantsScoreboard bool
	quitting        bool
}

// NewMenuModel creates the start menu, optionally pre-filled with a player ID.
func NewMenuModel(ctx context.Context, svc *Services, playerID string, width, height int) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "Player ID"
	ti.CharLimit = 64
	ti.Width = 24
	ti.Prompt = "> "
	ti.SetValue(playerID)
	ti.Focus()

	h := help.New()
	h.Width = width

	return MenuModel{
		ctx:    ctx,
		svc:    svc,
		input:  ti,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Start):
			if strings.TrimSpace(m.input.Value()) == "" {
				return m.setStatus(msgEnterPlayer, true)
			}
			m.startRequested = true
			return m, nil

		case key.Matches(msg, m.keys.Save):
			if strings.TrimSpace(m.input.Value()) == "" {
				return m.setStatus(msgEnterPlayer, true)
			}
			return m, m.svc.registerCmd(m.ctx, m.input.Value())

		case key.Matches(msg, m.keys.Scores):
			m.wantsScoreboard = true
			return m, nil
		}

	case registerMsg:
		switch {
		case errors.Is(msg.err, highscore.ErrInvalidPlayerID):
			return m.setStatus(msgEnterPlayer, true)
		case msg.err != nil:
			return m.setStatus(msgSaveFailed, true)
		case msg.created:
			return m.setStatus(msgSaved, false)
		default:
			return m.setStatus(msgKnown, false)
		}

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ShowError displays a transient error, e.g. when the game refuses to start.
func (m MenuModel) ShowError(text string) (MenuModel, tea.Cmd) {
	return m.setStatus(text, true)
}

// setStatus shows text and schedules it to disappear. A newer message
// bumps the sequence so the older timer does nothing.
func (m MenuModel) setStatus(text string, isErr bool) (MenuModel, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return m, clearStatusCmd(m.statusSeq)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(menuTitleStyle.Render("C A N D Y   C A T C H E R"))
	b.WriteString("\n\n")
	b.WriteString("Catch the sweets, dodge the lightning.\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	status := " "
	if m.status != "" {
		style := statusOKStyle
		if m.statusErr {
			style = statusErrStyle
		}
		status = style.Render(m.status)
	}
	b.WriteString(status)

	box := menuBoxStyle.Render(b.String())
	helpLine := menuHelpStyle.Render(m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Center, box, "", helpLine)

	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// PlayerID returns the trimmed contents of the player ID field.
func (m MenuModel) PlayerID() string {
	return strings.TrimSpace(m.input.Value())
}

// StartRequested returns true if the user pressed Start with a non-empty ID.
func (m MenuModel) StartRequested() bool {
	return m.startRequested
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.wantsScoreboard
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Settle clears one-shot requests after the session has acted on them.
func (m MenuModel) Settle() MenuModel {
	m.startRequested = false
	m.wantsScoreboard = false
	return m
}
