// Package tui provides the Bubble Tea integration for the catcher game.
// It handles the terminal UI loop, input mapping, and screen orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the tick
// loop that produced it so a loop left over from an earlier round dies out.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick message after d.
func tickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// statusTTL is how long menu status messages stay visible.
const statusTTL = 2 * time.Second

// clearStatusMsg hides the status message with the same sequence number.
type clearStatusMsg struct{ seq int }

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
