package catch

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/catcher/internal/core"
)

// Visual characters for rendering
const (
	CatcherChar   = '▀'
	CatcherEdge   = '█'
	GroundChar    = '─'
	hudRows       = 1
	catcherColor  = core.ColorSky
	gameOverColor = core.ColorRed
)

// Render draws the field scaled to the screen, with a one-row HUD on top.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() <= hudRows {
		return
	}

	if g.round.Phase == PhaseMenu {
		g.drawCenteredMessage(dst, g.Title(), "Enter a player ID to start", core.ColorPink)
		return
	}

	for _, e := range g.entities.All() {
		spec := g.rules.Spec(e.Category)
		x, y := g.toCell(dst, e.Pos)
		dst.SetColored(x, y, spec.Glyph, spec.Color)
	}

	g.drawCatcher(dst)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	}
	if g.round.Phase == PhaseGameOver {
		g.drawGameOver(dst)
	}
}

// toCell maps a field position to a screen cell below the HUD.
func (g *Game) toCell(dst *core.Screen, p core.Vec2) (int, int) {
	rows := dst.Height() - hudRows
	x := int(math.Floor(p.X / g.rules.Field.X * float64(dst.Width())))
	y := int(math.Floor(p.Y / g.rules.Field.Y * float64(rows)))
	return core.Clamp(x, 0, dst.Width()-1), hudRows + core.Clamp(y, 0, rows-1)
}

func (g *Game) drawCatcher(dst *core.Screen) {
	box := g.CatcherBox()
	x0, y0 := g.toCell(dst, core.Vec2{X: box.Left(), Y: box.Top()})
	x1, y1 := g.toCell(dst, core.Vec2{X: box.Right(), Y: box.Bottom()})

	color := catcherColor
	if g.round.Phase == PhaseGameOver {
		color = gameOverColor
	}

	for y := y0; y <= y1; y++ {
		dst.SetColored(x0, y, CatcherEdge, color)
		dst.SetColored(x1, y, CatcherEdge, color)
	}
	dst.DrawHLine(x0, y1, x1-x0+1, CatcherChar, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.score.Current()), core.ColorWhite)
	if g.round.PlayerID != "" {
		player := "Player: " + g.round.PlayerID
		dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(player)-1, 0, player, core.ColorGray)
	}
}

func (g *Game) drawGameOver(dst *core.Screen) {
	status := g.saveStatus()
	lines := []string{
		fmt.Sprintf("Score: %d", g.score.Current()),
		status,
		"[R] Start Again   [M] Main Menu",
	}
	g.drawCenteredMessage(dst, "GAME OVER", "", gameOverColor, lines...)
}

// saveStatus describes the high-score write for the game-over overlay.
func (g *Game) saveStatus() string {
	if g.round.PlayerID == "" {
		return "No player ID, score not saved"
	}
	res, ok := g.LastSave()
	switch {
	case !ok:
		return "Saving score..."
	case res.Err != nil:
		return "Could not save score"
	case res.NewHighScore():
		return "New high score!"
	default:
		return fmt.Sprintf("High score: %d", res.Stored)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color, extra ...string) {
	lines := make([]string, 0, len(extra)+1)
	if subtitle != "" {
		lines = append(lines, subtitle)
	}
	lines = append(lines, extra...)

	boxW := utf8.RuneCountInString(title)
	for _, l := range lines {
		boxW = max(boxW, utf8.RuneCountInString(l))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	rect := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, c)

	dst.DrawTextCentered(boxY+1, title, c)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l, core.ColorWhite)
	}
}
