package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris/piece"
)

const (
	cellWidth  = 2  // Terminal columns per playfield cell
	panelGap   = 2  // Columns between the well and the side panel
	panelWidth = 16 // Side panel width
)

// layoutSize returns the screen size needed for a fieldW x fieldH well,
// its side panel and the title row.
func layoutSize(fieldW, fieldH int) (int, int) {
	w := fieldW*cellWidth + 2 + panelGap + panelWidth
	h := fieldH + 2 + 1
	return w, h
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	fw, fh := g.cfg.Playfield.Width, g.cfg.Playfield.Height
	totalW, _ := layoutSize(fw, fh)
	wellW := fw*cellWidth + 2
	wellH := fh + 2

	wellX := (g.screenW - totalW) / 2
	wellY := 1

	title := "T E T R I S"
	dst.DrawTextColored(wellX+(wellW-len(title))/2, 0, title, core.ColorBrightWhite)

	g.renderWell(dst, wellX, wellY, wellW, wellH)
	g.renderPanel(dst, wellX+wellW+panelGap, wellY)
	g.renderOverlays(dst, wellX, wellY, wellW, wellH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	x := (g.screenW - len(msg)) / 2
	y := g.screenH / 2
	dst.DrawText(x, y, msg)

	w, h := layoutSize(g.cfg.Playfield.Width, g.cfg.Playfield.Height)
	hint := fmt.Sprintf("Need %dx%d", w, h)
	hintX := (g.screenW - len(hint)) / 2
	dst.DrawText(hintX, y+1, hint)
}

// renderWell draws the border, the settled cells, the ghost and the active piece.
func (g *Game) renderWell(dst *core.Screen, wellX, wellY, wellW, wellH int) {
	dst.DrawBoxColored(core.NewRect(wellX, wellY, wellW, wellH), core.ColorGray)

	view := g.state.CurrentView()
	originX, originY := wellX+1, wellY+1

	if !g.state.GameOver() {
		ghost := g.state.Current()
		ghost.Y = g.state.GhostY()
		for _, pt := range ghost.Cells() {
			if view.Filled(pt.X, pt.Y) {
				continue
			}
			px := originX + pt.X*cellWidth
			dst.SetColored(px, originY+pt.Y, '░', ghost.Color())
			dst.SetColored(px+1, originY+pt.Y, '░', ghost.Color())
		}
	}

	for y := range view.Height() {
		for x := range view.Width() {
			c := view.At(x, y)
			if c.IsEmpty() {
				continue
			}
			px := originX + x*cellWidth
			dst.SetColored(px, originY+y, '█', c)
			dst.SetColored(px+1, originY+y, '█', c)
		}
	}
}

// renderPanel draws mode, score, lines, level and the next-piece preview.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	mode := "MARATHON"
	if g.mode == ModeSprint {
		mode = "SPRINT"
	}
	dst.DrawTextColored(x, y, mode, core.ColorCyan)

	g.drawStat(dst, x, y+2, "SCORE", fmt.Sprintf("%d", g.state.Score()))

	lines := fmt.Sprintf("%d", g.state.Lines())
	if g.mode == ModeSprint {
		lines = fmt.Sprintf("%d/%d", g.state.Lines(), g.cfg.Sprint.Lines)
	}
	g.drawStat(dst, x, y+5, "LINES", lines)
	g.drawStat(dst, x, y+8, "LEVEL", fmt.Sprintf("%d", g.state.Level()))

	dst.DrawTextColored(x, y+11, "NEXT", core.ColorGray)
	next := piece.Lookup(g.state.Next())
	for _, pt := range next.Mask.Cells() {
		px := x + pt.X*cellWidth
		dst.SetColored(px, y+13+pt.Y, '█', next.Color)
		dst.SetColored(px+1, y+13+pt.Y, '█', next.Color)
	}

	if g.mode == ModeSprint {
		dst.DrawTextColored(x, y+16, "TIME", core.ColorGray)
		dst.DrawTextColored(x, y+17, g.elapsed(), core.ColorBrightWhite)
	}

	if g.clearFlash > 0 {
		dst.DrawTextColored(x, y+19, clearBanner(g.lastClear), core.ColorYellow)
	}
}

func (g *Game) drawStat(dst *core.Screen, x, y int, label, value string) {
	dst.DrawTextColored(x, y, label, core.ColorGray)
	dst.DrawTextColored(x, y+1, value, core.ColorBrightWhite)
}

// elapsed formats the play time as m:ss.t.
func (g *Game) elapsed() string {
	return FormatDuration(g.PlayTime())
}

// FormatDuration renders a play time as m:ss.t.
func FormatDuration(d time.Duration) string {
	tenths := int(d / (100 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

func clearBanner(rows int) string {
	switch rows {
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	default:
		return "TETRIS!"
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, wellX, wellY, wellW, wellH int) {
	centerX := wellX + wellW/2
	centerY := wellY + wellH/2

	switch {
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "SPRINT COMPLETE!", "Time "+g.elapsed(), "Press R to restart")
	case g.state.GameOver():
		scoreStr := fmt.Sprintf("Score: %d", g.state.Score())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", scoreStr, "Press R to restart")
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
