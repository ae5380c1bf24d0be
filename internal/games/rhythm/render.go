package rhythm

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-rhythm/internal/core"
	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

const (
	laneWidth      = 5
	fieldTop       = 2 // Below the HUD and its separator
	minWidth       = 40
	minHeight      = 12
	judgementFlash = 50 // Frames a judgement stays on screen
)

// Render draws the field, the HUD and any overlay into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if dst.Width() < minWidth || dst.Height() < minHeight {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	field := g.fieldRect(dst)
	g.renderLanes(dst, field)
	g.renderTails(dst, field)
	g.renderMarkers(dst, field)
	g.renderKeys(dst, field)
	g.renderStats(dst, field)

	switch {
	case g.ended:
		g.renderOverlay(dst, "Song complete - R to restart", fmt.Sprintf("Score %.2f  Acc %.1f%%", g.state.Score, g.state.Accuracy()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case g.frame <= g.warmupTicks():
		left := g.warmupTicks() - g.frame
		secs := (left*int(g.cfg.TickPeriodMS) + 999) / 1000
		g.renderOverlay(dst, g.chart.Name, fmt.Sprintf("Starting in %d", secs))
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	title := g.chart.Name
	if g.chart.Artist != "" {
		title += " - " + g.chart.Artist
	}
	hud := fmt.Sprintf(" %s  Score: %.2f  Combo: %d  x%.1f", title, g.state.Score, g.state.Combo, g.state.Multiplier)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// fieldRect is the playfield including its border, two rows for the key hints excluded.
func (g *Game) fieldRect(dst *core.Screen) core.Rect {
	w := engine.LaneCount*laneWidth + 2
	h := dst.Height() - fieldTop - 2
	return core.NewRect(1, fieldTop, w, h)
}

// row maps an engine position onto a field row. ok is false outside the field.
func (g *Game) row(field core.Rect, y float64) (int, bool) {
	inner := field.Inner()
	if y < 0 || g.cfg.CanvasHeight <= 0 {
		return 0, false
	}
	r := int(y / g.cfg.CanvasHeight * float64(inner.H-1))
	if r >= inner.H {
		return 0, false
	}
	return inner.Y + r, true
}

func laneX(field core.Rect, lane int) int {
	return field.Inner().X + lane*laneWidth
}

func (g *Game) renderLanes(dst *core.Screen, field core.Rect) {
	dst.DrawBox(field, core.ColorGray)
	inner := field.Inner()
	for lane := 1; lane < engine.LaneCount; lane++ {
		dst.DrawVLine(laneX(field, lane)-1, inner.Y, inner.H, '┊', core.ColorGray)
	}
	if y, ok := g.row(field, g.cfg.HitLine); ok {
		dst.DrawHLine(inner.X, y, inner.W, '═', core.ColorWhite)
	}
}

func (g *Game) renderTails(dst *core.Screen, field core.Rect) {
	for _, t := range g.state.Tails {
		top, ok := g.row(field, max(t.Leading, 0))
		if !ok {
			continue
		}
		bottom, ok := g.row(field, t.Trailing)
		if !ok {
			bottom = field.Bottom() - 2
		}
		x := laneX(field, t.Lane) + laneWidth/2 - 1
		if bottom >= top {
			dst.DrawVLine(x, top, bottom-top+1, '┃', core.LaneColors[t.Lane])
		}
	}
}

func (g *Game) renderMarkers(dst *core.Screen, field core.Rect) {
	for _, e := range g.state.Background {
		if y, ok := g.row(field, e.Y); ok {
			dst.DrawTextColored(laneX(field, e.Lane)+1, y, "░░", core.ColorGray)
		}
	}
	for _, e := range g.state.Active {
		if y, ok := g.row(field, e.Y); ok {
			dst.DrawTextColored(laneX(field, e.Lane), y, strings.Repeat("▀", laneWidth-1), core.LaneColors[e.Lane])
		}
	}
	for _, e := range g.state.ActiveHolds {
		if y, ok := g.row(field, g.cfg.HitLine); ok {
			dst.DrawTextColored(laneX(field, e.Lane), y, strings.Repeat("█", laneWidth-1), core.LaneColors[e.Lane])
		}
	}
}

func (g *Game) renderKeys(dst *core.Screen, field core.Rect) {
	y := field.Bottom()
	for lane := 0; lane < engine.LaneCount; lane++ {
		key := "?"
		if lane < len(g.settings.Lanes.Keys) {
			key = strings.ToUpper(g.settings.Lanes.Keys[lane])
		}
		c := core.ColorGray
		if g.state.IsHeld(lane) {
			c = core.LaneColors[lane]
		}
		dst.DrawTextColored(laneX(field, lane)+1, y, "["+key+"]", c)
	}

	progress := 0.0
	if g.state.LastNoteEndMS > 0 {
		progress = core.ClampF(g.state.TimeMS/g.state.LastNoteEndMS, 0, 1)
	}
	filled := int(progress * float64(field.W))
	dst.DrawHLine(field.X, y+1, filled, '▬', core.ColorCyan)
	dst.DrawHLine(field.X+filled, y+1, field.W-filled, '─', core.ColorGray)
}

func (g *Game) renderStats(dst *core.Screen, field core.Rect) {
	x := field.Right() + 2
	y := field.Y + 1
	s := g.state
	lines := []string{
		fmt.Sprintf("Score    %.2f", s.Score),
		fmt.Sprintf("Combo    %d", s.Combo),
		fmt.Sprintf("Best     %d", s.HighestCombo),
		fmt.Sprintf("Mult     x%.1f", s.Multiplier),
		fmt.Sprintf("Accuracy %.1f%%", s.Accuracy()),
		"",
		fmt.Sprintf("Perfect  %d", s.Perfect),
		fmt.Sprintf("Great    %d", s.Great),
		fmt.Sprintf("Good     %d", s.Good),
		fmt.Sprintf("Miss     %d", s.Miss),
		fmt.Sprintf("Holds    %d", s.HoldsCompleted),
	}
	for i, line := range lines {
		dst.DrawText(x, y+i, line)
	}

	if g.lastJudgement != engine.JudgementNone && g.frame-g.judgedAt < judgementFlash {
		dst.DrawTextColored(x, y+len(lines)+1, strings.ToUpper(g.lastJudgement.String()), judgementColor(g.lastJudgement))
	}
	if g.autoplay {
		dst.DrawTextColored(x, y+len(lines)+3, "AUTOPLAY", core.ColorMagenta)
	}
}

func judgementColor(j engine.Judgement) core.Color {
	switch j {
	case engine.JudgementPerfect:
		return core.ColorBrightCyan
	case engine.JudgementGreat:
		return core.ColorBrightGreen
	case engine.JudgementGood:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-5)/2, width, 5)
	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		dst.DrawHLine(box.X+1, y, box.W-2, ' ', core.ColorDefault)
	}
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
