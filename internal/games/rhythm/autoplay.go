package rhythm

import (
	"math"

	"github.com/vovakirdan/tui-rhythm/internal/core"
	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

// autoplayFrame replaces the lane actions of in with ideal ones: a press when
// a marker sits on the hit line and a lift when its hold is fully drawn.
func (g *Game) autoplayFrame(in core.InputFrame) core.InputFrame {
	out := core.NewInputFrame()
	for _, a := range []core.Action{core.ActionPause, core.ActionQuit, core.ActionBack, core.ActionRestart} {
		if in.Has(a) {
			out.Set(a)
		}
	}
	for _, lane := range autoplayPresses(g.cfg, g.state) {
		out.Set(core.LaneAction(lane))
	}
	for _, lane := range autoplayLifts(g.cfg, g.state) {
		out.Set(core.LiftAction(lane))
	}
	return out
}

func autoplayPresses(cfg engine.Config, s engine.State) []int {
	var lanes []int
	var seen [engine.LaneCount]bool
	for _, e := range s.Active {
		if !e.Note.UserPlayed || e.Clicked || seen[e.Lane] {
			continue
		}
		if math.Abs(e.Y-cfg.HitLine) <= cfg.PixelsPerTick/2 {
			seen[e.Lane] = true
			lanes = append(lanes, e.Lane)
		}
	}
	return lanes
}

func autoplayLifts(cfg engine.Config, s engine.State) []int {
	var lanes []int
	for _, e := range s.ActiveHolds {
		if e.Y >= cfg.HitLine+cfg.TailLength(e.Note.Duration)-cfg.PixelsPerTick {
			lanes = append(lanes, e.Lane)
		}
	}
	return lanes
}
