package rhythm

import (
	"fmt"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"
	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// Input is one recorded lane input, keyed by the step it happened on.
type Input = storage.Input

// Inputs returns the lane inputs recorded since Reset.
func (g *Game) Inputs() []Input {
	return append([]Input(nil), g.inputs...)
}

// Frames returns the number of steps taken since Reset, pauses excluded.
func (g *Game) Frames() int { return g.frame }

// Seed returns the seed of the current run.
func (g *Game) Seed() uint64 { return g.seed }

// Replay packs the current run for storage.
func (g *Game) Replay() storage.Replay {
	return storage.Replay{
		ChartID:   g.chart.ID,
		ChartHash: g.chart.Hash(),
		Seed:      g.seed,
		Preset:    string(g.preset),
		Frames:    g.frame,
		Inputs:    g.Inputs(),
	}
}

// Result is the outcome of a headless run.
type Result struct {
	State  engine.State
	Frames int
	Inputs []Input
}

// SimulateOptions configures a headless run.
type SimulateOptions struct {
	Settings  config.RhythmConfig
	Preset    config.DifficultyPreset
	Seed      uint64
	Inputs    []Input // Ignored when Autoplay is set
	Autoplay  bool
	MaxFrames int // 0 runs until the song ends
	Sink      EffectSink
}

// Simulate plays chart without a terminal and returns the final state.
// Feeding it the inputs and seed of a recorded run reproduces that run.
func Simulate(chart charts.Chart, opts SimulateOptions) Result {
	g := New()
	if opts.Autoplay {
		g = NewAutoplay()
	}
	g.Load(chart, opts.Settings, opts.Preset)
	g.SetSink(opts.Sink)
	g.Reset(core.RuntimeConfig{Seed: int64(opts.Seed)})

	limit := opts.MaxFrames
	if limit <= 0 {
		limit = g.frameBudget()
	}

	byFrame := make(map[int][]Input)
	if !opts.Autoplay {
		for _, in := range opts.Inputs {
			if in.Lane < 0 || in.Lane >= engine.LaneCount {
				continue
			}
			byFrame[in.Frame] = append(byFrame[in.Frame], in)
		}
	}

	for !g.ended && g.frame < limit {
		frame := core.NewInputFrame()
		for _, in := range byFrame[g.frame+1] {
			if in.Release {
				frame.Set(core.LiftAction(in.Lane))
			} else {
				frame.Set(core.LaneAction(in.Lane))
			}
		}
		g.Step(frame)
	}

	return Result{State: g.state, Frames: g.frame, Inputs: g.Inputs()}
}

// frameBudget is enough steps for the song to end.
func (g *Game) frameBudget() int {
	return g.warmupTicks() + int(g.state.LastNoteEndMS/g.cfg.TickPeriodMS) + 2
}

// Rescore re-simulates a stored replay over chart. Stored runs keep inputs
// only, so this is how their results are obtained.
func Rescore(chart charts.Chart, settings config.RhythmConfig, r storage.Replay) (Result, error) {
	if r.ChartHash != chart.Hash() {
		return Result{}, fmt.Errorf("rhythm: replay %d was recorded on a different version of %s", r.ID, chart.ID)
	}
	preset, err := config.ParsePreset(r.Preset)
	if err != nil {
		return Result{}, fmt.Errorf("rhythm: replay %d: %w", r.ID, err)
	}
	return Simulate(chart, SimulateOptions{
		Settings:  settings,
		Preset:    preset,
		Seed:      r.Seed,
		Inputs:    r.Inputs,
		MaxFrames: r.Frames,
	}), nil
}
