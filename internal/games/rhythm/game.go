// Package rhythm adapts the transition engine to the platform's Game
// interface: it schedules spawns, turns lane actions into engine events,
// renders the field and forwards side effects to an optional sink.
package rhythm

import (
	"sync"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/charts"
	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
	"github.com/vovakirdan/tui-rhythm/internal/registry"
)

// EffectSink receives the side effects of every folded event, in order.
type EffectSink interface {
	Handle(effects []engine.Effect)
}

// Game implements a rhythm game session.
type Game struct {
	id       string
	title    string
	autoplay bool

	chart    charts.Chart
	settings config.RhythmConfig
	preset   config.DifficultyPreset
	cfg      engine.Config
	notes    []engine.Note
	seed     uint64

	driver *engine.Driver
	state  engine.State

	frame  int // Steps since Reset, warm-up included
	ticks  int // Ticks delivered to the engine
	next   int // Next note to spawn
	ended  bool
	paused bool

	inputs []Input
	sink   EffectSink

	lastJudgement engine.Judgement
	judgedAt      int // Frame of lastJudgement
}

// Package-level selection used by the registry factories, like a start level.
var (
	selMu       sync.RWMutex
	selChart    *charts.Chart
	selSettings = config.DefaultRhythmConfig()
	selPreset   = config.DifficultyNormal
)

// SetChart selects the chart new games will play.
func SetChart(c charts.Chart) {
	selMu.Lock()
	defer selMu.Unlock()
	selChart = &c
}

// SetConfig selects the configuration and difficulty new games will use.
func SetConfig(cfg config.RhythmConfig, preset config.DifficultyPreset) {
	selMu.Lock()
	defer selMu.Unlock()
	selSettings = cfg
	selPreset = preset
}

func selection() (charts.Chart, config.RhythmConfig, config.DifficultyPreset) {
	selMu.RLock()
	defer selMu.RUnlock()
	if selChart != nil {
		return *selChart, selSettings, selPreset
	}
	return defaultChart(), selSettings, selPreset
}

// defaultChart is the first bundled chart.
func defaultChart() charts.Chart {
	all, err := charts.NewLoader("").LoadAll()
	if err != nil || len(all) == 0 {
		return charts.Chart{ID: "empty", Name: "Silence"}
	}
	return all[0]
}

// New creates a game played by a human.
func New() *Game {
	return &Game{id: "rhythm", title: "Rhythm"}
}

// NewAutoplay creates a game that plays itself.
func NewAutoplay() *Game {
	return &Game{id: "rhythm_autoplay", title: "Rhythm (autoplay)", autoplay: true}
}

func init() {
	registry.Register("rhythm", func() registry.Game {
		return New()
	})
	registry.Register("rhythm_autoplay", func() registry.Game {
		return NewAutoplay()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Load pins the chart and configuration of this instance, overriding the
// package-level selection. It takes effect on the next Reset.
func (g *Game) Load(c charts.Chart, settings config.RhythmConfig, preset config.DifficultyPreset) {
	g.chart = c
	g.settings = settings
	g.preset = preset
}

// SetSink routes side effects to s. A nil sink drops them.
func (g *Game) SetSink(s EffectSink) {
	g.sink = s
}

// Chart returns the chart being played.
func (g *Game) Chart() charts.Chart { return g.chart }

// Preset returns the difficulty preset in use.
func (g *Game) Preset() config.DifficultyPreset { return g.preset }

// Reset starts the chart from the beginning.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.chart.ID == "" {
		g.chart, g.settings, g.preset = selection()
	}

	// Settings are checked against every preset when loaded
	settings, err := g.settings.WithPreset(g.preset)
	if err != nil {
		settings = config.DefaultRhythmConfig()
	}
	g.cfg = settings.ToEngine()

	g.notes = g.chart.Notes
	g.seed = uint64(rc.Seed)
	g.state = engine.NewState(g.cfg, g.notes, g.seed)
	g.driver = engine.NewDriver(g.cfg, g.state, g.observe, func() { g.ended = true })

	g.frame, g.ticks, g.next = 0, 0, 0
	g.ended, g.paused = false, false
	g.inputs = nil
	g.lastJudgement, g.judgedAt = engine.JudgementNone, 0
}

// Step advances the session by one engine tick.
// Per step the fold order is releases, hits, due spawns, then the tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.ended {
		g.paused = !g.paused
		return core.StepResult{State: g.State()}
	}
	if g.paused || g.ended || g.driver == nil {
		return core.StepResult{State: g.State()}
	}

	g.frame++
	if g.autoplay && g.frame > g.warmupTicks() {
		in = g.autoplayFrame(in)
	}

	lifted, pressed := in.Lifted(), in.Pressed()
	for _, lane := range lifted {
		g.inputs = append(g.inputs, Input{Frame: g.frame, Lane: lane, Release: true})
	}
	for _, lane := range pressed {
		g.inputs = append(g.inputs, Input{Frame: g.frame, Lane: lane})
	}

	if g.frame <= g.warmupTicks() {
		return core.StepResult{State: g.State()}
	}

	for _, lane := range lifted {
		g.driver.Apply(engine.Release{Lane: lane})
	}
	for _, lane := range pressed {
		g.driver.Apply(engine.Hit{Lane: lane})
	}
	for g.next < len(g.notes) && g.notes[g.next].Start*1000 <= g.state.TimeMS {
		g.driver.Apply(engine.Spawn{Note: g.notes[g.next]})
		g.next++
	}
	g.ticks++
	g.driver.Apply(engine.Tick{Elapsed: g.ticks})

	return core.StepResult{State: g.State()}
}

// observe is the driver subscriber.
func (g *Game) observe(prev, next engine.State) {
	g.state = next
	if j := judgementBetween(prev, next); j != engine.JudgementNone {
		g.lastJudgement = j
		g.judgedAt = g.frame
	}
	if g.sink != nil {
		if effects := engine.Effects(prev, next); len(effects) > 0 {
			g.sink.Handle(effects)
		}
	}
}

func judgementBetween(prev, next engine.State) engine.Judgement {
	switch {
	case next.Miss > prev.Miss:
		return engine.JudgementMiss
	case next.Perfect > prev.Perfect:
		return engine.JudgementPerfect
	case next.Great > prev.Great:
		return engine.JudgementGreat
	case next.Good > prev.Good:
		return engine.JudgementGood
	}
	return engine.JudgementNone
}

func (g *Game) warmupTicks() int {
	return g.settings.WarmupTicks()
}

// State returns the current platform-level game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		GameOver: g.ended,
		Paused:   g.paused,
	}
}

// LaneHeld reports whether a hold note is sustained in lane.
func (g *Game) LaneHeld(lane int) bool {
	return g.state.IsHeld(lane)
}

// EngineState returns the latest engine state.
func (g *Game) EngineState() engine.State {
	return g.state
}
