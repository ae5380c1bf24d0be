// Package config provides YAML-based configuration loading and difficulty
// presets for the rhythm game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

// RhythmConfig contains all configuration for the rhythm game.
type RhythmConfig struct {
	Timing    RhythmTiming    `yaml:"timing"`
	Field     RhythmField     `yaml:"field"`
	Judgement RhythmJudgement `yaml:"judgement"`
	Lanes     RhythmLanes     `yaml:"lanes"`
	Scoring   RhythmScoring   `yaml:"scoring"`
	Filler    RhythmFiller    `yaml:"filler"`
	Input     RhythmInput     `yaml:"input"`
	Audio     RhythmAudio     `yaml:"audio"`
}

// RhythmTiming defines the simulation clock.
type RhythmTiming struct {
	TickPeriodMS  float64 `yaml:"tick_period_ms"`
	PixelsPerTick float64 `yaml:"pixels_per_tick"`
	WarmupMS      int     `yaml:"warmup_ms"` // Delay before the first event reaches the engine
}

// RhythmField defines the playfield geometry in engine pixels.
type RhythmField struct {
	CanvasHeight float64 `yaml:"canvas_height"`
	StartY       float64 `yaml:"start_y"`
	HitLine      float64 `yaml:"hit_line"`
	VisibleExtra float64 `yaml:"visible_extra"`
}

// RhythmJudgement defines the timing windows, in pixels from the hit line.
type RhythmJudgement struct {
	Perfect               float64 `yaml:"perfect"`
	Great                 float64 `yaml:"great"`
	HitRange              float64 `yaml:"hit_range"`
	HoldThreshold         float64 `yaml:"hold_threshold"` // Seconds
	EarlyReleaseTolerance float64 `yaml:"early_release_tolerance"`
}

// RhythmLanes defines lane keys and lane assignment.
type RhythmLanes struct {
	Keys         []string `yaml:"keys"`          // One key per lane, left to right
	SpreadWindow float64  `yaml:"spread_window"` // Seconds
	Corrections  int      `yaml:"corrections"`
	Background   string   `yaml:"background"` // "spread" or "pinned"
}

// RhythmScoring defines the combo and multiplier economy.
type RhythmScoring struct {
	BaseMultiplier float64 `yaml:"base_multiplier"`
	MultiplierStep float64 `yaml:"multiplier_step"`
	ComboMilestone int     `yaml:"combo_milestone"`
}

// RhythmFiller defines the random notes played on misclicks.
type RhythmFiller struct {
	MinDuration float64  `yaml:"min_duration"`
	MaxDuration float64  `yaml:"max_duration"`
	Instruments []string `yaml:"instruments"`
}

// RhythmInput defines terminal input handling.
type RhythmInput struct {
	ReleaseGraceMS int `yaml:"release_grace_ms"` // Key-repeat gap that counts as a key-up
}

// RhythmAudio defines the synthesizer output.
type RhythmAudio struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // [0, 1]
}

// ToEngine maps the configuration onto the engine's immutable config.
func (c RhythmConfig) ToEngine() core.Config {
	cfg := core.DefaultConfig()
	cfg.TickPeriodMS = c.Timing.TickPeriodMS
	cfg.PixelsPerTick = c.Timing.PixelsPerTick
	cfg.CanvasHeight = c.Field.CanvasHeight
	cfg.StartY = c.Field.StartY
	cfg.HitLine = c.Field.HitLine
	cfg.VisibleExtra = c.Field.VisibleExtra
	cfg.PerfectRange = c.Judgement.Perfect
	cfg.GreatRange = c.Judgement.Great
	cfg.HitRange = c.Judgement.HitRange
	cfg.HoldThreshold = c.Judgement.HoldThreshold
	cfg.EarlyReleaseTolerance = c.Judgement.EarlyReleaseTolerance
	cfg.LaneSpreadWindow = c.Lanes.SpreadWindow
	cfg.LaneCorrections = c.Lanes.Corrections
	cfg.BackgroundLanes = core.LanePolicy(c.Lanes.Background)
	cfg.BaseMultiplier = c.Scoring.BaseMultiplier
	cfg.MultiplierStep = c.Scoring.MultiplierStep
	cfg.ComboMilestone = c.Scoring.ComboMilestone
	cfg.FillerMinDuration = c.Filler.MinDuration
	cfg.FillerMaxDuration = c.Filler.MaxDuration
	if len(c.Filler.Instruments) > 0 {
		cfg.Instruments = append([]string(nil), c.Filler.Instruments...)
	}
	return cfg
}

// WarmupTicks converts the warm-up delay into engine ticks.
func (c RhythmConfig) WarmupTicks() int {
	if c.Timing.TickPeriodMS <= 0 {
		return 0
	}
	return int(float64(c.Timing.WarmupMS) / c.Timing.TickPeriodMS)
}

// ReleaseGrace returns the key-repeat gap that ends a hold.
func (c RhythmConfig) ReleaseGrace() time.Duration {
	return time.Duration(c.Input.ReleaseGraceMS) * time.Millisecond
}

// Validate checks the configuration, including the engine part.
func (c RhythmConfig) Validate() error {
	if len(c.Lanes.Keys) != core.LaneCount {
		return fmt.Errorf("config: want %d lane keys, got %d", core.LaneCount, len(c.Lanes.Keys))
	}
	seen := map[string]bool{}
	for _, k := range c.Lanes.Keys {
		if k == "" || seen[k] {
			return fmt.Errorf("config: lane keys must be unique and non-empty: %v", c.Lanes.Keys)
		}
		seen[k] = true
	}
	if c.Timing.WarmupMS < 0 || c.Input.ReleaseGraceMS < 0 {
		return fmt.Errorf("config: warm-up and release grace must not be negative")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio volume %.2f outside [0, 1]", c.Audio.Volume)
	}
	if err := c.ToEngine().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
