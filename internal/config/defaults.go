package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

//go:embed defaults/rhythm.yaml
var defaultRhythmYAML []byte

// DefaultRhythmConfig returns the hardcoded rhythm configuration.
func DefaultRhythmConfig() RhythmConfig {
	engine := core.DefaultConfig()
	return RhythmConfig{
		Timing: RhythmTiming{
			TickPeriodMS:  engine.TickPeriodMS,
			PixelsPerTick: engine.PixelsPerTick,
			WarmupMS:      3000,
		},
		Field: RhythmField{
			CanvasHeight: engine.CanvasHeight,
			StartY:       engine.StartY,
			HitLine:      engine.HitLine,
			VisibleExtra: engine.VisibleExtra,
		},
		Judgement: RhythmJudgement{
			Perfect:               engine.PerfectRange,
			Great:                 engine.GreatRange,
			HitRange:              engine.HitRange,
			HoldThreshold:         engine.HoldThreshold,
			EarlyReleaseTolerance: engine.EarlyReleaseTolerance,
		},
		Lanes: RhythmLanes{
			Keys:         []string{"a", "s", "k", "l"},
			SpreadWindow: engine.LaneSpreadWindow,
			Corrections:  engine.LaneCorrections,
			Background:   string(engine.BackgroundLanes),
		},
		Scoring: RhythmScoring{
			BaseMultiplier: engine.BaseMultiplier,
			MultiplierStep: engine.MultiplierStep,
			ComboMilestone: engine.ComboMilestone,
		},
		Filler: RhythmFiller{
			MinDuration: engine.FillerMinDuration,
			MaxDuration: engine.FillerMaxDuration,
			Instruments: engine.Instruments,
		},
		Input: RhythmInput{
			ReleaseGraceMS: 600,
		},
		Audio: RhythmAudio{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRhythmYAML
}
