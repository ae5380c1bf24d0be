package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetScale describes how a preset bends the configured values.
type presetScale struct {
	windows float64 // Judgement windows
	speed   float64 // Scroll speed
	grace   float64 // Hold release slack
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {windows: 1.5, speed: 0.8, grace: 1.5},
	DifficultyNormal: {windows: 1, speed: 1, grace: 1},
	DifficultyHard:   {windows: 0.75, speed: 1.25, grace: 0.75},
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(name)
	if _, ok := presetScales[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
	return p, nil
}

// Presets lists the presets in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy widens the judgement windows and slows the scroll; hard does the opposite.
func ApplyPreset(cfg *RhythmConfig, preset DifficultyPreset) {
	scale, ok := presetScales[preset]
	if !ok {
		return
	}

	cfg.Judgement.Perfect = round1(cfg.Judgement.Perfect * scale.windows)
	cfg.Judgement.Great = round1(cfg.Judgement.Great * scale.windows)
	cfg.Judgement.HitRange = round1(cfg.Judgement.HitRange * scale.windows)
	cfg.Judgement.EarlyReleaseTolerance = round1(cfg.Judgement.EarlyReleaseTolerance * scale.grace)
	cfg.Timing.PixelsPerTick = round1(cfg.Timing.PixelsPerTick * scale.speed)
}

// WithPreset returns a copy of c bent by the preset. It fails when the
// preset turns c into an invalid configuration.
func (c RhythmConfig) WithPreset(preset DifficultyPreset) (RhythmConfig, error) {
	ApplyPreset(&c, preset)
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("difficulty %s: %w", preset, err)
	}
	return c, nil
}

// CheckPresets reports the first preset that c cannot be played with.
func CheckPresets(c RhythmConfig) error {
	for _, p := range Presets() {
		if _, err := c.WithPreset(p); err != nil {
			return err
		}
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
