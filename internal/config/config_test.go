package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRhythmConfig()) {
		t.Errorf("Embedded YAML drifted from DefaultRhythmConfig:\n%+v\n%+v", cfg, DefaultRhythmConfig())
	}
}

func TestToEngineDefaults(t *testing.T) {
	if got := DefaultRhythmConfig().ToEngine(); !reflect.DeepEqual(got, core.DefaultConfig()) {
		t.Errorf("ToEngine() = %+v, want the engine defaults", got)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "judgement:\n  perfect: 5\nlanes:\n  keys: [d, f, j, k]\n  background: pinned\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Judgement.Perfect != 5 {
		t.Errorf("Expected perfect window 5, got %.1f", cfg.Judgement.Perfect)
	}
	if cfg.Judgement.Great != 20 {
		t.Errorf("Expected untouched keys to keep defaults, got great=%.1f", cfg.Judgement.Great)
	}
	if cfg.ToEngine().BackgroundLanes != core.LanePolicyPinned {
		t.Errorf("Expected pinned background lanes")
	}
	if !reflect.DeepEqual(cfg.Lanes.Keys, []string{"d", "f", "j", "k"}) {
		t.Errorf("Unexpected lane keys %v", cfg.Lanes.Keys)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "timing: [\n"},
		{"three lanes", "lanes:\n  keys: [a, s, d]\n"},
		{"duplicate key", "lanes:\n  keys: [a, a, k, l]\n"},
		{"windows", "judgement:\n  perfect: 30\n"},
		{"policy", "lanes:\n  background: random\n"},
		{"volume", "audio:\n  volume: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing custom config")
	}
}

func TestPresets(t *testing.T) {
	for _, p := range Presets() {
		t.Run(string(p), func(t *testing.T) {
			cfg := DefaultRhythmConfig()
			ApplyPreset(&cfg, p)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Preset %s produced an invalid config: %v", p, err)
			}
		})
	}

	easy, hard := DefaultRhythmConfig(), DefaultRhythmConfig()
	ApplyPreset(&easy, DifficultyEasy)
	ApplyPreset(&hard, DifficultyHard)
	if easy.Judgement.Great <= hard.Judgement.Great {
		t.Errorf("Easy windows must be wider than hard ones: %.1f vs %.1f", easy.Judgement.Great, hard.Judgement.Great)
	}
	if easy.Timing.PixelsPerTick >= hard.Timing.PixelsPerTick {
		t.Errorf("Easy must scroll slower than hard")
	}

	normal := DefaultRhythmConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, DefaultRhythmConfig()) {
		t.Error("Normal preset must not change anything")
	}
}

func TestWithPreset(t *testing.T) {
	tests := []struct {
		name    string
		perfect float64
		great   float64
		preset  DifficultyPreset
		wantErr bool
	}{
		{"defaults hard", 8, 20, DifficultyHard, false},
		{"narrow normal", 1, 1.1, DifficultyNormal, false},
		{"narrow easy", 1, 1.1, DifficultyEasy, false},
		{"narrow hard collapses", 1, 1.1, DifficultyHard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRhythmConfig()
			cfg.Judgement.Perfect = tt.perfect
			cfg.Judgement.Great = tt.great
			got, err := cfg.WithPreset(tt.preset)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if err == nil && got.Judgement.Perfect >= got.Judgement.Great {
				t.Errorf("Expected perfect < great, got %.1f and %.1f", got.Judgement.Perfect, got.Judgement.Great)
			}
		})
	}

	cfg := DefaultRhythmConfig()
	cfg.Judgement.Perfect, cfg.Judgement.Great = 1, 1.1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected the narrow config itself to be valid, got %v", err)
	}
	if err := CheckPresets(cfg); err == nil {
		t.Error("Expected CheckPresets to reject a config the hard preset breaks")
	}
	if err := CheckPresets(DefaultRhythmConfig()); err != nil {
		t.Errorf("Expected the defaults to work with every preset, got %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("Expected an error for an unknown preset")
	}
}

func TestDerivedDurations(t *testing.T) {
	cfg := DefaultRhythmConfig()
	if got := cfg.WarmupTicks(); got != 300 {
		t.Errorf("WarmupTicks = %d, want 300", got)
	}
	if got := cfg.ReleaseGrace().Milliseconds(); got != 600 {
		t.Errorf("ReleaseGrace = %dms, want 600", got)
	}
}
