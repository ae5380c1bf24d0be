package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

func TestFrequency(t *testing.T) {
	tests := []struct {
		pitch int
		want  float64
	}{
		{69, 440},
		{81, 880},
		{57, 220},
		{60, 261.63},
	}
	for _, tt := range tests {
		if got := frequency(tt.pitch); math.Abs(got-tt.want) > 0.01 {
			t.Errorf("frequency(%d) = %.2f, want %.2f", tt.pitch, got, tt.want)
		}
	}
}

func TestVoiceStaysInRange(t *testing.T) {
	for _, instrument := range []string{"piano", "flute", "cello", "drums", "kazoo"} {
		t.Run(instrument, func(t *testing.T) {
			v := NewVoice(44100, instrument, 60, 0.9)
			buf := make([][2]float64, 4096)
			n, ok := v.Stream(buf)
			if n != len(buf) || !ok {
				t.Fatalf("Expected a full buffer, got %d, %v", n, ok)
			}
			var energy float64
			for _, s := range buf {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("Sample out of range or not mono: %v", s)
				}
				energy += s[0] * s[0]
			}
			if energy == 0 {
				t.Error("Expected an audible voice")
			}
		})
	}
}

func TestVoiceIsDeterministic(t *testing.T) {
	a := make([][2]float64, 512)
	b := make([][2]float64, 512)
	NewVoice(44100, "drums", 36, 1).Stream(a)
	NewVoice(44100, "drums", 36, 1).Stream(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestOneShotLength(t *testing.T) {
	sr := beep.SampleRate(1000)
	if got := noteLength(sr, 0.5); got != 500 {
		t.Errorf("Expected 500 samples, got %d", got)
	}
	if got := noteLength(sr, 0); got != 80 {
		t.Errorf("Expected the 80ms minimum, got %d", got)
	}

	s := beep.Take(noteLength(sr, 0.1), NewVoice(sr, "piano", 60, 1))
	buf := make([][2]float64, 64)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != 100 {
		t.Errorf("Expected the one-shot to stop after 100 samples, got %d", total)
	}
}

func TestPlayerTracksHolds(t *testing.T) {
	p := NewPlayer(44100, 0.5)
	note := engine.NewNote(true, "flute", 0.8, 72, 1, 3)

	p.Handle([]engine.Effect{{Kind: engine.EffectAttack, ID: 4, Lane: 1, Note: note}})
	if !p.Holding(4) {
		t.Fatal("Expected hold 4 to sound after the attack")
	}

	p.Handle([]engine.Effect{
		{Kind: engine.EffectRemove, ID: 4, Lane: 1, Note: note},
		{Kind: engine.EffectRelease, ID: 4, Lane: 1, Note: note},
	})
	if p.Holding(4) {
		t.Error("Expected hold 4 to stop after the release")
	}

	// Releasing twice and playing without a speaker must be harmless.
	p.Handle([]engine.Effect{
		{Kind: engine.EffectRelease, ID: 4},
		{Kind: engine.EffectPlay, ID: 5, Note: note},
	})
	p.Close()
}

func TestPlayerCloseStopsHolds(t *testing.T) {
	p := NewPlayer(0, 2)
	if p.volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %.1f", p.volume)
	}
	p.Handle([]engine.Effect{{Kind: engine.EffectAttack, ID: 1, Note: engine.NewNote(true, "cello", 1, 48, 0, 2)}})
	p.Close()
	if p.Holding(1) {
		t.Error("Expected Close to stop every hold")
	}
}
