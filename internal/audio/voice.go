package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// timbre shapes a voice: harmonic weights plus envelope times.
type timbre struct {
	harmonics []float64 // Amplitude of the fundamental and its overtones
	attack    float64   // Seconds
	decay     float64   // Exponential decay rate per second, 0 for none
	vibrato   float64   // Depth in semitones
	noise     bool
}

var timbres = map[string]timbre{
	"piano":   {harmonics: []float64{1, 0.5, 0.25, 0.12}, attack: 0.005, decay: 3},
	"flute":   {harmonics: []float64{1, 0.1}, attack: 0.04, vibrato: 0.15},
	"violin":  {harmonics: []float64{1, 0.6, 0.45, 0.3, 0.2}, attack: 0.06, vibrato: 0.1},
	"cello":   {harmonics: []float64{1, 0.7, 0.5, 0.35}, attack: 0.08, vibrato: 0.08},
	"trumpet": {harmonics: []float64{1, 0.8, 0.6, 0.4, 0.3}, attack: 0.02},
	"bass":    {harmonics: []float64{1, 0.35}, attack: 0.01, decay: 1.5},
	"organ":   {harmonics: []float64{1, 0, 0.5, 0, 0.25}, attack: 0.01},
	"drums":   {attack: 0.001, decay: 18, noise: true},
}

// fallbackTimbre voices instruments the synthesizer does not know.
var fallbackTimbre = timbre{harmonics: []float64{1, 0.3}, attack: 0.01, decay: 1}

// frequency converts a MIDI note number into Hz (A4 = 69 = 440 Hz).
func frequency(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}

// Voice synthesizes one note. It never ends by itself: wrap it in beep.Take
// for one-shots or in a beep.Ctrl for held notes.
type Voice struct {
	sr       beep.SampleRate
	timbre   timbre
	freq     float64
	gain     float64
	pos      int
	phase    []float64
	noiseReg uint32
}

// NewVoice creates a voice for an instrument at a MIDI pitch.
// gain is the product of note velocity and master volume.
func NewVoice(sr beep.SampleRate, instrument string, pitch int, gain float64) *Voice {
	tb, ok := timbres[instrument]
	if !ok {
		tb = fallbackTimbre
	}
	return &Voice{
		sr:       sr,
		timbre:   tb,
		freq:     frequency(pitch),
		gain:     gain,
		phase:    make([]float64, len(tb.harmonics)),
		noiseReg: uint32(pitch)*2654435761 | 1,
	}
}

// Stream implements beep.Streamer.
func (v *Voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		s := v.next()
		samples[i][0] = s
		samples[i][1] = s
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (v *Voice) Err() error { return nil }

func (v *Voice) next() float64 {
	t := float64(v.pos) / float64(v.sr)
	v.pos++

	env := 1.0
	if v.timbre.attack > 0 && t < v.timbre.attack {
		env = t / v.timbre.attack
	}
	if v.timbre.decay > 0 {
		env *= math.Exp(-v.timbre.decay * t)
	}

	if v.timbre.noise {
		// xorshift keeps the drum deterministic.
		v.noiseReg ^= v.noiseReg << 13
		v.noiseReg ^= v.noiseReg >> 17
		v.noiseReg ^= v.noiseReg << 5
		return v.gain * env * (float64(v.noiseReg)/math.MaxUint32*2 - 1)
	}

	freq := v.freq
	if v.timbre.vibrato > 0 {
		freq *= math.Pow(2, v.timbre.vibrato*math.Sin(2*math.Pi*5*t)/12)
	}

	var sum, norm float64
	for h, amp := range v.timbre.harmonics {
		if amp == 0 {
			continue
		}
		sum += amp * math.Sin(2*math.Pi*v.phase[h])
		norm += amp
		v.phase[h] += freq * float64(h+1) / float64(v.sr)
		if v.phase[h] >= 1 {
			v.phase[h] -= math.Floor(v.phase[h])
		}
	}
	if norm == 0 {
		return 0
	}
	return v.gain * env * sum / norm
}

// noteLength is how long a one-shot sounds. Instantaneous notes get a short blip.
func noteLength(sr beep.SampleRate, seconds float64) int {
	d := time.Duration(seconds * float64(time.Second))
	return sr.N(max(d, 80*time.Millisecond))
}
