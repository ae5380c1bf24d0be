// Package audio turns engine effects into sound through gopxl/beep.
// Voices are synthesized, so the game needs no sample files.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

// Player plays one-shots for exited notes and sustains held notes until
// they are released. Without Init it only tracks holds and stays silent.
type Player struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	holds       map[engine.EntityID]*beep.Ctrl
	initialized bool
}

// NewPlayer creates a player. volume is clamped to [0, 1].
func NewPlayer(sampleRate int, volume float64) *Player {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Player{
		sr:     beep.SampleRate(sampleRate),
		volume: min(max(volume, 0), 1),
		mixer:  &beep.Mixer{},
		holds:  make(map[engine.EntityID]*beep.Ctrl),
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything. The speaker itself stays open.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, ctrl := range p.holds {
		p.locked(func() { ctrl.Streamer = nil })
		delete(p.holds, id)
	}
	p.locked(p.mixer.Clear)
	p.initialized = false
}

// Handle implements the game's effect sink.
func (p *Player) Handle(effects []engine.Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, e := range effects {
		switch e.Kind {
		case engine.EffectPlay:
			p.play(e.Note)
		case engine.EffectAttack:
			p.attack(e)
		case engine.EffectRelease:
			p.release(e.ID)
		}
	}
}

// Holding reports whether the hold note id is sounding.
func (p *Player) Holding(id engine.EntityID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.holds[id]
	return ok
}

func (p *Player) voice(n engine.Note) *Voice {
	return NewVoice(p.sr, n.Instrument, n.Pitch, n.Velocity*p.volume)
}

func (p *Player) play(n engine.Note) {
	if !p.initialized {
		return
	}
	s := beep.Take(noteLength(p.sr, n.Duration), p.voice(n))
	p.locked(func() { p.mixer.Add(s) })
}

func (p *Player) attack(e engine.Effect) {
	if _, ok := p.holds[e.ID]; ok {
		return
	}
	ctrl := &beep.Ctrl{Streamer: p.voice(e.Note), Paused: false}
	p.holds[e.ID] = ctrl
	if p.initialized {
		p.locked(func() { p.mixer.Add(ctrl) })
	}
}

func (p *Player) release(id engine.EntityID) {
	ctrl, ok := p.holds[id]
	if !ok {
		return
	}
	// A Ctrl without a streamer drains, so the mixer drops it.
	p.locked(func() { ctrl.Streamer = nil })
	delete(p.holds, id)
}

// locked runs f under the speaker lock while the speaker is running.
func (p *Player) locked(f func()) {
	if !p.initialized {
		f()
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	f()
}
