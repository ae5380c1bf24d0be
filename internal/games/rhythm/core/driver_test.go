package core

import "testing"

func kinds(effects []Effect) map[EffectKind]int {
	m := map[EffectKind]int{}
	for _, e := range effects {
		m[e.Kind]++
	}
	return m
}

func TestEffectsHoldLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	n := NewNote(true, "cello", 1, 48, 1.0, 3.0)
	s, k := spawnAt(t, cfg, n)
	s = Reduce(cfg, s, ticks(k+1, k+175)...)
	lane := s.Active[0].Lane

	hit := Apply(cfg, s, Hit{Lane: lane})
	got := kinds(Effects(s, hit))
	if got[EffectAttack] != 1 || got[EffectPlay] != 0 || got[EffectRelease] != 0 {
		t.Errorf("Expected one attack on hold hit, got %v", got)
	}

	held := Reduce(cfg, hit, ticks(k+176, k+340)...)
	released := Apply(cfg, held, Release{Lane: lane})
	got = kinds(Effects(held, released))
	if got[EffectRelease] != 1 || got[EffectPlay] != 0 || got[EffectRemove] != 1 {
		t.Errorf("Expected release and removal without playback, got %v", got)
	}

	// Nothing left to release on the following tick.
	after := Apply(cfg, released, Tick{Elapsed: k + 341})
	if got := kinds(Effects(released, after)); got[EffectRelease] != 0 {
		t.Errorf("Release effect emitted twice: %v", got)
	}
}

func TestEffectsPlayback(t *testing.T) {
	cfg := DefaultConfig()
	n := NewNote(true, "piano", 0.9, 60, 1.0, 1.0)
	s, k := spawnAt(t, cfg, n)
	s = Reduce(cfg, s, ticks(k+1, k+175)...)
	lane := s.Active[0].Lane

	hit := Apply(cfg, s, Hit{Lane: lane})
	misclick := Apply(cfg, hit, Hit{Lane: (lane + 2) % LaneCount})

	if got := kinds(Effects(s, misclick)); got[EffectPlay] != 2 {
		t.Errorf("Expected hit and filler playback across two folded hits, got %v", got)
	}
	if got := kinds(Effects(hit, misclick)); got[EffectPlay] != 1 {
		t.Errorf("Expected only the filler to play, got %v", got)
	}

	missed, k2 := spawnAt(t, cfg, n)
	missed = Reduce(cfg, missed, ticks(k2+1, k2+190)...)
	gone := Apply(cfg, missed, Tick{Elapsed: k2 + 191})
	got := kinds(Effects(missed, gone))
	if got[EffectPlay] != 0 || got[EffectRemove] != 1 {
		t.Errorf("A missed note must be removed silently, got %v", got)
	}
}

func TestDriverDeliversUntilEnd(t *testing.T) {
	cfg := DefaultConfig()
	delivered := 0
	ends := 0
	d := NewDriver(cfg, NewState(cfg, nil, 1), func(prev, next State) {
		if prev.GameEnded {
			t.Error("A state was delivered after the game ended")
		}
		delivered++
	}, func() { ends++ })

	d.Feed(ticks(1, 500)...)

	if ends != 1 {
		t.Errorf("Expected onEnd once, got %d", ends)
	}
	if delivered != 201 {
		t.Errorf("Expected 201 deliveries, got %d", delivered)
	}
	if !d.Detached() || !d.State().GameEnded {
		t.Error("Expected the driver to detach on the end state")
	}
	if d.Apply(Hit{Lane: 0}) {
		t.Error("Apply after detach must drop the event")
	}

	d.Detach()
	d.Detach()
	if ends != 1 {
		t.Errorf("Detach must not call onEnd again, got %d", ends)
	}
}

func TestDriverExternalDetach(t *testing.T) {
	cfg := DefaultConfig()
	ends := 0
	d := NewDriver(cfg, NewState(cfg, nil, 1), nil, func() { ends++ })
	d.Feed(ticks(1, 10)...)
	d.Detach()
	d.Feed(ticks(11, 400)...)

	if ends != 0 {
		t.Errorf("External detach must not report an end, got %d", ends)
	}
	if d.State().TimeMS != 100 {
		t.Errorf("Expected state frozen at 100ms, got %.0f", d.State().TimeMS)
	}
}
