package core

import "testing"

func freshHistory() [LaneCount]float64 {
	var h [LaneCount]float64
	for i := range h {
		h[i] = neverAssigned
	}
	return h
}

func ticks(from, to int) []Event {
	events := make([]Event, 0, to-from+1)
	for k := from; k <= to; k++ {
		events = append(events, Tick{Elapsed: k})
	}
	return events
}

// spawnAt folds ticks up to the note start, then spawns the note.
func spawnAt(t *testing.T, cfg Config, n Note) (State, int) {
	t.Helper()
	s := NewState(cfg, []Note{n}, 7)
	k := int(n.Start * 1000 / cfg.TickPeriodMS)
	s = Reduce(cfg, s, ticks(1, k)...)
	s = Apply(cfg, s, Spawn{Note: n})
	if len(s.Active) != 1 {
		t.Fatalf("Expected 1 active entity after spawn, got %d", len(s.Active))
	}
	return s, k
}

// perfectRun spawns notes when they are due and hits every player marker
// that lands exactly on the hit line. Holds are released at their tail end.
// It returns every intermediate state.
func perfectRun(cfg Config, notes []Note, seed uint64, steps int) []State {
	s := NewState(cfg, notes, seed)
	var states []State
	step := func(ev Event) {
		s = Apply(cfg, s, ev)
		states = append(states, s)
	}

	next := 0
	for k := 1; k <= steps; k++ {
		for next < len(notes) && notes[next].Start*1000 <= s.TimeMS {
			step(Spawn{Note: notes[next]})
			next++
		}
		step(Tick{Elapsed: k})

		var release, hit []int
		for _, e := range s.ActiveHolds {
			if e.Y >= e.holdEnd(cfg) {
				release = append(release, e.Lane)
			}
		}
		for _, e := range s.Active {
			if e.Note.UserPlayed && e.Y == cfg.HitLine {
				hit = append(hit, e.Lane)
			}
		}
		for _, lane := range release {
			step(Release{Lane: lane})
		}
		for _, lane := range hit {
			step(Hit{Lane: lane})
		}
	}
	return states
}
