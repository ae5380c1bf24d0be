package core

import "testing"

func TestHash(t *testing.T) {
	if got := Hash(0); got != 12345 {
		t.Errorf("Hash(0) = %d, want 12345", got)
	}
	if got := Hash(1); got != 1103527590 {
		t.Errorf("Hash(1) = %d, want 1103527590", got)
	}
	h := uint64(99)
	for i := 0; i < 1000; i++ {
		h = Hash(h)
		if h >= rngModulus {
			t.Fatalf("Hash escaped its modulus: %d", h)
		}
		if u := Unit(h); u < 0 || u > 1 {
			t.Fatalf("Unit(%d) = %f outside [0, 1]", h, u)
		}
		if v := Scale(h); v < -1 || v > 1 {
			t.Fatalf("Scale(%d) = %f outside [-1, 1]", h, v)
		}
	}
}

func TestDrawAdvancesState(t *testing.T) {
	s := NewState(DefaultConfig(), nil, 42)
	a := s.draw()
	first := s.RNG
	b := s.draw()
	if s.RNG == first {
		t.Error("Expected draw to advance the generator")
	}

	replay := NewState(DefaultConfig(), nil, 42)
	if replay.draw() != a || replay.draw() != b {
		t.Error("Same seed must give the same draws")
	}
}

func TestAssignLaneDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	for i := 0; i < 200; i++ {
		n := NewNote(true, "piano", 1, 60, float64(i)*0.037, float64(i)*0.037)
		a, ha := AssignLane(cfg, n, freshHistory())
		b, hb := AssignLane(cfg, n, freshHistory())
		if a != b || ha != hb {
			t.Fatalf("Lane assignment for start %.3f is not deterministic", n.Start)
		}
		if a < 0 || a >= LaneCount {
			t.Fatalf("Lane %d out of range", a)
		}
	}
}

func TestAssignLaneSpreadsCloseNotes(t *testing.T) {
	cfg := DefaultConfig()
	for i := 0; i < 300; i++ {
		start := 0.5 + float64(i)*0.071
		first := NewNote(true, "piano", 1, 60, start, start)
		second := NewNote(true, "piano", 1, 62, start+0.1, start+0.1)

		l1, h := AssignLane(cfg, first, freshHistory())
		l2, _ := AssignLane(cfg, second, h)
		if l1 == l2 {
			t.Fatalf("Notes at %.3f and %.3f share lane %d", first.Start, second.Start, l1)
		}
	}
}

func TestAssignLaneHistory(t *testing.T) {
	cfg := DefaultConfig()

	player := NewNote(true, "piano", 1, 60, 2.0, 2.0)
	lane, h := AssignLane(cfg, player, freshHistory())
	if h[lane] != 2.0 {
		t.Errorf("Expected player note to record lane %d, got %v", lane, h)
	}

	background := NewNote(false, "harp", 1, 60, 2.0, 2.0)
	_, hb := AssignLane(cfg, background, freshHistory())
	if hb != freshHistory() {
		t.Errorf("Background notes must not touch the history, got %v", hb)
	}
}

func TestAssignLanePinnedBackground(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BackgroundLanes = LanePolicyPinned
	for i := 0; i < 50; i++ {
		n := NewNote(false, "harp", 1, 60, float64(i)*0.3, float64(i)*0.3)
		if lane, _ := AssignLane(cfg, n, freshHistory()); lane != 0 {
			t.Fatalf("Expected pinned background lane 0, got %d", lane)
		}
	}

	n := NewNote(true, "piano", 1, 60, 1.3, 1.3)
	spread, _ := AssignLane(DefaultConfig(), n, freshHistory())
	pinned, _ := AssignLane(cfg, n, freshHistory())
	if spread != pinned {
		t.Error("The background policy must not affect player notes")
	}
}

func TestNewNote(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		note     Note
		wantDur  float64
		wantHold bool
	}{
		{"tap", NewNote(true, "piano", 1, 60, 1, 1.5), 0.5, false},
		{"hold", NewNote(true, "piano", 1, 60, 1, 2), 1, true},
		{"background long", NewNote(false, "piano", 1, 60, 1, 4), 3, false},
		{"reversed", NewNote(true, "piano", 1, 60, 2, 1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.note.Duration != tt.wantDur {
				t.Errorf("Duration = %.2f, want %.2f", tt.note.Duration, tt.wantDur)
			}
			if got := tt.note.IsHold(cfg); got != tt.wantHold {
				t.Errorf("IsHold = %v, want %v", got, tt.wantHold)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero tick", func(c *Config) { c.TickPeriodMS = 0 }, true},
		{"negative travel", func(c *Config) { c.PixelsPerTick = -1 }, true},
		{"hit line off canvas", func(c *Config) { c.HitLine = 500 }, true},
		{"unordered windows", func(c *Config) { c.GreatRange = 4 }, true},
		{"great beyond hit range", func(c *Config) { c.GreatRange = 80 }, true},
		{"no instruments", func(c *Config) { c.Instruments = nil }, true},
		{"unknown policy", func(c *Config) { c.BackgroundLanes = "random" }, true},
		{"pinned policy", func(c *Config) { c.BackgroundLanes = LanePolicyPinned }, false},
		{"filler range", func(c *Config) { c.FillerMaxDuration = 0.05 }, true},
		{"zero milestone", func(c *Config) { c.ComboMilestone = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDerived(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.PixelsPerSecond(); got != 200 {
		t.Errorf("PixelsPerSecond = %.1f, want 200", got)
	}
	if got := cfg.TailLength(2); got != 400 {
		t.Errorf("TailLength(2) = %.1f, want 400", got)
	}
	if got := cfg.TraversalMS(); got != 2000 {
		t.Errorf("TraversalMS = %.1f, want 2000", got)
	}
	if got := cfg.LeadMS(); got != 1750 {
		t.Errorf("LeadMS = %.1f, want 1750", got)
	}
	notes := []Note{NewNote(true, "piano", 1, 60, 1, 4), NewNote(false, "harp", 1, 60, 2, 3)}
	if got := LastNoteEndMS(cfg, notes); got != 6000 {
		t.Errorf("LastNoteEndMS = %.1f, want 6000", got)
	}
}
