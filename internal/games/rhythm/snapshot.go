package rhythm

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseWarmup  Phase = "warmup"
	PhasePlaying Phase = "playing"
	PhasePaused  Phase = "paused"
	PhaseEnded   Phase = "ended"
)

// Snapshot captures the observable game state for determinism testing and replay checks.
type Snapshot struct {
	Frame          int
	TimeMS         float64
	Phase          Phase
	Score          float64
	Combo          int
	HighestCombo   int
	Multiplier     float64
	Perfect        int
	Great          int
	Good           int
	Miss           int
	HoldsCompleted int
	Accuracy       float64
	OnField        int // Player and background markers plus held notes
	Spawned        int
	RNG            uint64
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.ended:
		phase = PhaseEnded
	case g.paused:
		phase = PhasePaused
	case g.frame <= g.warmupTicks():
		phase = PhaseWarmup
	}

	s := g.state
	return Snapshot{
		Frame:          g.frame,
		TimeMS:         s.TimeMS,
		Phase:          phase,
		Score:          s.Score,
		Combo:          s.Combo,
		HighestCombo:   s.HighestCombo,
		Multiplier:     s.Multiplier,
		Perfect:        s.Perfect,
		Great:          s.Great,
		Good:           s.Good,
		Miss:           s.Miss,
		HoldsCompleted: s.HoldsCompleted,
		Accuracy:       s.Accuracy(),
		OnField:        len(s.Active) + len(s.Background) + len(s.ActiveHolds),
		Spawned:        s.EntityCount,
		RNG:            s.RNG,
	}
}
