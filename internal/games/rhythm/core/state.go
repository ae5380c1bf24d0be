package core

import "math"

// State is the aggregate snapshot of a session. Transitions return a new
// State and never write through to the slices of the one they were given.
type State struct {
	TimeMS float64 // Simulated clock

	Active      []Entity // Player markers still falling
	Background  []Entity // Background markers still falling
	Tails       []Tail
	ActiveHolds []Entity // Hold notes currently held down

	// Diff since the previous Tick. Replaced with empty slices on every Tick.
	ExitedEntities []Entity
	ExitedTails    []Tail

	Score        float64
	Combo        int
	HighestCombo int
	Multiplier   float64

	Perfect int
	Great   int
	Good    int
	Miss    int

	HoldsCompleted int

	EntityCount   int
	PrevLaneTime  [LaneCount]float64 // Start time of the last player note per lane, in seconds
	LastNoteEndMS float64
	GameEnded     bool

	RNG uint64 // Generator state, advanced on every random draw
}

// neverAssigned marks a lane that has not received a player note yet.
var neverAssigned = math.Inf(-1)

// NewState returns the initial state of a session over notes.
func NewState(cfg Config, notes []Note, seed uint64) State {
	s := State{
		Multiplier:    cfg.BaseMultiplier,
		LastNoteEndMS: LastNoteEndMS(cfg, notes),
		RNG:           seed % rngModulus,
	}
	for i := range s.PrevLaneTime {
		s.PrevLaneTime[i] = neverAssigned
	}
	return s
}

// Judged returns how many judgements (including misses) have been made.
func (s State) Judged() int {
	return s.Perfect + s.Great + s.Good + s.Miss
}

// Accuracy is the weighted hit quality in percent, recomputed on demand.
// It is 0 before anything has been judged.
func (s State) Accuracy() float64 {
	total := s.Judged()
	if total == 0 {
		return 0
	}
	weighted := 300*s.Perfect + 100*s.Great + 50*s.Good
	return float64(weighted) / float64(300*total) * 100
}

// Entity looks an id up across every live and exited collection.
func (s State) Entity(id EntityID) (Entity, bool) {
	for _, group := range [][]Entity{s.Active, s.Background, s.ActiveHolds, s.ExitedEntities} {
		for _, e := range group {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Entity{}, false
}

// IsHeld reports whether lane currently has a held hold note.
func (s State) IsHeld(lane int) bool {
	_, ok := heldIndex(s.ActiveHolds, lane)
	return ok
}

func heldIndex(holds []Entity, lane int) (int, bool) {
	for i, e := range holds {
		if e.Lane == lane && e.Clicked && e.Note.UserPlayed {
			return i, true
		}
	}
	return -1, false
}

// with returns a copy of xs with x appended, never sharing a backing array.
func with[T any](xs []T, x T) []T {
	out := make([]T, len(xs), len(xs)+1)
	copy(out, xs)
	return append(out, x)
}

// without returns a copy of xs without the element at i.
func without[T any](xs []T, i int) []T {
	out := make([]T, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
