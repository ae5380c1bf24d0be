package core

import "fmt"

// Event is one input to the engine. The set of variants is closed: Tick,
// Spawn, Hit and Release.
type Event interface {
	event()
}

// Tick advances simulated time. Elapsed is the number of ticks since the
// session started.
type Tick struct {
	Elapsed int
}

func (Tick) event() {}

// Spawn materializes a scheduled note.
type Spawn struct {
	Note Note
}

func (Spawn) event() {}

// Hit is a key-down on a lane.
type Hit struct {
	Lane int
}

func (Hit) event() {}

// Release is a key-up on a lane.
type Release struct {
	Lane int
}

func (Release) event() {}

// String implementations keep logs and test failures readable.
func (t Tick) String() string    { return fmt.Sprintf("Tick(%d)", t.Elapsed) }
func (s Spawn) String() string   { return fmt.Sprintf("Spawn(%.3fs)", s.Note.Start) }
func (h Hit) String() string     { return fmt.Sprintf("Hit(%d)", h.Lane) }
func (r Release) String() string { return fmt.Sprintf("Release(%d)", r.Lane) }

// Apply folds one event into s. Once the game has ended a Tick only empties
// the exit lists and every other event is a no-op.
func Apply(cfg Config, s State, ev Event) State {
	if s.GameEnded {
		if _, ok := ev.(Tick); ok && (len(s.ExitedEntities) > 0 || len(s.ExitedTails) > 0) {
			s.ExitedEntities = make([]Entity, 0)
			s.ExitedTails = make([]Tail, 0)
		}
		return s
	}
	switch ev := ev.(type) {
	case Tick:
		return applyTick(cfg, s, ev)
	case Spawn:
		return applySpawn(cfg, s, ev)
	case Hit:
		return applyHit(cfg, s, ev)
	case Release:
		return applyRelease(cfg, s, ev)
	default:
		panic(fmt.Sprintf("core: unknown event %T", ev))
	}
}

// Reduce left-folds events into s.
func Reduce(cfg Config, s State, events ...Event) State {
	for _, ev := range events {
		s = Apply(cfg, s, ev)
	}
	return s
}

// Scan is Reduce that also returns every intermediate state.
func Scan(cfg Config, s State, events ...Event) []State {
	states := make([]State, 0, len(events))
	for _, ev := range events {
		s = Apply(cfg, s, ev)
		states = append(states, s)
	}
	return states
}
