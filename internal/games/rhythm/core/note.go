// Package core is the deterministic transition engine of the rhythm game.
// It has no I/O and no wall clock: every transition is a pure function from
// one State to the next, so a run is fully determined by its initial State,
// its Config and the ordered event sequence.
package core

// Note is one line of a chart. Notes are loaded once per session and never change.
type Note struct {
	UserPlayed bool    // The player has to hit it; otherwise it is background audio
	Instrument string  // Sample name
	Velocity   float64 // [0, 1]
	Pitch      int     // MIDI note number
	Start      float64 // Seconds
	End        float64 // Seconds
	Duration   float64 // End - Start, never negative
}

// NewNote builds a note and derives its duration. A note that ends before it
// starts is treated as instantaneous.
func NewNote(userPlayed bool, instrument string, velocity float64, pitch int, start, end float64) Note {
	if end < start {
		end = start
	}
	return Note{
		UserPlayed: userPlayed,
		Instrument: instrument,
		Velocity:   velocity,
		Pitch:      pitch,
		Start:      start,
		End:        end,
		Duration:   end - start,
	}
}

// IsHold reports whether the note becomes a hold note under cfg.
func (n Note) IsHold(cfg Config) bool {
	return n.UserPlayed && n.Duration >= cfg.HoldThreshold
}

// LastNoteEndMS returns the simulated time at which the session is over:
// the latest note end plus the time a marker needs to cross the canvas.
func LastNoteEndMS(cfg Config, notes []Note) float64 {
	latest := 0.0
	for _, n := range notes {
		if n.End*1000 > latest {
			latest = n.End * 1000
		}
	}
	return latest + cfg.TraversalMS()
}
