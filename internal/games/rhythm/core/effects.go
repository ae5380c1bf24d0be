package core

// EffectKind is a side-effect instruction for the view and audio adapters.
type EffectKind int

const (
	EffectPlay    EffectKind = iota // one-shot playback of an exited note
	EffectAttack                    // a hold note started sounding
	EffectRelease                   // a hold note stopped sounding
	EffectRemove                    // drop the marker or tail from the screen
)

func (k EffectKind) String() string {
	switch k {
	case EffectPlay:
		return "play"
	case EffectAttack:
		return "attack"
	case EffectRelease:
		return "release"
	case EffectRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Effect is one instruction derived from a state transition.
type Effect struct {
	Kind EffectKind
	ID   EntityID
	Lane int
	Note Note
	Tail bool // EffectRemove of a tail rather than a marker
}

// Effects diffs two consecutive states by entity id. Several events may be
// folded between prev and next; every attack is paired with exactly one
// release as long as every intermediate state is diffed.
func Effects(prev, next State) []Effect {
	var out []Effect

	seen := idSet(prev.ExitedEntities)
	for _, e := range next.ExitedEntities {
		if seen[e.ID] {
			continue
		}
		if !e.Note.UserPlayed || e.Clicked {
			out = append(out, Effect{Kind: EffectPlay, ID: e.ID, Lane: e.Lane, Note: e.Note})
		}
		out = append(out, Effect{Kind: EffectRemove, ID: e.ID, Lane: e.Lane, Note: e.Note})
	}

	seenTails := make(map[EntityID]bool, len(prev.ExitedTails))
	for _, t := range prev.ExitedTails {
		seenTails[t.ID] = true
	}
	for _, t := range next.ExitedTails {
		if !seenTails[t.ID] {
			out = append(out, Effect{Kind: EffectRemove, ID: t.ID, Lane: t.Lane, Tail: true})
		}
	}

	held := idSet(prev.ActiveHolds)
	holding := idSet(next.ActiveHolds)
	for _, e := range next.ActiveHolds {
		if !held[e.ID] {
			out = append(out, Effect{Kind: EffectAttack, ID: e.ID, Lane: e.Lane, Note: e.Note})
		}
	}
	for _, e := range prev.ActiveHolds {
		if !holding[e.ID] {
			out = append(out, Effect{Kind: EffectRelease, ID: e.ID, Lane: e.Lane, Note: e.Note})
		}
	}
	return out
}

func idSet(es []Entity) map[EntityID]bool {
	m := make(map[EntityID]bool, len(es))
	for _, e := range es {
		m[e.ID] = true
	}
	return m
}
