package core

// applyTick moves everything one step, expires markers and tails, settles
// hold notes and latches the end of the game.
func applyTick(cfg Config, s State, ev Tick) State {
	next := s
	next.TimeMS = max(s.TimeMS, float64(ev.Elapsed)*cfg.TickPeriodMS)
	next.ExitedEntities = make([]Entity, 0)
	next.ExitedTails = make([]Tail, 0)

	missed := 0
	next.Active = make([]Entity, 0, len(s.Active))
	for _, e := range s.Active {
		e = e.moved(cfg)
		if e.Clicked || e.Y > cfg.PlayerBoundary() {
			if e.Note.UserPlayed && !e.Clicked {
				missed++
			}
			next.ExitedEntities = append(next.ExitedEntities, e)
			continue
		}
		next.Active = append(next.Active, e)
	}

	next.Background = make([]Entity, 0, len(s.Background))
	for _, e := range s.Background {
		e = e.moved(cfg)
		if e.Y > cfg.BackgroundBoundary() {
			next.ExitedEntities = append(next.ExitedEntities, e)
			continue
		}
		next.Background = append(next.Background, e)
	}

	next.Tails = make([]Tail, 0, len(s.Tails))
	for _, t := range s.Tails {
		t = t.moved(cfg)
		if t.Leading > cfg.HitLine {
			next.ExitedTails = append(next.ExitedTails, t)
			continue
		}
		next.Tails = append(next.Tails, t)
	}

	completed := 0
	next.ActiveHolds = make([]Entity, 0, len(s.ActiveHolds))
	for _, e := range s.ActiveHolds {
		if !e.Clicked {
			continue
		}
		e = e.moved(cfg)
		if e.Y > e.holdEnd(cfg) {
			// Held through the whole tail without a key-up: a completed hold.
			completed++
			e.Clicked = false
			next.ExitedEntities = append(next.ExitedEntities, e)
			continue
		}
		next.ActiveHolds = append(next.ActiveHolds, e)
	}

	for i := 0; i < completed; i++ {
		next.succeed(cfg)
		next.HoldsCompleted++
	}
	for i := 0; i < missed; i++ {
		next.miss(cfg)
	}

	next.GameEnded = s.GameEnded || float64(ev.Elapsed)*cfg.TickPeriodMS > s.LastNoteEndMS
	return next
}

// applySpawn places a scheduled note on the field.
func applySpawn(cfg Config, s State, ev Spawn) State {
	n := ev.Note
	n = NewNote(n.UserPlayed, n.Instrument, n.Velocity, n.Pitch, n.Start, n.End)

	next := s
	lane, history := AssignLane(cfg, n, s.PrevLaneTime)
	next.PrevLaneTime = history

	e := Entity{
		ID:     EntityID(s.EntityCount),
		Lane:   lane,
		Y:      cfg.StartY,
		IsHold: n.IsHold(cfg),
		Note:   n,
	}
	next.EntityCount++

	if n.UserPlayed {
		next.Active = with(s.Active, e)
	} else {
		next.Background = with(s.Background, e)
	}

	if e.IsHold {
		next.Tails = with(s.Tails, Tail{
			ID:       e.ID,
			Lane:     lane,
			Leading:  cfg.StartY - cfg.TailLength(n.Duration),
			Trailing: cfg.StartY,
		})
	}
	return next
}

// applyHit judges the most urgent marker in the pressed lane, or plays a
// filler note when there is nothing to hit.
func applyHit(cfg Config, s State, ev Hit) State {
	lo, hi := cfg.HittableWindow()
	best := -1
	for i, e := range s.Active {
		if e.Lane != ev.Lane || !e.Note.UserPlayed || e.Clicked || e.Y < lo || e.Y > hi {
			continue
		}
		if best < 0 || e.Y > s.Active[best].Y {
			best = i
		}
	}
	if best < 0 {
		return misclick(cfg, s)
	}

	next := s
	e := s.Active[best]
	j := Judge(cfg, e.Y)
	next.Active = without(s.Active, best)

	e.Clicked = true
	if j == JudgementGood {
		// Sloppy timing: the note sounds for a random length instead.
		e.Note.Duration = next.randomDuration(cfg)
		e.Note.End = e.Note.Start + e.Note.Duration
	}

	if e.IsHold {
		next.ActiveHolds = with(s.ActiveHolds, e)
	} else {
		next.ExitedEntities = with(s.ExitedEntities, e)
	}

	next.count(j)
	next.Score = round2(s.Score + s.Multiplier)
	next.succeed(cfg)
	return next
}

// misclick synthesizes a pre-clicked filler entity that only ever appears in
// ExitedEntities, so the audio adapter plays a wrong note.
func misclick(cfg Config, s State) State {
	next := s
	instrument := cfg.Instruments[pick(next.draw(), len(cfg.Instruments))]
	duration := next.randomDuration(cfg)
	velocity := round2(next.draw())
	pitch := pick(next.draw(), 127)

	start := s.TimeMS / 1000
	n := NewNote(false, instrument, velocity, pitch, start, start+duration)
	lane, _ := AssignLane(cfg, n, s.PrevLaneTime)

	e := Entity{
		ID:      EntityID(s.EntityCount),
		Lane:    lane,
		Y:       cfg.HitLine,
		Clicked: true,
		Note:    n,
	}
	next.EntityCount++
	next.ExitedEntities = with(s.ExitedEntities, e)
	return next
}

// applyRelease settles the held note of a lane on key-up.
func applyRelease(cfg Config, s State, ev Release) State {
	i, ok := heldIndex(s.ActiveHolds, ev.Lane)
	if !ok {
		return s
	}

	next := s
	e := s.ActiveHolds[i]
	e.Clicked = false
	next.ActiveHolds = without(s.ActiveHolds, i)
	next.ExitedEntities = with(s.ExitedEntities, e)

	// A release exactly at the tolerance line is still early
	if e.Y <= e.holdEnd(cfg)-cfg.EarlyReleaseTolerance {
		next.miss(cfg)
		return next
	}
	next.succeed(cfg)
	next.HoldsCompleted++
	return next
}
