package core

// EntityID identifies an entity for its whole lifetime.
type EntityID int

// Entity is a falling marker derived from a Note at spawn time.
type Entity struct {
	ID      EntityID
	Lane    int
	Y       float64 // Grows every tick; larger means further down the field
	Clicked bool
	IsHold  bool
	Note    Note
}

// Tail accompanies a hold note. Leading starts above the canvas and Trailing
// follows the marker until it is clamped at the hit line.
type Tail struct {
	ID       EntityID // Same id as the owning entity
	Lane     int
	Leading  float64
	Trailing float64
}

func (e Entity) moved(cfg Config) Entity {
	e.Y += cfg.PixelsPerTick
	return e
}

func (t Tail) moved(cfg Config) Tail {
	t.Leading += cfg.PixelsPerTick
	t.Trailing = min(t.Trailing+cfg.PixelsPerTick, cfg.HitLine)
	return t
}

// holdEnd is the position at which a held note has been held for its whole duration.
func (e Entity) holdEnd(cfg Config) float64 {
	return cfg.HitLine + cfg.TailLength(e.Note.Duration)
}
