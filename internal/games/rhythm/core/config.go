package core

import (
	"errors"
	"fmt"
)

// LaneCount is the number of lanes notes fall through.
const LaneCount = 4

// LanePolicy decides how non-player notes are placed.
type LanePolicy string

const (
	// LanePolicySpread runs background notes through the same lane assignment
	// as player notes, without recording them in the lane history.
	LanePolicySpread LanePolicy = "spread"
	// LanePolicyPinned always places background notes in lane 0.
	LanePolicyPinned LanePolicy = "pinned"
)

// DefaultInstruments is the sample pool misclick filler notes pick from.
var DefaultInstruments = []string{
	"bass-electric", "bassoon", "cello", "clarinet", "contrabass",
	"flute", "french-horn", "guitar-acoustic", "guitar-electric", "guitar-nylon",
	"harmonium", "harp", "organ", "piano", "saxophone",
	"trombone", "trumpet", "tuba", "violin", "xylophone",
}

// Config holds every tunable of the engine. It is passed by value into each
// transition and never mutated by the engine.
type Config struct {
	TickPeriodMS  float64 // Simulated milliseconds per Tick
	PixelsPerTick float64 // Vertical travel per Tick
	CanvasHeight  float64 // Field height in engine pixels
	StartY        float64 // Spawn position
	HitLine       float64 // Where notes should be pressed

	HitRange     float64 // Hittable range around the hit line; anything judged beyond GreatRange is Good
	VisibleExtra float64 // Extra travel past the hit line before player notes expire
	PerfectRange float64
	GreatRange   float64

	HoldThreshold         float64 // Seconds; player notes at least this long are hold notes
	EarlyReleaseTolerance float64 // Pixels of slack before the tail end

	LaneSpreadWindow float64 // Seconds; notes closer than this avoid sharing a lane
	LaneCorrections  int     // Max corrective lane steps

	BaseMultiplier float64
	MultiplierStep float64
	ComboMilestone int

	FillerMinDuration float64 // Seconds
	FillerMaxDuration float64 // Seconds
	Instruments       []string

	BackgroundLanes LanePolicy
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		TickPeriodMS:  10,
		PixelsPerTick: 2,
		CanvasHeight:  400,
		StartY:        0,
		HitLine:       350,

		HitRange:     60,
		VisibleExtra: 30,
		PerfectRange: 8,
		GreatRange:   20,

		HoldThreshold:         1.0,
		EarlyReleaseTolerance: 100,

		LaneSpreadWindow: 0.150,
		LaneCorrections:  3,

		BaseMultiplier: 1,
		MultiplierStep: 0.2,
		ComboMilestone: 10,

		FillerMinDuration: 0.1,
		FillerMaxDuration: 0.6,
		Instruments:       append([]string(nil), DefaultInstruments...),

		BackgroundLanes: LanePolicySpread,
	}
}

// Validate reports every inconsistency in the configuration as one error.
func (c Config) Validate() error {
	var errs []error
	if c.TickPeriodMS <= 0 {
		errs = append(errs, errors.New("tick period must be positive"))
	}
	if c.PixelsPerTick <= 0 {
		errs = append(errs, errors.New("pixels per tick must be positive"))
	}
	if c.CanvasHeight <= 0 {
		errs = append(errs, errors.New("canvas height must be positive"))
	}
	if c.HitLine <= c.StartY || c.HitLine > c.CanvasHeight {
		errs = append(errs, fmt.Errorf("hit line %.1f must lie in (%.1f, %.1f]", c.HitLine, c.StartY, c.CanvasHeight))
	}
	if !(0 <= c.PerfectRange && c.PerfectRange < c.GreatRange && c.GreatRange < c.HitRange) {
		errs = append(errs, fmt.Errorf("judgement ranges must satisfy 0 <= perfect < great < hit range (got %.1f, %.1f, %.1f)",
			c.PerfectRange, c.GreatRange, c.HitRange))
	}
	if c.VisibleExtra < 0 {
		errs = append(errs, errors.New("visible extra must not be negative"))
	}
	if c.HoldThreshold <= 0 {
		errs = append(errs, errors.New("hold threshold must be positive"))
	}
	if c.LaneCorrections < 0 {
		errs = append(errs, errors.New("lane corrections must not be negative"))
	}
	if c.ComboMilestone <= 0 {
		errs = append(errs, errors.New("combo milestone must be positive"))
	}
	if c.BaseMultiplier <= 0 || c.MultiplierStep < 0 {
		errs = append(errs, errors.New("multiplier base must be positive and step non-negative"))
	}
	if c.FillerMinDuration < 0 || c.FillerMaxDuration < c.FillerMinDuration {
		errs = append(errs, errors.New("filler durations must satisfy 0 <= min <= max"))
	}
	if len(c.Instruments) == 0 {
		errs = append(errs, errors.New("instrument pool is empty"))
	}
	switch c.BackgroundLanes {
	case LanePolicySpread, LanePolicyPinned:
	default:
		errs = append(errs, fmt.Errorf("unknown background lane policy %q", c.BackgroundLanes))
	}
	if len(errs) > 0 {
		return fmt.Errorf("core: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// PixelsPerSecond returns how far a marker travels in one simulated second.
func (c Config) PixelsPerSecond() float64 {
	return (1000 / c.TickPeriodMS) * c.PixelsPerTick
}

// TailLength returns the tail length in pixels of a note lasting duration seconds.
func (c Config) TailLength(duration float64) float64 {
	return c.PixelsPerSecond() * duration
}

// TraversalMS is the simulated time a marker needs to cross the whole canvas.
func (c Config) TraversalMS() float64 {
	return c.CanvasHeight / c.PixelsPerTick * c.TickPeriodMS
}

// LeadMS is the simulated time between a spawn and the marker reaching the hit line.
func (c Config) LeadMS() float64 {
	return (c.HitLine - c.StartY) / c.PixelsPerTick * c.TickPeriodMS
}

// PlayerBoundary is the position past which unhit player markers expire.
func (c Config) PlayerBoundary() float64 {
	return c.HitLine + c.VisibleExtra
}

// BackgroundBoundary is the position past which background markers expire.
func (c Config) BackgroundBoundary() float64 {
	return c.HitLine
}

// HittableWindow returns the inclusive position range in which a press can hit a marker.
func (c Config) HittableWindow() (lo, hi float64) {
	return c.HitLine - c.HitRange, c.HitLine + c.HitRange + c.VisibleExtra
}
