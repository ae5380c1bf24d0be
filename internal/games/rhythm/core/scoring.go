package core

import "math"

// Judgement is the quality bucket of a hit.
type Judgement int

const (
	JudgementNone Judgement = iota
	JudgementPerfect
	JudgementGreat
	JudgementGood
	JudgementMiss
)

// String returns a display name for the judgement.
func (j Judgement) String() string {
	switch j {
	case JudgementPerfect:
		return "Perfect"
	case JudgementGreat:
		return "Great"
	case JudgementGood:
		return "Good"
	case JudgementMiss:
		return "Miss"
	default:
		return "None"
	}
}

// Judge classifies a marker position by its distance from the hit line.
// Positions outside the hittable window are a miss.
func Judge(cfg Config, y float64) Judgement {
	lo, hi := cfg.HittableWindow()
	if y < lo || y > hi {
		return JudgementMiss
	}
	d := math.Abs(cfg.HitLine - y)
	switch {
	case d <= cfg.PerfectRange:
		return JudgementPerfect
	case d <= cfg.GreatRange:
		return JudgementGreat
	default:
		return JudgementGood
	}
}

// Weight is the accuracy weight of a judgement.
func (j Judgement) Weight() int {
	switch j {
	case JudgementPerfect:
		return 300
	case JudgementGreat:
		return 100
	case JudgementGood:
		return 50
	default:
		return 0
	}
}

// nextMultiplier applies the step-up rule for a combo that has just been reached.
func nextMultiplier(cfg Config, multiplier float64, combo int) float64 {
	if combo > 0 && combo%cfg.ComboMilestone == 0 {
		return round2(multiplier + cfg.MultiplierStep)
	}
	return multiplier
}

// succeed records one more successful judgement in the combo economy.
func (s *State) succeed(cfg Config) {
	s.Combo++
	s.HighestCombo = max(s.HighestCombo, s.Combo)
	s.Multiplier = nextMultiplier(cfg, s.Multiplier, s.Combo)
}

// miss breaks the combo.
func (s *State) miss(cfg Config) {
	s.Combo = 0
	s.Multiplier = cfg.BaseMultiplier
	s.Miss++
}

func (s *State) count(j Judgement) {
	switch j {
	case JudgementPerfect:
		s.Perfect++
	case JudgementGreat:
		s.Great++
	case JudgementGood:
		s.Good++
	case JudgementMiss:
		s.Miss++
	}
}

// randomDuration draws a filler duration in seconds.
func (s *State) randomDuration(cfg Config) float64 {
	span := cfg.FillerMaxDuration - cfg.FillerMinDuration
	return round2(cfg.FillerMinDuration + s.draw()*span)
}
