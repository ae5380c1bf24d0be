package core

// LCG parameters (same family as the classic ANSI C rand).
const (
	rngModulus    uint64 = 0x80000000
	rngMultiplier uint64 = 1103515245
	rngIncrement  uint64 = 12345
)

// Hash advances a linear congruential generator by one step.
// The result is always in [0, 2^31).
func Hash(seed uint64) uint64 {
	return (rngMultiplier*(seed%rngModulus) + rngIncrement) % rngModulus
}

// Scale maps a hash into [-1, 1].
func Scale(h uint64) float64 {
	return 2*float64(h)/float64(rngModulus-1) - 1
}

// Unit maps a hash into [0, 1].
func Unit(h uint64) float64 {
	return (Scale(h) + 1) / 2
}

// draw advances the state's generator and returns a value in [0, 1].
// The advanced seed is written back so the state carries it forward.
func (s *State) draw() float64 {
	s.RNG = Hash(s.RNG)
	return Unit(s.RNG)
}
