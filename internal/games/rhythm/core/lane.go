package core

import "math"

// AssignLane picks a lane for a note from its start time alone, then walks
// away from lanes that received a player note within LaneSpreadWindow.
// The walk is bounded by LaneCorrections, so with a crowded field two close
// notes can still share a lane.
//
// history is the per-lane start time of the last player note. The returned
// history has the chosen lane updated only for player notes.
func AssignLane(cfg Config, n Note, history [LaneCount]float64) (int, [LaneCount]float64) {
	if !n.UserPlayed && cfg.BackgroundLanes == LanePolicyPinned {
		return 0, history
	}

	seed := uint64(math.Round(math.Max(n.Start, 0) * 1000))
	first := Hash(seed)
	lane := pick(Unit(first), LaneCount)
	step := 1
	if Scale(Hash(first)) < 0 {
		step = -1
	}

	for i := 0; i < cfg.LaneCorrections && crowded(cfg, n.Start, history[lane]); i++ {
		lane = (lane + step + LaneCount) % LaneCount
	}

	if n.UserPlayed {
		history[lane] = n.Start
	}
	return lane, history
}

func crowded(cfg Config, start, previous float64) bool {
	return math.Abs(start-previous) <= cfg.LaneSpreadWindow
}

// pick maps u in [0, 1] onto an index in [0, n).
func pick(u float64, n int) int {
	return min(int(u*float64(n)), n-1)
}
