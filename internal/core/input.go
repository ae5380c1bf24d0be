package core

// Action represents a semantic game action, abstracted from physical key presses.
// Lane actions are key-downs; lift actions are the matching key-ups.
type Action int

const (
	ActionNone Action = iota
	ActionLane0
	ActionLane1
	ActionLane2
	ActionLane3
	ActionLift0
	ActionLift1
	ActionLift2
	ActionLift3
	ActionBack    // Escape - go back to menu
	ActionRestart // R key - restart after the song ended
	ActionQuit    // Q, Ctrl+C - exit game/session
	ActionPause   // P - pause/unpause game
)

const laneActions = 4

// LaneAction returns the key-down action of a lane.
func LaneAction(lane int) Action {
	return ActionLane0 + Action(lane)
}

// LiftAction returns the key-up action of a lane.
func LiftAction(lane int) Action {
	return ActionLift0 + Action(lane)
}

// PressedLane reports the lane of a key-down action.
func (a Action) PressedLane() (int, bool) {
	if a >= ActionLane0 && a < ActionLane0+laneActions {
		return int(a - ActionLane0), true
	}
	return 0, false
}

// LiftedLane reports the lane of a key-up action.
func (a Action) LiftedLane() (int, bool) {
	if a >= ActionLift0 && a < ActionLift0+laneActions {
		return int(a - ActionLift0), true
	}
	return 0, false
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if lane, ok := a.PressedLane(); ok {
		return "Lane" + string(rune('0'+lane))
	}
	if lane, ok := a.LiftedLane(); ok {
		return "Lift" + string(rune('0'+lane))
	}
	switch a {
	case ActionNone:
		return "None"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Pressed returns the lanes pressed this frame, in lane order.
func (f InputFrame) Pressed() []int {
	var lanes []int
	for lane := 0; lane < laneActions; lane++ {
		if f.Has(LaneAction(lane)) {
			lanes = append(lanes, lane)
		}
	}
	return lanes
}

// Lifted returns the lanes released this frame, in lane order.
func (f InputFrame) Lifted() []int {
	var lanes []int
	for lane := 0; lane < laneActions; lane++ {
		if f.Has(LiftAction(lane)) {
			lanes = append(lanes, lane)
		}
	}
	return lanes
}
