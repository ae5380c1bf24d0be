package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/core"
	engine "github.com/vovakirdan/tui-rhythm/internal/games/rhythm/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// Lane keys come from the configuration; everything else is fixed.
type KeyMapper struct {
	lanes map[string]int
}

// NewKeyMapper creates a key mapper with one key per lane, left to right.
func NewKeyMapper(laneKeys []string) *KeyMapper {
	km := &KeyMapper{lanes: make(map[string]int, len(laneKeys))}
	for i, k := range laneKeys {
		km.lanes[k] = i
	}
	return km
}

// Lane reports the lane bound to a key.
func (km *KeyMapper) Lane(msg tea.KeyMsg) (int, bool) {
	lane, ok := km.lanes[msg.String()]
	return lane, ok
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// ctrl+c always quits, even when bound to nothing else
	if key == "ctrl+c" {
		return core.ActionQuit, true
	}
	if lane, ok := km.lanes[key]; ok {
		return core.LaneAction(lane), false
	}

	switch key {
	case "q":
		return core.ActionQuit, true
	case "b", "esc":
		return core.ActionBack, false
	case "p", " ":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionReplays
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionReplays
	}

	return MenuActionNone
}

// repeatGap separates terminal key repeats from a deliberate second press.
const repeatGap = 60 * time.Millisecond

// HoldTracker turns a stream of key-downs into presses and lifts.
// Terminals report no key-up, so a lane is lifted once its key has not
// repeated for the grace period.
type HoldTracker struct {
	grace    time.Duration
	down     [engine.LaneCount]bool
	lastSeen [engine.LaneCount]time.Time
}

// NewHoldTracker creates a tracker that lifts a lane after grace without repeats.
func NewHoldTracker(grace time.Duration) *HoldTracker {
	return &HoldTracker{grace: grace}
}

// Key registers a key-down for lane at now and reports whether it is a new
// press. sustaining tells whether the game holds a note in that lane; while it
// does, every repeat only extends the hold.
func (h *HoldTracker) Key(lane int, now time.Time, sustaining bool) bool {
	if lane < 0 || lane >= len(h.down) {
		return false
	}
	press := !h.down[lane] || (!sustaining && now.Sub(h.lastSeen[lane]) > repeatGap)
	h.down[lane] = true
	h.lastSeen[lane] = now
	return press
}

// Expired lifts and returns the lanes whose key stopped repeating.
func (h *HoldTracker) Expired(now time.Time) []int {
	var lanes []int
	for lane := range h.down {
		if h.down[lane] && now.Sub(h.lastSeen[lane]) > h.grace {
			h.down[lane] = false
			lanes = append(lanes, lane)
		}
	}
	return lanes
}

// Reset forgets every key.
func (h *HoldTracker) Reset() {
	h.down = [engine.LaneCount]bool{}
	h.lastSeen = [engine.LaneCount]time.Time{}
}
