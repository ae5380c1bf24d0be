package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper([]string{"a", "s", "k", "l"})

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"lane 0", runeKey('a'), core.ActionLane0, false},
		{"lane 3", runeKey('l'), core.ActionLane3, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isQuit := km.MapKey(tt.msg)
			if got != tt.want || isQuit != tt.isQuit {
				t.Errorf("MapKey() = %v, %v; want %v, %v", got, isQuit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestLaneKeysWinOverCommands(t *testing.T) {
	km := NewKeyMapper([]string{"q", "w", "o", "p"})
	if got, isQuit := km.MapKey(runeKey('q')); got != core.ActionLane0 || isQuit {
		t.Errorf("Expected q to be lane 0, got %v (quit %v)", got, isQuit)
	}
	if got, _ := km.MapKey(runeKey('p')); got != core.ActionLane3 {
		t.Errorf("Expected p to be lane 3, got %v", got)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(nil)
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey('l'), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionReplays},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHoldTracker(t *testing.T) {
	start := time.Unix(0, 0)
	at := func(ms int) time.Time { return start.Add(time.Duration(ms) * time.Millisecond) }
	h := NewHoldTracker(600 * time.Millisecond)

	if !h.Key(1, at(0), false) {
		t.Fatal("Expected the first key-down to be a press")
	}
	if h.Key(1, at(30), false) {
		t.Error("Expected a fast repeat to be ignored")
	}
	if lanes := h.Expired(at(500)); len(lanes) != 0 {
		t.Errorf("Expected no lift within the grace, got %v", lanes)
	}

	// While the game sustains a note, slow repeats only extend the hold.
	if h.Key(1, at(550), true) {
		t.Error("Expected a repeat during a hold to extend it")
	}
	if lanes := h.Expired(at(1000)); len(lanes) != 0 {
		t.Errorf("Expected the hold to be extended, got lifts %v", lanes)
	}

	lanes := h.Expired(at(1200))
	if len(lanes) != 1 || lanes[0] != 1 {
		t.Fatalf("Expected lane 1 to be lifted, got %v", lanes)
	}
	if lanes := h.Expired(at(5000)); len(lanes) != 0 {
		t.Errorf("Expected a lane to be lifted once, got %v", lanes)
	}
	if !h.Key(1, at(5000), false) {
		t.Error("Expected a press after the lift")
	}
}

func TestHoldTrackerDoubleTap(t *testing.T) {
	start := time.Unix(0, 0)
	h := NewHoldTracker(600 * time.Millisecond)

	h.Key(2, start, false)
	if !h.Key(2, start.Add(150*time.Millisecond), false) {
		t.Error("Expected a second tap to count as a press")
	}
	if h.Key(-1, start, false) || h.Key(4, start, false) {
		t.Error("Expected lanes outside the field to be ignored")
	}
}
