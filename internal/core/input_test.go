package core

import (
	"reflect"
	"testing"
)

func TestLaneActions(t *testing.T) {
	for lane := 0; lane < 4; lane++ {
		got, ok := LaneAction(lane).PressedLane()
		if !ok || got != lane {
			t.Errorf("LaneAction(%d).PressedLane() = %d, %v", lane, got, ok)
		}
		got, ok = LiftAction(lane).LiftedLane()
		if !ok || got != lane {
			t.Errorf("LiftAction(%d).LiftedLane() = %d, %v", lane, got, ok)
		}
		if _, ok := LaneAction(lane).LiftedLane(); ok {
			t.Errorf("LaneAction(%d) must not be a lift", lane)
		}
	}
	if _, ok := ActionPause.PressedLane(); ok {
		t.Error("Pause is not a lane action")
	}
	if ActionLane2.String() != "Lane2" || ActionLift3.String() != "Lift3" {
		t.Errorf("Unexpected names %s, %s", ActionLane2, ActionLift3)
	}
}

func TestInputFrameLanes(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLane3)
	f.Set(ActionLane0)
	f.Set(ActionLift1)
	f.Set(ActionPause)

	if got := f.Pressed(); !reflect.DeepEqual(got, []int{0, 3}) {
		t.Errorf("Pressed() = %v, want [0 3]", got)
	}
	if got := f.Lifted(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Lifted() = %v, want [1]", got)
	}

	clone := f.Clone()
	f.Clear()
	if len(f.Pressed()) != 0 {
		t.Error("Clear must drop every action")
	}
	if !clone.Has(ActionLane3) {
		t.Error("Clone must not share state with the original")
	}
}
