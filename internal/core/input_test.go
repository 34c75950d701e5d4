package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionLeft) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionLeft)
	f.Point(120)
	f.Point(140)

	if !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Errorf("unexpected actions: %v", f.Actions)
	}
	if !f.HasPointer || f.PointerX != 140 {
		t.Errorf("latest pointer should win, got %v/%f", f.HasPointer, f.PointerX)
	}

	f.Clear()
	if f.Has(ActionLeft) || f.HasPointer {
		t.Error("Clear should drop actions and pointer")
	}
}

func TestActionString(t *testing.T) {
	if ActionRestart.String() != "Restart" {
		t.Errorf("ActionRestart.String() = %q", ActionRestart.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}

func TestTickDuration(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).TickDuration(); got != 20*time.Millisecond {
		t.Errorf("TickDuration() = %v, expected 20ms", got)
	}
	if got := (RuntimeConfig{}).TickDuration(); got != time.Second/60 {
		t.Errorf("zero tick rate should default to 60 Hz, got %v", got)
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor(" Pink "); !ok || c != ColorPink {
		t.Errorf("ParseColor(pink) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("ultraviolet"); ok {
		t.Error("unknown color should not resolve")
	}
}
