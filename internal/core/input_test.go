package core

import "testing"

func TestInputFrame(t *testing.T) {
	var zero InputFrame
	if zero.Has(ActionPlace) || !zero.Empty() {
		t.Error("zero frame should be empty")
	}
	zero.Set(ActionPlace)
	if !zero.Has(ActionPlace) {
		t.Error("Set on a zero frame should allocate")
	}

	f := FrameOf(ActionRotate, ActionHint)
	if !f.Has(ActionRotate) || !f.Has(ActionHint) || f.Has(ActionPlace) {
		t.Errorf("FrameOf actions = %v", f.Actions)
	}
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:          "None",
		ActionToggleOverlay: "ToggleOverlay",
		ActionQuit:          "Quit",
		Action(99):          "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", int(a), got, want)
		}
	}
}

func TestColorDimmed(t *testing.T) {
	tests := []struct{ in, want Color }{
		{ColorBrightGreen, ColorGreen},
		{ColorRed, ColorRed},
		{ColorCyan, ColorDarkGray},
		{ColorDefault, ColorDarkGray},
	}
	for _, tt := range tests {
		if got := tt.in.Dimmed(); got != tt.want {
			t.Errorf("%d.Dimmed() = %d, want %d", tt.in, got, tt.want)
		}
	}
}
