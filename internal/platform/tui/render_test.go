package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blokus/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "plain")
	if got := RenderScreen(s); got != s.String() {
		t.Errorf("RenderScreen = %q, want %q", got, s.String())
	}
}

func TestRenderScreenKeepsColoredRuns(t *testing.T) {
	s := core.NewScreen(12, 1)
	s.DrawTextColored(0, 0, "GREEN", core.ColorGreen)
	s.DrawTextColored(6, 0, "RED", core.ColorRed)
	out := RenderScreen(s)
	for _, want := range []string{"GREEN", "RED"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
