package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

func TestGridDefault(t *testing.T) {
	g := core.NewGrid(7)
	if v := g.Get(0, 0); v != 7 {
		t.Errorf("Get(0,0) = %d, want 7", v)
	}
	if n := g.Count(7); n != core.Dim*core.Dim {
		t.Errorf("Count(7) = %d, want %d", n, core.Dim*core.Dim)
	}
}

func TestGridGetOpt(t *testing.T) {
	g := core.NewGrid(core.Empty)
	g.Set(3, 4, core.Red)

	testCases := []struct {
		x, y   int
		want   core.Occupancy
		wantOK bool
	}{
		{3, 4, core.Red, true},
		{0, 0, core.Empty, true},
		{19, 19, core.Empty, true},
		{-1, 0, core.Empty, false},
		{0, -1, core.Empty, false},
		{20, 0, core.Empty, false},
		{0, 20, core.Empty, false},
	}

	for _, tc := range testCases {
		got, ok := g.GetOpt(tc.x, tc.y)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("GetOpt(%d,%d) = %v,%v; want %v,%v", tc.x, tc.y, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestGridGetPanicsOffBoard(t *testing.T) {
	g := core.NewGrid(0)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "(20,0)") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	g.Get(20, 0)
}

func TestGridSetOffBoard(t *testing.T) {
	g := core.NewGrid(0)
	before := g
	if g.Set(-1, 5, 9) {
		t.Error("Set off board returned true")
	}
	if !g.Equal(&before) {
		t.Error("Set off board changed the grid")
	}
	if !g.Set(5, 5, 9) {
		t.Error("Set on board returned false")
	}
	if g.Equal(&before) {
		t.Error("Set on board did not change the grid")
	}
}

func TestGridRender(t *testing.T) {
	g := core.NewGrid(core.Empty)
	g.Set(0, 0, core.Green)
	g.Set(19, 19, core.Yellow)

	lines := strings.Split(g.Render(core.Occupancy.Char), "\n")
	if len(lines) != core.Dim {
		t.Fatalf("expected %d lines, got %d", core.Dim, len(lines))
	}
	if !strings.HasPrefix(lines[0], "G·") {
		t.Errorf("first row = %q", lines[0])
	}
	if !strings.HasSuffix(lines[19], "·Y") {
		t.Errorf("last row = %q", lines[19])
	}
	if n := len([]rune(lines[5])); n != core.Dim {
		t.Errorf("row width = %d, want %d", n, core.Dim)
	}
}

func TestGridCoords(t *testing.T) {
	g := core.NewGrid(false)
	g.Set(2, 1, true)
	g.Set(1, 2, true)
	got := g.Coords(true)
	if len(got) != 2 || got[0] != core.C(2, 1) || got[1] != core.C(1, 2) {
		t.Errorf("Coords = %v", got)
	}
}
