package blokus

import (
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
	"github.com/vovakirdan/tui-blokus/internal/registry"
)

func step(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	return g.Step(platformcore.FrameOf(actions...))
}

func TestNewGameState(t *testing.T) {
	g := New()
	snap := g.Snapshot()

	if snap.Color != "green" || snap.Piece != "five-u" || snap.Rotation != 0 {
		t.Errorf("unexpected initial selection: %+v", snap)
	}
	if snap.Cursor != core.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", snap.Cursor)
	}
	for color, n := range snap.Remaining {
		if n != core.PieceCount {
			t.Errorf("%s starts with %d pieces, want %d", color, n, core.PieceCount)
		}
	}
	if snap.Stuck || snap.Finished {
		t.Error("empty board should not be stuck")
	}
}

func TestPlaceFiveU(t *testing.T) {
	g := New()
	step(g, platformcore.ActionRotate)
	step(g, platformcore.ActionRotate)
	step(g, platformcore.ActionRight)
	step(g, platformcore.ActionDown)

	res := step(g, platformcore.ActionPlace)
	if len(res.Placements) != 1 {
		t.Fatalf("expected one placement, got %d (%s)", len(res.Placements), res.Message)
	}
	want := platformcore.PlacementEvent{Color: "green", Piece: "five-u", Rotation: 180, Col: 0, Row: 0}
	if res.Placements[0] != want {
		t.Errorf("placement = %+v, want %+v", res.Placements[0], want)
	}
	if res.State.Placed != 1 {
		t.Errorf("placed = %d", res.State.Placed)
	}

	snap := g.Snapshot()
	if snap.Remaining["green"] != core.PieceCount-1 {
		t.Errorf("green has %d pieces left", snap.Remaining["green"])
	}
	if snap.Piece != "five-v" {
		t.Errorf("selection should advance past the used piece, got %s", snap.Piece)
	}
	if !strings.HasPrefix(snap.Board, "G·G") {
		t.Errorf("board row 0 = %q", strings.SplitN(snap.Board, "\n", 2)[0])
	}
}

func TestIllegalPlacementKeepsBoard(t *testing.T) {
	g := New()
	for i := 0; i < 5; i++ {
		step(g, platformcore.ActionRight)
		step(g, platformcore.ActionDown)
	}
	before := g.Snapshot().Board

	res := step(g, platformcore.ActionPlace)
	if len(res.Placements) != 0 {
		t.Fatal("placement in the middle of an empty board should fail")
	}
	if res.Message == "" {
		t.Error("expected a status message")
	}
	if g.Snapshot().Board != before {
		t.Error("board changed after illegal placement")
	}
}

func TestUsedPieceSkipped(t *testing.T) {
	g := New()
	step(g, platformcore.ActionHint)
	if res := step(g, platformcore.ActionPlace); len(res.Placements) != 1 {
		t.Fatalf("hinted placement failed: %s", res.Message)
	}

	// FiveU is gone for green, so going back from FiveV lands on FiveT.
	step(g, platformcore.ActionPrevPiece)
	if got := g.Snapshot().Piece; got != "five-t" {
		t.Errorf("piece = %s, want five-t", got)
	}

	// Red still owns FiveU.
	step(g, platformcore.ActionNextColor)
	step(g, platformcore.ActionNextPiece)
	if got := g.Snapshot(); got.Color != "red" || got.Piece != "five-u" {
		t.Errorf("after color switch: %s %s", got.Color, got.Piece)
	}
}

func TestColorCycle(t *testing.T) {
	g := New()
	want := []string{"red", "blue", "yellow", "green"}
	for _, c := range want {
		res := step(g, platformcore.ActionNextColor)
		if res.State.Color != c {
			t.Errorf("color = %s, want %s", res.State.Color, c)
		}
	}
}

func TestCursorClamped(t *testing.T) {
	g := New()
	step(g, platformcore.ActionUp)
	step(g, platformcore.ActionLeft)
	if c := g.Snapshot().Cursor; c != core.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", c)
	}
	for i := 0; i < 30; i++ {
		step(g, platformcore.ActionRight)
		step(g, platformcore.ActionDown)
	}
	if c := g.Snapshot().Cursor; c != core.C(core.Dim-1, core.Dim-1) {
		t.Errorf("cursor = %v, want (19,19)", c)
	}
}

func TestHintCycles(t *testing.T) {
	g := New()
	first := step(g, platformcore.ActionHint)
	if !strings.HasPrefix(first.Message, "Hint 1/") {
		t.Errorf("message = %q", first.Message)
	}
	// FiveU at 0° on the top-left corner puts its pivot at (1,0).
	if c := g.Snapshot().Cursor; c != core.C(1, 0) {
		t.Errorf("cursor = %v, want (1,0)", c)
	}
	second := step(g, platformcore.ActionHint)
	if !strings.HasPrefix(second.Message, "Hint 2/") {
		t.Errorf("message = %q", second.Message)
	}
	if _, legal := g.GhostCells(); !legal {
		t.Error("hinted ghost should be legal")
	}
}

func TestClassicVariantHomeCorner(t *testing.T) {
	g, err := registry.Create("blokus_classic")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	game := g.(*Game)
	if game.Rule() != core.StartOwnCorner {
		t.Fatalf("rule = %v", game.Rule())
	}

	step(game, platformcore.ActionNextColor)
	step(game, platformcore.ActionHint)
	res := step(game, platformcore.ActionPlace)
	if len(res.Placements) != 1 {
		t.Fatalf("red hint placement failed: %s", res.Message)
	}
	if occ, _ := game.Board().At(core.Dim-1, 0); occ != core.Red {
		t.Errorf("red should occupy its home corner, got %v", occ)
	}
}

func TestRestartClearsBoard(t *testing.T) {
	g := New()
	step(g, platformcore.ActionHint)
	step(g, platformcore.ActionPlace)
	step(g, platformcore.ActionToggleOverlay)

	res := step(g, platformcore.ActionRestart)
	if res.State.Placed != 0 {
		t.Errorf("placed = %d after restart", res.State.Placed)
	}
	snap := g.Snapshot()
	if strings.ContainsAny(snap.Board, "GRBY") {
		t.Error("board not cleared")
	}
	if !snap.Overlay {
		t.Error("overlay setting should survive a restart")
	}
	if len(g.History()) != 0 {
		t.Error("history not cleared")
	}
}

func TestStartRuleOverride(t *testing.T) {
	g := New()
	cfg := platformcore.DefaultConfig()
	cfg.StartRule = "edges"
	g.Reset(cfg)
	if g.Rule() != core.StartEdges {
		t.Errorf("rule = %v, want edges", g.Rule())
	}

	cfg.StartRule = "nonsense"
	g.Reset(cfg)
	if g.Rule() != core.StartCorners {
		t.Errorf("invalid override should fall back to the variant rule, got %v", g.Rule())
	}
}

func TestTooSmallIgnoresInput(t *testing.T) {
	g := New()
	g.Resize(40, 10)
	step(g, platformcore.ActionRight)
	if c := g.Snapshot().Cursor; c != core.C(0, 0) {
		t.Errorf("cursor moved while too small: %v", c)
	}

	screen := platformcore.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small notice")
	}
}

func TestRender(t *testing.T) {
	g := New()
	step(g, platformcore.ActionRotate)
	step(g, platformcore.ActionRotate)
	step(g, platformcore.ActionRight)
	step(g, platformcore.ActionDown)
	step(g, platformcore.ActionPlace)

	screen := platformcore.NewScreen(minScreenW, minScreenH)
	g.Render(screen)

	sx, sy := cellOrigin(2, 0)
	if c := screen.Cell(sx, sy); c.Rune != '█' || c.Fg != platformcore.ColorGreen {
		t.Errorf("cell (2,0) rendered as %+v", c)
	}
	out := screen.String()
	for _, want := range []string{"Color: green", "Piece: five-v", "Placed: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestMoveEventRoundTrip(t *testing.T) {
	m := core.Move{Color: core.Blue, Piece: core.FourStairs, Rotation: core.Rot270, Col: 4, Row: 7}
	got, err := ParseMoveEvent(MoveEvent(m))
	if err != nil {
		t.Fatalf("ParseMoveEvent: %v", err)
	}
	if got != m {
		t.Errorf("round trip = %+v, want %+v", got, m)
	}

	if _, err := ParseMoveEvent(platformcore.PlacementEvent{Color: "purple", Piece: "one"}); err == nil {
		t.Error("expected error for unknown color")
	}
}

func TestInventory(t *testing.T) {
	inv := NewInventory()
	if inv.Len() != core.PieceCount || inv.Cells() != 89 {
		t.Fatalf("full inventory: %d pieces %d cells", inv.Len(), inv.Cells())
	}
	if !inv.Take(core.One) || inv.Take(core.One) {
		t.Error("Take should succeed once")
	}
	if p, ok := inv.PrevAvailable(core.Two); !ok || p != core.FiveZ {
		t.Errorf("PrevAvailable(Two) = %v, %v", p, ok)
	}

	for _, p := range inv.Remaining() {
		if p != core.Two {
			inv.Take(p)
		}
	}
	if p, ok := inv.NextAvailable(core.Two); !ok || p != core.Two {
		t.Errorf("only piece left should be returned, got %v %v", p, ok)
	}
	inv.Take(core.Two)
	if _, ok := inv.NextAvailable(core.Two); ok {
		t.Error("empty inventory should report false")
	}
}
