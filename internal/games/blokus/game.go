// Package blokus provides the Blokus placement sandbox for the platform.
// It owns selection state (cursor, piece, rotation, color) and per-color
// inventories on top of the rule engine in the core subpackage.
package blokus

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
	"github.com/vovakirdan/tui-blokus/internal/registry"
)

// Variant describes one registered flavor of the sandbox.
type Variant struct {
	ID    string
	Title string
	Rule  core.StartRule
}

// Variants lists the registered variants.
var Variants = []Variant{
	{ID: "blokus", Title: "Blokus Sandbox", Rule: core.StartCorners},
	{ID: "blokus_classic", Title: "Blokus (Home Corners)", Rule: core.StartOwnCorner},
	{ID: "blokus_edges", Title: "Blokus (Edge Start)", Rule: core.StartEdges},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// Game implements the sandbox: any color may place at any time and
// legality is enforced by the board.
type Game struct {
	variant Variant
	rule    core.StartRule
	board   *core.Board

	inventories map[core.Occupancy]*Inventory
	history     []core.Move

	// Selection state
	cursor  core.Coord // where the selected piece's pivot lands
	piece   core.Piece
	rot     core.Rotation
	color   core.Occupancy
	overlay bool

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool

	// Status
	message  string
	stuck    bool
	finished bool
}

// New creates the default sandbox variant.
func New() *Game {
	return NewVariant(Variants[0])
}

// NewVariant creates a sandbox for the given variant.
func NewVariant(v Variant) *Game {
	g := &Game{variant: v, rule: v.Rule}
	g.Reset(platformcore.DefaultConfig())
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Rule returns the start rule in effect.
func (g *Game) Rule() core.StartRule {
	return g.rule
}

// Reset clears the board, refills every inventory and recenters the cursor.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rule = g.variant.Rule
	if cfg.StartRule != "" {
		if r, err := core.ParseStartRule(cfg.StartRule); err == nil {
			g.rule = r
		}
	}
	g.board = core.NewBoard(core.WithStartRule(g.rule))
	g.inventories = make(map[core.Occupancy]*Inventory, 4)
	for _, c := range core.Colors() {
		g.inventories[c] = NewInventory()
	}
	g.history = nil

	g.cursor = core.C(0, 0)
	g.piece = core.FiveU
	g.rot = core.Rot0
	g.color = core.Green
	g.overlay = cfg.ShowOverlay
	g.message = ""

	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.refreshStatus()
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step applies one input frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.message = ""
	var placements []platformcore.PlacementEvent

	if in.Has(platformcore.ActionRestart) {
		cfg := platformcore.RuntimeConfig{
			ScreenW:     g.screenW,
			ScreenH:     g.screenH,
			StartRule:   g.rule.String(),
			ShowOverlay: g.overlay,
		}
		g.Reset(cfg)
		g.message = "Board cleared"
		return platformcore.StepResult{State: g.State(), Message: g.message}
	}

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	switch {
	case in.Has(platformcore.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(platformcore.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(platformcore.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(platformcore.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(platformcore.ActionRotate) {
		g.rot = g.rot.NextClockwise()
	}
	if in.Has(platformcore.ActionRotateBack) {
		g.rot = g.rot.Prev()
	}
	if in.Has(platformcore.ActionNextPiece) {
		g.selectPiece(true)
	}
	if in.Has(platformcore.ActionPrevPiece) {
		g.selectPiece(false)
	}
	if in.Has(platformcore.ActionNextColor) {
		g.color = g.color.NextColor()
		g.ensureSelection()
		g.refreshStatus()
	}
	if in.Has(platformcore.ActionToggleOverlay) {
		g.overlay = !g.overlay
	}
	if in.Has(platformcore.ActionHint) {
		g.hint()
	}
	if in.Has(platformcore.ActionPlace) {
		if ev, ok := g.place(); ok {
			placements = append(placements, ev)
		}
	}

	return platformcore.StepResult{
		State:      g.State(),
		Placements: placements,
		Message:    g.message,
	}
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursor.X = platformcore.Clamp(g.cursor.X+dx, 0, core.Dim-1)
	g.cursor.Y = platformcore.Clamp(g.cursor.Y+dy, 0, core.Dim-1)
}

func (g *Game) inventory() *Inventory {
	return g.inventories[g.color]
}

func (g *Game) selectPiece(forward bool) {
	inv := g.inventory()
	var p core.Piece
	var ok bool
	if forward {
		p, ok = inv.NextAvailable(g.piece)
	} else {
		p, ok = inv.PrevAvailable(g.piece)
	}
	if !ok {
		g.message = fmt.Sprintf("%s has no pieces left", g.color)
		return
	}
	g.piece = p
}

// ensureSelection moves off a piece the active color has already used.
func (g *Game) ensureSelection() {
	inv := g.inventory()
	if inv.Has(g.piece) {
		return
	}
	if p, ok := inv.NextAvailable(g.piece); ok {
		g.piece = p
	}
}

// anchor converts the cursor (pivot position) into the mask's top-left.
func (g *Game) anchor() (col, row int) {
	return g.board.Catalog().Offsets(g.piece, g.rot).PivotAnchor(g.cursor.X, g.cursor.Y)
}

// GhostCells returns the cells the selected piece would cover and whether
// placing it there is legal.
func (g *Game) GhostCells() ([]core.Coord, bool) {
	col, row := g.anchor()
	cells := g.board.Catalog().Offsets(g.piece, g.rot).Translate(col, row)
	legal := g.inventory().Has(g.piece) && g.board.IsPlacementValid(g.color, cells)
	return cells, legal
}

func (g *Game) place() (platformcore.PlacementEvent, bool) {
	if !g.inventory().Has(g.piece) {
		g.message = fmt.Sprintf("%s already used %s", g.color, g.piece)
		return platformcore.PlacementEvent{}, false
	}
	col, row := g.anchor()
	if !g.board.Place(g.color, g.piece, g.rot, col, row) {
		g.message = fmt.Sprintf("%s %s does not fit here", g.color, g.piece)
		return platformcore.PlacementEvent{}, false
	}

	move := core.Move{Color: g.color, Piece: g.piece, Rotation: g.rot, Col: col, Row: row}
	g.history = append(g.history, move)
	g.inventory().Take(g.piece)
	g.message = fmt.Sprintf("Placed %s %s", g.color, g.piece)
	g.ensureSelection()
	g.refreshStatus()

	return MoveEvent(move), true
}

// hint cycles the selection through the legal placements of the piece.
func (g *Game) hint() {
	if !g.inventory().Has(g.piece) {
		g.message = fmt.Sprintf("%s already used %s", g.color, g.piece)
		return
	}
	options := g.board.LegalPlacements(g.color, g.piece)
	if len(options) == 0 {
		g.message = fmt.Sprintf("No legal placement for %s %s", g.color, g.piece)
		return
	}

	col, row := g.anchor()
	next := 0
	for i, p := range options {
		if p.Rotation == g.rot && p.Col == col && p.Row == row {
			next = (i + 1) % len(options)
			break
		}
	}
	p := options[next]
	pivot := g.board.Catalog().Offsets(p.Piece, p.Rotation).Pivot
	g.rot = p.Rotation
	g.cursor = core.C(p.Col+pivot.X, p.Row+pivot.Y)
	g.message = fmt.Sprintf("Hint %d/%d", next+1, len(options))
}

// refreshStatus recomputes whether the active color and the table can move.
func (g *Game) refreshStatus() {
	g.stuck = !g.board.HasLegalPlacement(g.color, g.inventory().Remaining()...)
	g.finished = g.stuck
	if !g.stuck {
		return
	}
	for _, c := range core.Colors() {
		if c == g.color {
			continue
		}
		if g.board.HasLegalPlacement(c, g.inventories[c].Remaining()...) {
			g.finished = false
			return
		}
	}
}

// State returns the current sandbox summary.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Rule:     g.rule.String(),
		Color:    g.color.String(),
		Placed:   len(g.history),
		Stuck:    g.stuck,
		Finished: g.finished,
	}
}

// Board returns a copy of the board.
func (g *Game) Board() *core.Board {
	return g.board.Clone()
}

// History returns the moves placed since the last reset.
func (g *Game) History() []core.Move {
	return append([]core.Move(nil), g.history...)
}

// MoveEvent converts an engine move into the platform's event form.
func MoveEvent(m core.Move) platformcore.PlacementEvent {
	return platformcore.PlacementEvent{
		Color:    m.Color.String(),
		Piece:    m.Piece.String(),
		Rotation: m.Rotation.Degrees(),
		Col:      m.Col,
		Row:      m.Row,
	}
}

// ParseMoveEvent converts a stored event back into an engine move.
func ParseMoveEvent(ev platformcore.PlacementEvent) (core.Move, error) {
	color, err := core.ParseOccupancy(ev.Color)
	if err != nil {
		return core.Move{}, err
	}
	piece, err := core.ParsePiece(ev.Piece)
	if err != nil {
		return core.Move{}, err
	}
	rot, err := core.ParseRotation(fmt.Sprint(ev.Rotation))
	if err != nil {
		return core.Move{}, err
	}
	return core.Move{Color: color, Piece: piece, Rotation: rot, Col: ev.Col, Row: ev.Row}, nil
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | R: Rotate | [ ]: Piece | C: Color | Enter: Place | ?: Hint | V: Overlay | N: Clear | Q: Quit"
}
