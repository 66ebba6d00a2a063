package blokus

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

const (
	cellW     = 2 // terminal columns per board cell
	boardTop  = 1
	boardLeft = 0
	sidebarW  = 32

	boardBoxW = core.Dim*cellW + 2
	boardBoxH = core.Dim + 2

	minScreenW = boardBoxW + 1 + sidebarW
	minScreenH = boardTop + boardBoxH
)

// PaletteColor maps a board color to its screen color.
func PaletteColor(o core.Occupancy) platformcore.Color {
	switch o {
	case core.Green:
		return platformcore.ColorGreen
	case core.Red:
		return platformcore.ColorRed
	case core.Blue:
		return platformcore.ColorBlue
	case core.Yellow:
		return platformcore.ColorYellow
	default:
		return platformcore.ColorDarkGray
	}
}

func brightColor(o core.Occupancy) platformcore.Color {
	switch o {
	case core.Green:
		return platformcore.ColorBrightGreen
	case core.Red:
		return platformcore.ColorBrightRed
	case core.Blue:
		return platformcore.ColorBrightBlue
	case core.Yellow:
		return platformcore.ColorBrightYellow
	default:
		return platformcore.ColorWhite
	}
}

// Render draws the board, the ghost piece and the sidebar.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	title := fmt.Sprintf("%s  [%s start]", g.variant.Title, g.rule)
	dst.DrawTextColored(boardLeft+1, 0, title, platformcore.ColorWhite)

	g.renderBoard(dst)
	g.renderSidebar(dst, boardLeft+boardBoxW+1)

	if g.screenH > boardTop+boardBoxH {
		dst.DrawTextColored(0, boardTop+boardBoxH, g.Controls(), platformcore.ColorGray)
	}
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH))
}

// cellOrigin returns the screen position of a board cell's first column.
func cellOrigin(x, y int) (int, int) {
	return boardLeft + 1 + x*cellW, boardTop + 1 + y
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	dst.DrawBox(platformcore.NewRect(boardLeft, boardTop, boardBoxW, boardBoxH), brightColor(g.color))

	var validity core.Grid[core.Validity]
	if g.overlay {
		validity = g.board.ValidityMap(g.color)
	}

	for y := 0; y < core.Dim; y++ {
		for x := 0; x < core.Dim; x++ {
			occ, _ := g.board.At(x, y)
			var c platformcore.Cell
			switch {
			case occ != core.Empty:
				c = platformcore.Cell{Rune: '█', Fg: PaletteColor(occ)}
			case g.overlay && validity.Get(x, y) == core.Anchor:
				c = platformcore.Cell{Rune: '+', Fg: brightColor(g.color)}
			case g.overlay && validity.Get(x, y) == core.Invalid:
				c = platformcore.Cell{Rune: '·', Fg: platformcore.ColorDarkGray}
			default:
				c = platformcore.Cell{Rune: '·', Fg: platformcore.ColorGray}
			}
			g.drawCell(dst, x, y, c)
		}
	}

	cells, legal := g.GhostCells()
	ghost := platformcore.Cell{Rune: '▒', Fg: brightColor(g.color), Bold: true}
	if !legal {
		ghost = platformcore.Cell{Rune: '╳', Fg: platformcore.ColorMagenta}
	}
	for _, c := range cells {
		if core.InBounds(c.X, c.Y) {
			g.drawCell(dst, c.X, c.Y, ghost)
		}
	}

	// Cursor marks the pivot even when the piece is off the board.
	sx, sy := cellOrigin(g.cursor.X, g.cursor.Y)
	dst.SetCell(sx, sy, platformcore.Cell{Rune: '[', Fg: platformcore.ColorWhite, Bold: true})
	dst.SetCell(sx+1, sy, platformcore.Cell{Rune: ']', Fg: platformcore.ColorWhite, Bold: true})
}

func (g *Game) drawCell(dst *platformcore.Screen, x, y int, c platformcore.Cell) {
	sx, sy := cellOrigin(x, y)
	dst.SetCell(sx, sy, c)
	if c.Rune == '·' || c.Rune == '+' {
		c.Rune = ' '
	}
	dst.SetCell(sx+1, sy, c)
}

func (g *Game) renderSidebar(dst *platformcore.Screen, left int) {
	y := boardTop
	line := func(text string, fg platformcore.Color) {
		dst.DrawTextColored(left, y, text, fg)
		y++
	}

	line("Color: "+g.color.String(), brightColor(g.color))
	line(fmt.Sprintf("Piece: %s (%d)", g.piece, g.piece.Size()), platformcore.ColorWhite)
	line("Rotation: "+g.rot.String(), platformcore.ColorWhite)
	line(fmt.Sprintf("Cursor: %d,%d", g.cursor.X, g.cursor.Y), platformcore.ColorGray)
	y++

	// Piece preview
	mask := g.board.Catalog().Mask(g.piece, g.rot)
	fg := brightColor(g.color)
	if !g.inventory().Has(g.piece) {
		fg = platformcore.ColorDarkGray
	}
	for _, row := range mask {
		for i, mc := range row {
			switch mc {
			case core.MaskSolid:
				dst.SetCell(left+i*cellW, y, platformcore.Cell{Rune: '█', Fg: fg})
				dst.SetCell(left+i*cellW+1, y, platformcore.Cell{Rune: '█', Fg: fg})
			case core.MaskPivot:
				dst.SetCell(left+i*cellW, y, platformcore.Cell{Rune: '▓', Fg: fg, Bold: true})
				dst.SetCell(left+i*cellW+1, y, platformcore.Cell{Rune: '▓', Fg: fg, Bold: true})
			}
		}
		y++
	}
	y = max(y, boardTop+11)

	line("Pieces left:", platformcore.ColorWhite)
	for _, c := range core.Colors() {
		inv := g.inventories[c]
		marker := "  "
		if c == g.color {
			marker = "> "
		}
		line(fmt.Sprintf("%s%-6s %2d pieces %2d cells", marker, c, inv.Len(), inv.Cells()), PaletteColor(c))
	}
	line(fmt.Sprintf("Placed: %d", len(g.history)), platformcore.ColorGray)
	y++

	switch {
	case g.finished:
		line("No color can move", platformcore.ColorBrightRed)
	case g.stuck:
		line(g.color.String()+" cannot move", platformcore.ColorBrightYellow)
	}
	if g.message != "" {
		line(g.message, platformcore.ColorCyan)
	}
}

// BoardScreen draws a bare board, no cursor or sidebar, into a fresh screen
// sized to fit it. Used for replays and history previews.
func BoardScreen(b *core.Board) *platformcore.Screen {
	dst := platformcore.NewScreen(boardBoxW, boardBoxH)
	dst.DrawBox(platformcore.NewRect(0, 0, boardBoxW, boardBoxH), platformcore.ColorGray)
	for y := 0; y < core.Dim; y++ {
		for x := 0; x < core.Dim; x++ {
			c := platformcore.Cell{Rune: '·', Fg: platformcore.ColorDarkGray}
			if occ, _ := b.At(x, y); occ != core.Empty {
				c = platformcore.Cell{Rune: '█', Fg: PaletteColor(occ)}
			}
			sx, sy := 1+x*cellW, 1+y
			dst.SetCell(sx, sy, c)
			if c.Rune == '·' {
				c.Rune = ' '
			}
			dst.SetCell(sx+1, sy, c)
		}
	}
	return dst
}
