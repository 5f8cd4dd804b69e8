package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"minesweeper/engine"
)

// Renderer maps engine state onto tview primitives: a header line with
// the flag counter and clock, a status line, and the board table.
type Renderer struct {
	root       *tview.Grid
	header     *tview.TextView
	status     *tview.TextView
	boardTable *tview.Table
}

func NewRenderer() *Renderer {
	header := tview.NewTextView().SetTextAlign(tview.AlignCenter)
	status := tview.NewTextView().SetTextAlign(tview.AlignCenter)
	boardTable := tview.NewTable()

	root := tview.NewGrid().
		SetRows(1, 1, 0).
		SetColumns(0).
		AddItem(header, 0, 0, 1, 1, 0, 0, false).
		AddItem(status, 1, 0, 1, 1, 0, 0, false).
		AddItem(boardTable, 2, 0, 1, 1, 0, 0, true)

	return &Renderer{
		root:       root,
		header:     header,
		status:     status,
		boardTable: boardTable,
	}
}

func (r *Renderer) Root() tview.Primitive {
	return r.root
}

func (r *Renderer) Board() *tview.Table {
	return r.boardTable
}

// DrawBoard renders every cell. With exposeAll set the board is drawn
// fully uncovered, which the shell uses once the game is decided.
func (r *Renderer) DrawBoard(g *engine.Game, exposeAll bool) {
	cfg := g.Config()
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			r.RenderCell(g, row, col, exposeAll)
		}
	}

	r.boardTable.SetSelectable(true, true)
	r.boardTable.SetFixed(cfg.Rows, cfg.Cols)
}

func (r *Renderer) RenderCell(g *engine.Game, row, col int, exposeAll bool) {
	label := cellLabel(g, row, col, exposeAll)

	cell := tview.NewTableCell(label).SetAlign(tview.AlignCenter)
	switch label {
	case "M":
		cell.SetTextColor(tcell.ColorRed)
	case "F":
		cell.SetTextColor(tcell.ColorYellow)
	}

	r.boardTable.SetCell(row, col, cell)
}

func (r *Renderer) UpdateHeader(g *engine.Game) {
	cfg := g.Config()
	r.header.SetText(fmt.Sprintf("Flags: %d/%d    Time: %ds", g.FlagCount(), cfg.Mines, g.ElapsedSeconds()))
}

func (r *Renderer) SetStatus(text string) {
	r.status.SetText(text)
}

// cellLabel picks the glyph for one cell: hidden cells show a dot, flags
// an F, mines an M, and uncovered cells their mine count with zero drawn
// as a blank.
func cellLabel(g *engine.Game, row, col int, exposeAll bool) string {
	switch {
	case exposeAll || g.IsRevealed(row, col):
		if g.IsMine(row, col) {
			return "M"
		}
		if n := g.Adjacency(row, col); n != 0 {
			return fmt.Sprintf("%d", n)
		}
		return " "
	case g.IsFlagged(row, col):
		return "F"
	default:
		return "."
	}
}
