package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Coord identifies a single board cell. It is a value type so it can be
// used directly as a set element and compared with ==.
type Coord struct {
	Row int
	Col int
}

// GameConfig describes the board shape and mine count for one game.
type GameConfig struct {
	Rows  int
	Cols  int
	Mines int
}

// InvalidConfigError is returned by New when the requested configuration
// cannot produce a playable board.
type InvalidConfigError struct {
	Config GameConfig
}

func (e *InvalidConfigError) Error() string {
	cfg := e.Config
	switch {
	case cfg.Rows <= 0:
		return fmt.Sprintf("cannot create a board with %d rows", cfg.Rows)
	case cfg.Cols <= 0:
		return fmt.Sprintf("cannot create a board with %d columns", cfg.Cols)
	case cfg.Mines < 0:
		return fmt.Sprintf("cannot create a board with %d mines", cfg.Mines)
	default:
		return fmt.Sprintf("not enough room for %d mines on a %dx%d board", cfg.Mines, cfg.Rows, cfg.Cols)
	}
}

// Game is the board engine for a single Minesweeper session. It owns all
// game state; callers drive it through Reveal and ToggleFlag and read it
// back through the query methods. Mines are not placed until the first
// reveal, which guarantees the first revealed cell is never a mine.
//
// All operations are synchronous and run to completion; a Game is meant
// to be driven from a single goroutine.
type Game struct {
	cfg GameConfig
	rng *rand.Rand

	mines    mapset.Set[Coord]
	revealed mapset.Set[Coord]
	flags    mapset.Set[Coord]
	adj      [][]int

	minesPlaced bool
	gameOver    bool
	won         bool
	startTime   time.Time
}

// New creates a game with non-deterministic mine placement.
func New(cfg GameConfig) (*Game, error) {
	return NewWithSeed(cfg, time.Now().UnixNano())
}

// NewWithSeed creates a game whose mine placement is fully determined by
// seed, so a given seed and first click always produce the same board.
func NewWithSeed(cfg GameConfig, seed int64) (*Game, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 || cfg.Mines < 0 || cfg.Mines >= cfg.Rows*cfg.Cols {
		return nil, &InvalidConfigError{Config: cfg}
	}

	adj := make([][]int, cfg.Rows)
	for r := range adj {
		adj[r] = make([]int, cfg.Cols)
	}

	return &Game{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		mines:     mapset.New[Coord](),
		revealed:  mapset.New[Coord](),
		flags:     mapset.New[Coord](),
		adj:       adj,
		startTime: time.Now(),
	}, nil
}

// Config returns the configuration the game was created with.
func (g *Game) Config() GameConfig {
	return g.cfg
}

func (g *Game) inBounds(r, c int) bool {
	return r >= 0 && r < g.cfg.Rows && c >= 0 && c < g.cfg.Cols
}

// Neighbors returns the in-bounds cells adjacent to (r, c), including
// diagonals. The order is a row-major scan of the 3x3 neighborhood with
// the center excluded, so traversals over it are reproducible.
func (g *Game) Neighbors(r, c int) []Coord {
	out := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if g.inBounds(nr, nc) {
				out = append(out, Coord{nr, nc})
			}
		}
	}
	return out
}

// placeMines picks the mine cells, keeping the safe cell and its whole
// neighborhood clear. On boards too small for that exclusion the safe
// zone shrinks to the clicked cell alone, which is always satisfiable
// because Mines < Rows*Cols.
func (g *Game) placeMines(safe Coord) {
	forbidden := mapset.New[Coord]()
	forbidden.Put(safe)
	for _, nb := range g.Neighbors(safe.Row, safe.Col) {
		forbidden.Put(nb)
	}

	candidates := make([]Coord, 0, g.cfg.Rows*g.cfg.Cols)
	for r := 0; r < g.cfg.Rows; r++ {
		for c := 0; c < g.cfg.Cols; c++ {
			if !forbidden.Has(Coord{r, c}) {
				candidates = append(candidates, Coord{r, c})
			}
		}
	}

	if len(candidates) < g.cfg.Mines {
		candidates = candidates[:0]
		for r := 0; r < g.cfg.Rows; r++ {
			for c := 0; c < g.cfg.Cols; c++ {
				if (Coord{r, c}) != safe {
					candidates = append(candidates, Coord{r, c})
				}
			}
		}
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, cell := range candidates[:g.cfg.Mines] {
		g.mines.Put(cell)
	}

	g.recomputeAdjacency()
	g.minesPlaced = true
}

// recomputeAdjacency rebuilds the full adjacency grid from the mine set.
func (g *Game) recomputeAdjacency() {
	for r := range g.adj {
		for c := range g.adj[r] {
			g.adj[r][c] = 0
		}
	}
	g.mines.Each(func(cell Coord) {
		for _, nb := range g.Neighbors(cell.Row, cell.Col) {
			g.adj[nb.Row][nb.Col]++
		}
	})
}

// ToggleFlag flags an unrevealed cell or removes an existing flag. It does
// nothing once the game is over, for out-of-bounds coordinates, and for
// cells that are already revealed.
func (g *Game) ToggleFlag(r, c int) {
	if g.gameOver || !g.inBounds(r, c) {
		return
	}
	cell := Coord{r, c}
	if g.revealed.Has(cell) {
		return
	}
	if g.flags.Has(cell) {
		g.flags.Remove(cell)
	} else {
		g.flags.Put(cell)
	}
}

// Reveal uncovers the cell at (r, c). The first reveal of a game places
// the mines with (r, c) as the safe cell. Revealing a mine ends the game
// as a loss; otherwise connected zero-adjacency regions are opened and
// the game is won once every non-mine cell is revealed. Calls on
// finished games, out-of-bounds, flagged or already revealed cells do
// nothing.
func (g *Game) Reveal(r, c int) {
	if g.gameOver || !g.inBounds(r, c) {
		return
	}
	cell := Coord{r, c}
	if g.flags.Has(cell) || g.revealed.Has(cell) {
		return
	}

	if !g.minesPlaced {
		g.placeMines(cell)
	}

	if g.mines.Has(cell) {
		g.revealed.Put(cell)
		g.gameOver = true
		g.won = false
		return
	}

	g.floodReveal(cell)
	g.checkWin()
}

// floodReveal opens start and every cell reachable from it through
// zero-adjacency cells, plus the numbered cells on the region's border.
// An explicit stack keeps the traversal off the call stack regardless of
// board size.
func (g *Game) floodReveal(start Coord) {
	stack := []Coord{start}
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if g.revealed.Has(cell) || g.flags.Has(cell) {
			continue
		}
		g.revealed.Put(cell)
		if g.adj[cell.Row][cell.Col] != 0 {
			continue
		}
		for _, nb := range g.Neighbors(cell.Row, cell.Col) {
			if !g.revealed.Has(nb) && !g.flags.Has(nb) && !g.mines.Has(nb) {
				stack = append(stack, nb)
			}
		}
	}
}

func (g *Game) checkWin() {
	if g.revealed.Size() == g.cfg.Rows*g.cfg.Cols-g.cfg.Mines {
		g.gameOver = true
		g.won = true
	}
}

// IsRevealed reports whether the cell at (r, c) has been uncovered.
func (g *Game) IsRevealed(r, c int) bool {
	return g.inBounds(r, c) && g.revealed.Has(Coord{r, c})
}

// IsFlagged reports whether the cell at (r, c) carries a flag.
func (g *Game) IsFlagged(r, c int) bool {
	return g.inBounds(r, c) && g.flags.Has(Coord{r, c})
}

// IsMine reports whether the cell at (r, c) contains a mine. Before the
// first reveal no mines exist yet and this is false everywhere.
func (g *Game) IsMine(r, c int) bool {
	return g.inBounds(r, c) && g.mines.Has(Coord{r, c})
}

// Adjacency returns the number of mines neighboring (r, c). It is zero
// everywhere until mines have been placed.
func (g *Game) Adjacency(r, c int) int {
	if !g.inBounds(r, c) {
		return 0
	}
	return g.adj[r][c]
}

// MinesPlaced reports whether the first reveal has happened and the mine
// layout is fixed.
func (g *Game) MinesPlaced() bool {
	return g.minesPlaced
}

// GameOver reports whether the game has reached a terminal state.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Won reports whether the game ended with every safe cell revealed. It is
// only meaningful once GameOver is true.
func (g *Game) Won() bool {
	return g.won
}

// FlagCount returns the number of currently flagged cells.
func (g *Game) FlagCount() int {
	return g.flags.Size()
}

// RevealedCount returns the number of uncovered cells.
func (g *Game) RevealedCount() int {
	return g.revealed.Size()
}

// ElapsedSeconds returns whole seconds since the game was created.
func (g *Game) ElapsedSeconds() int {
	return int(time.Since(g.startTime).Seconds())
}
