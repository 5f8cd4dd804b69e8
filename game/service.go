package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"minesweeper/engine"
)

var log = logrus.New()

// The original desktop version refreshed its clock four times a second;
// the terminal shell keeps the same cadence.
const timerInterval = 250 * time.Millisecond

const helpText = "Enter reveals, f flags, n starts a new game, q quits."

// MinesweeperService drives one play session: it owns the current engine
// instance, forwards key events to it, and re-renders the board from the
// engine's state after every command. The engine itself is synchronous
// and unlocked, so the service serializes access between the input
// handler and the timer goroutine.
type MinesweeperService struct {
	mu       sync.Mutex
	game     *engine.Game
	renderer *Renderer
	app      *tview.Application
	cfg      engine.GameConfig
}

func NewMinesweeperService() *MinesweeperService {
	return &MinesweeperService{renderer: NewRenderer()}
}

// Run starts a session with the given configuration and blocks until the
// player quits. Pressing n starts a fresh game with the same
// configuration; the old engine instance is simply discarded.
func (s *MinesweeperService) Run(cfg engine.GameConfig) error {
	g, err := engine.New(cfg)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.game = g
	s.app = tview.NewApplication()

	s.renderer.DrawBoard(g, false)
	s.renderer.UpdateHeader(g)
	s.renderer.SetStatus(helpText)

	s.handleInput()
	s.app.SetRoot(s.renderer.Root(), true)

	done := make(chan struct{})
	go s.pollTimer(done)

	log.WithFields(logrus.Fields{
		"rows":  cfg.Rows,
		"cols":  cfg.Cols,
		"mines": cfg.Mines,
	}).Info("starting game")

	err = s.app.Run()
	close(done)
	return err
}

// pollTimer refreshes the header clock. It stops updating once it sees a
// finished game, which freezes the displayed time at the final value,
// and picks the clock back up when a new game replaces the engine.
func (s *MinesweeperService) pollTimer(done chan struct{}) {
	ticker := time.NewTicker(timerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		over := s.game.GameOver()
		s.mu.Unlock()
		if over {
			continue
		}

		s.app.QueueUpdateDraw(func() {
			s.mu.Lock()
			s.renderer.UpdateHeader(s.game)
			s.mu.Unlock()
		})
	}
}

func (s *MinesweeperService) handleInput() {
	board := s.renderer.Board()
	board.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		row, col := board.GetSelection()

		switch event.Key() {
		case tcell.KeyEnter:
			s.revealCell(row, col)
			return nil
		case tcell.KeyEscape:
			s.app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case ' ':
				s.revealCell(row, col)
				return nil
			case 'f', 'F':
				s.flagCell(row, col)
				return nil
			case 'n', 'N':
				s.newGame()
				return nil
			case 'q', 'Q':
				s.app.Stop()
				return nil
			}
		}
		return event
	})
}

func (s *MinesweeperService) revealCell(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.GameOver() {
		return
	}
	s.game.Reveal(row, col)
	if s.game.GameOver() {
		s.finishGame()
		return
	}
	s.renderer.DrawBoard(s.game, false)
	s.renderer.UpdateHeader(s.game)
}

func (s *MinesweeperService) flagCell(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.GameOver() {
		return
	}
	s.game.ToggleFlag(row, col)
	s.renderer.DrawBoard(s.game, false)
	s.renderer.UpdateHeader(s.game)
}

// finishGame uncovers the whole board, mines included, and posts the end
// message. Mine locations are only ever rendered here, after the game is
// decided. Callers must hold s.mu.
func (s *MinesweeperService) finishGame() {
	s.renderer.DrawBoard(s.game, true)
	s.renderer.UpdateHeader(s.game)

	var msg string
	if s.game.Won() {
		msg = fmt.Sprintf("You won in %ds! Press n for a new game or q to quit.", s.game.ElapsedSeconds())
	} else {
		msg = "Boom! You hit a mine. Press n for a new game or q to quit."
	}
	s.renderer.SetStatus(msg)

	log.WithFields(logrus.Fields{
		"won":     s.game.Won(),
		"seconds": s.game.ElapsedSeconds(),
	}).Debug("game finished")
}

func (s *MinesweeperService) newGame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := engine.New(s.cfg)
	if err != nil {
		// The configuration was validated when the session started.
		log.WithError(err).Error("could not restart the game")
		return
	}
	s.game = g
	s.renderer.DrawBoard(g, false)
	s.renderer.UpdateHeader(g)
	s.renderer.SetStatus(helpText)
}
