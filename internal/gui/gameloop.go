// Package gui is the windowed front-end, drawn with ebiten.
package gui

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/havfo/reversi/internal/board"
	"github.com/havfo/reversi/internal/session"
)

const (
	cellSize = 64
	margin   = 24
	headerH  = 56
	boardPx  = board.Size * cellSize
	screenW  = boardPx + 2*margin
	screenH  = boardPx + 2*margin + headerH
	stoneR   = cellSize/2 - 6
)

var (
	colBackground = color.RGBA{0x1b, 0x1b, 0x1b, 0xff}
	colFelt       = color.RGBA{0x1f, 0x7a, 0x3d, 0xff}
	colGrid       = color.RGBA{0x0d, 0x3b, 0x1d, 0xff}
	colBlack      = color.RGBA{0x10, 0x10, 0x10, 0xff}
	colWhite      = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	colHint       = color.RGBA{0xff, 0xd7, 0x40, 0xc0}
	colText       = color.White
)

// GameLoop implements ebiten.Game on top of a session.
type GameLoop struct {
	session *session.Session
	hints   bool

	// pending is the computer turn in flight, polled every tick
	pending <-chan session.Outcome
	message string
}

func NewGameLoop(s *session.Session, hints bool) *GameLoop {
	return &GameLoop{session: s, hints: hints}
}

func (gl *GameLoop) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		gl.restart()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		gl.hints = !gl.hints
	}

	if gl.pollComputer() {
		return nil
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}
	row, col, ok := cellAt(ebiten.CursorPosition())
	if !ok {
		return nil
	}
	gl.click(row, col)

	return nil
}

// restart starts a new game; a computer turn still in flight is dropped.
func (gl *GameLoop) restart() {
	gl.session.Initialize()
	gl.pending = nil
	gl.message = ""
}

// pollComputer collects a finished computer turn or starts one when the
// computer is to move. It reports whether the computer owns the tick.
func (gl *GameLoop) pollComputer() bool {
	if gl.pending != nil {
		select {
		case out := <-gl.pending:
			gl.pending = nil
			gl.message = outcomeMessage(out)
		default:
			return true
		}
	}

	if gl.session.ComputerToMove() {
		gl.pending = gl.session.PlayComputerTurn()
		return true
	}

	return false
}

func (gl *GameLoop) click(row, col int) {
	out, err := gl.session.AttemptMove(row, col, gl.session.CurrentPlayer())
	switch {
	case err == nil:
		gl.message = outcomeMessage(out)
	case errors.Is(err, session.ErrGameOver):
		gl.message = "game over, press R for a new game"
	default:
		gl.message = err.Error()
	}
}

func (gl *GameLoop) Draw(screen *ebiten.Image) {
	snap := gl.session.Snapshot()

	screen.Fill(colBackground)
	vector.DrawFilledRect(screen, margin, margin, boardPx, boardPx, colFelt, false)
	for i := 0; i <= board.Size; i++ {
		p := float32(margin + i*cellSize)
		vector.StrokeLine(screen, p, margin, p, margin+boardPx, 2, colGrid, false)
		vector.StrokeLine(screen, margin, p, margin+boardPx, p, 2, colGrid, false)
	}

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			cx, cy := cellCenter(row, col)
			switch snap.Board[row][col] {
			case board.Black:
				vector.DrawFilledCircle(screen, cx, cy, stoneR, colBlack, true)
			case board.White:
				vector.DrawFilledCircle(screen, cx, cy, stoneR, colWhite, true)
			}
		}
	}

	if gl.hints && !snap.Thinking && !snap.Settings.IsComputer(snap.Current) {
		for _, m := range snap.LegalMoves {
			cx, cy := cellCenter(m.Row, m.Col)
			vector.DrawFilledCircle(screen, cx, cy, 6, colHint, true)
		}
	}

	y := margin + boardPx + 24
	text.Draw(screen, statusLine(snap), basicfont.Face7x13, margin, y, colText)
	footer := "R new game | H hints | Esc quit"
	if gl.message != "" {
		footer = gl.message
	}
	text.Draw(screen, footer, basicfont.Face7x13, margin, y+20, colText)
}

func (gl *GameLoop) Layout(_, _ int) (int, int) { return screenW, screenH }

// Run opens the window and blocks until it is closed.
func Run(gl *GameLoop, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(screenW*scale), int(screenH*scale))
	ebiten.SetWindowTitle("Reversi")

	if err := ebiten.RunGame(gl); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	return nil
}

// cellAt maps a screen position to a board square.
func cellAt(x, y int) (row, col int, ok bool) {
	x -= margin
	y -= margin
	if x < 0 || y < 0 || x >= boardPx || y >= boardPx {
		return 0, 0, false
	}

	return y / cellSize, x / cellSize, true
}

func cellCenter(row, col int) (float32, float32) {
	return float32(margin + col*cellSize + cellSize/2), float32(margin + row*cellSize + cellSize/2)
}

func statusLine(snap session.Snapshot) string {
	score := fmt.Sprintf("Black %d  White %d", snap.Score.Black, snap.Score.White)

	switch snap.Status {
	case board.NotStarted:
		return "Press R to start | " + score
	case board.Terminal:
		if w := snap.Score.Winner(); w != board.Empty {
			return fmt.Sprintf("Game over, %s wins | %s", w, score)
		}
		return "Game over, draw | " + score
	}

	turn := fmt.Sprintf("%s to move", snap.Current)
	if snap.Thinking {
		turn = fmt.Sprintf("%s (computer, %s) thinking...", snap.Current, snap.Settings.Difficulty)
	}

	return turn + " | " + score
}

func outcomeMessage(out session.Outcome) string {
	switch {
	case out.Skipped:
		return ""
	case out.NoMove:
		return fmt.Sprintf("%s has no move", out.Player)
	case out.Passed:
		return fmt.Sprintf("%s has no move, %s plays again", board.Opponent(out.Player), out.Player)
	}

	return ""
}
