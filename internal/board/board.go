package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadDiagram is returned by FromRows for malformed diagrams.
var ErrBadDiagram = errors.New("board: bad diagram")

// Board is the 8x8 grid, indexed [row][col].
type Board [Size][Size]Cell

// NewBoard initializes the board with starting positions
// Black holds (3,3) and (4,4), the colours swapped from the usual diagram so
// that Black's four openings are (2,4), (3,5), (4,2) and (5,3).
func NewBoard() Board {
	var b Board
	mid := Size / 2
	b[mid-1][mid-1], b[mid][mid] = Black, Black
	b[mid-1][mid], b[mid][mid-1] = White, White

	return b
}

// Cell returns the content of (row, col), Empty when off the board.
func (b *Board) Cell(row, col int) Cell {
	if !InBounds(row, col) {
		return Empty
	}

	return b[row][col]
}

// run returns the length of the opponent run that player would capture from
// (row, col) along d, or 0 when that direction does not capture. The run must
// be contiguous opponent stones closed by one of player's stones; an empty
// cell or the board edge before that stone voids the direction.
func (b *Board) run(row, col int, d Direction, player Cell) int {
	opponent := Opponent(player)
	n := 0
	r, c := row+d.DRow, col+d.DCol

	for InBounds(r, c) {
		switch b[r][c] {
		case Empty:
			return 0
		case opponent:
			n++
		case player:
			return n
		}
		r += d.DRow
		c += d.DCol
	}

	return 0
}

// IsLegal reports whether player may place a stone on (row, col).
func (b *Board) IsLegal(row, col int, player Cell) bool {
	if !InBounds(row, col) || b[row][col] != Empty {
		return false
	}

	for _, d := range Directions {
		if b.run(row, col, d, player) > 0 {
			return true
		}
	}

	return false
}

// Captures returns the stones that would be flipped if player moved to
// (row, col), direction by direction. It does not check that the target is
// empty and never mutates the board.
func (b *Board) Captures(row, col int, player Cell) []Move {
	if !InBounds(row, col) {
		return nil
	}

	var flips []Move
	for _, d := range Directions {
		n := b.run(row, col, d, player)
		for i := 1; i <= n; i++ {
			flips = append(flips, Move{Row: row + i*d.DRow, Col: col + i*d.DCol})
		}
	}

	return flips
}

// Place puts player's stone on (row, col) and flips every captured run. The
// move is not re-validated: callers must check IsLegal first.
func (b *Board) Place(row, col int, player Cell) []Move {
	flips := b.Captures(row, col, player)
	b[row][col] = player

	for _, f := range flips {
		b[f.Row][f.Col] = player
	}

	return flips
}

// HasAnyLegalMove scans the whole grid for a legal move for player.
func (b *Board) HasAnyLegalMove(player Cell) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsLegal(row, col, player) {
				return true
			}
		}
	}

	return false
}

// Score counts the stones of each colour.
func (b *Board) Score() Score {
	var s Score
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch b[row][col] {
			case Black:
				s.Black++
			case White:
				s.White++
			}
		}
	}

	return s
}

// String renders the board as eight lines of '.', 'B' and 'W'.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch b[row][col] {
			case Black:
				sb.WriteByte('B')
			case White:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// FromRows parses a diagram of eight rows of eight cells. '.' or '-' is
// empty, 'B' or 'X' black, 'W' or 'O' white; spaces are ignored.
func FromRows(rows ...string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: want %d rows, got %d", ErrBadDiagram, Size, len(rows))
	}

	for row, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != Size {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrBadDiagram, row, len(line))
		}
		for col, ch := range line {
			switch ch {
			case '.', '-':
				b[row][col] = Empty
			case 'B', 'b', 'X', 'x':
				b[row][col] = Black
			case 'W', 'w', 'O', 'o':
				b[row][col] = White
			default:
				return b, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrBadDiagram, ch, row, col)
			}
		}
	}

	return b, nil
}

// Score is the stone count of both colours.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Empty returns the number of empty cells.
func (s Score) Empty() int {
	return Cells - s.Black - s.White
}

// Winner returns the colour with more stones, or Empty on a draw.
func (s Score) Winner() Cell {
	if s.Black > s.White {
		return Black
	} else if s.White > s.Black {
		return White
	}

	return Empty
}
