package board

import "strings"

// Cell is the content of one square. Players are represented by the two
// stone colours, Black and White.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

const (
	Size  = 8
	Cells = Size * Size
)

// Direction is a (row, col) step.
type Direction struct {
	DRow, DCol int
}

// Directions for checking captures
var Directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Opponent returns the opponent of the given player
func Opponent(player Cell) Cell {
	if player == Black {
		return White
	}

	return Black
}

// String returns the player name used in status lines
func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Empty:
		return "Empty"
	}

	return "Unknown"
}

// ParsePlayer accepts "black"/"b"/"1" and "white"/"w"/"2".
func ParsePlayer(s string) (Cell, bool) {
	switch strings.ToLower(s) {
	case "black", "b", "1":
		return Black, true
	case "white", "w", "2":
		return White, true
	}

	return Empty, false
}

// Move is a (row, col) pair, meaningful only against a board and a mover.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
