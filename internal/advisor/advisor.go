// Package advisor picks moves for the computer player. Every function here is
// a read-only computation over a board.View; nothing mutates the game.
package advisor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/havfo/reversi/internal/board"
)

// ErrUnknownDifficulty is returned by ParseDifficulty.
var ErrUnknownDifficulty = errors.New("advisor: unknown difficulty")

// PositionValues weights each square for move scoring.
var PositionValues = [board.Size][board.Size]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, 0, 0, 0, 0, -50, -20},
	{10, 0, 1, 1, 1, 1, 0, 10},
	{5, 0, 1, 1, 1, 1, 0, 5},
	{5, 0, 1, 1, 1, 1, 0, 5},
	{10, 0, 1, 1, 1, 1, 0, 10},
	{-20, -50, 0, 0, 0, 0, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// cornerValue is the lowest position value Normal treats as a corner.
const cornerValue = 100

// LegalMoves returns the legal moves for player in row-major order.
func LegalMoves(v board.View, player board.Cell) []board.Move {
	moves := []board.Move{}
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if v.IsLegal(row, col, player) {
				moves = append(moves, board.Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// FlipCount returns how many stones the move would capture.
func FlipCount(v board.View, row, col int, player board.Cell) int {
	return len(v.Captures(row, col, player))
}

// PositionValue looks up the static weight of a square; off-board squares
// are worth 0.
func PositionValue(row, col int) int {
	if !board.InBounds(row, col) {
		return 0
	}

	return PositionValues[row][col]
}

// Difficulty selects the move strategy of the computer.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Difficulties lists the tiers from weakest to strongest.
var Difficulties = []Difficulty{Easy, Normal, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	}

	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps "easy", "normal" (or "medium") and "hard" to a tier.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal", "medium":
		return Normal, nil
	case "hard":
		return Hard, nil
	}

	return Normal, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	switch d {
	case Easy, Normal, Hard:
		return []byte(d.String()), nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}

// Rating is a legal move with the numbers the tiers score it by.
type Rating struct {
	Move          board.Move `json:"move"`
	Flips         int        `json:"flips"`
	PositionValue int        `json:"position_value"`
	Score         int        `json:"score"`
}

// Ranked rates every legal move for player, in scan order. Score is the Hard
// tier's PositionValue + 2*Flips.
func Ranked(v board.View, player board.Cell) []Rating {
	moves := LegalMoves(v, player)
	ratings := make([]Rating, 0, len(moves))

	for _, m := range moves {
		flips := FlipCount(v, m.Row, m.Col, player)
		value := PositionValue(m.Row, m.Col)
		ratings = append(ratings, Rating{
			Move:          m,
			Flips:         flips,
			PositionValue: value,
			Score:         hardScore(value, flips),
		})
	}

	return ratings
}

func hardScore(value, flips int) int {
	return value + 2*flips
}
