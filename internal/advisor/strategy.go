package advisor

import (
	"math/rand"
	"time"

	"github.com/havfo/reversi/internal/board"
)

// Strategy picks one move for player. ok is false when player has no legal
// move, which is a normal outcome rather than an error.
type Strategy interface {
	Choose(v board.View, player board.Cell) (move board.Move, ok bool)
}

// EasyStrategy picks uniformly among the legal moves.
type EasyStrategy struct {
	rng *rand.Rand
}

// NewEasy returns the Easy tier drawing from rng; a nil rng is seeded from
// the clock.
func NewEasy(rng *rand.Rand) *EasyStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &EasyStrategy{rng: rng}
}

func (s *EasyStrategy) Choose(v board.View, player board.Cell) (board.Move, bool) {
	moves := LegalMoves(v, player)
	if len(moves) == 0 {
		return board.Move{}, false
	}

	return moves[s.rng.Intn(len(moves))], true
}

// NormalStrategy takes the first corner it finds in scan order, otherwise
// the move that flips the most stones.
type NormalStrategy struct{}

func (NormalStrategy) Choose(v board.View, player board.Cell) (board.Move, bool) {
	moves := LegalMoves(v, player)
	if len(moves) == 0 {
		return board.Move{}, false
	}

	for _, m := range moves {
		if PositionValue(m.Row, m.Col) >= cornerValue {
			return m, true
		}
	}

	best := moves[0]
	bestFlips := FlipCount(v, best.Row, best.Col, player)

	for _, m := range moves[1:] {
		// strict: the earlier move keeps a tie
		if flips := FlipCount(v, m.Row, m.Col, player); flips > bestFlips {
			best, bestFlips = m, flips
		}
	}

	return best, true
}

// HardStrategy maximises PositionValue + 2*FlipCount, earliest move on ties.
type HardStrategy struct{}

func (HardStrategy) Choose(v board.View, player board.Cell) (board.Move, bool) {
	ratings := Ranked(v, player)
	if len(ratings) == 0 {
		return board.Move{}, false
	}

	best := ratings[0]
	for _, r := range ratings[1:] {
		if r.Score > best.Score {
			best = r
		}
	}

	return best.Move, true
}

// Advisor holds the selected difficulty and the strategy for each tier. It
// is not safe for concurrent use; the owning session serialises calls.
type Advisor struct {
	difficulty Difficulty
	strategies map[Difficulty]Strategy
}

// New returns an advisor at difficulty d. rng feeds the Easy tier and may be
// nil.
func New(d Difficulty, rng *rand.Rand) *Advisor {
	return &Advisor{
		difficulty: d,
		strategies: map[Difficulty]Strategy{
			Easy:   NewEasy(rng),
			Normal: NormalStrategy{},
			Hard:   HardStrategy{},
		},
	}
}

// For returns the strategy of tier d, falling back to Normal.
func For(d Difficulty, rng *rand.Rand) Strategy {
	return New(d, rng).Strategy()
}

func (a *Advisor) Difficulty() Difficulty {
	return a.difficulty
}

func (a *Advisor) SetDifficulty(d Difficulty) {
	a.difficulty = d
}

// Strategy returns the strategy of the current tier.
func (a *Advisor) Strategy() Strategy {
	if s, ok := a.strategies[a.difficulty]; ok {
		return s
	}

	return a.strategies[Normal]
}

// Choose picks a move for player at the current difficulty.
func (a *Advisor) Choose(v board.View, player board.Cell) (board.Move, bool) {
	return a.Strategy().Choose(v, player)
}
