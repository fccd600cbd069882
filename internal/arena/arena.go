// Package arena plays advisor strategies against each other and summarises
// the results.
package arena

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/havfo/reversi/internal/advisor"
	"github.com/havfo/reversi/internal/board"
)

// Result is one finished game.
type Result struct {
	Score  board.Score
	Winner board.Cell
	Moves  []board.Move
	// Passes counts the turns a player had to give up.
	Passes int
}

// Diff is Black's disc lead.
func (r Result) Diff() int {
	return r.Score.Black - r.Score.White
}

// Arena runs games between a Black and a White strategy.
type Arena struct {
	black, white advisor.Strategy
	rng          *rand.Rand
	// openingPlies random moves are played before the strategies take over
	openingPlies int
}

type Option func(*Arena)

// WithRandomOpening plays n random plies from rng before the strategies
// take over, so deterministic tiers do not repeat the same game.
func WithRandomOpening(n int, rng *rand.Rand) Option {
	return func(a *Arena) {
		a.openingPlies = n
		a.rng = rng
	}
}

func New(black, white advisor.Strategy, opts ...Option) *Arena {
	a := &Arena{black: black, white: white}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.openingPlies = 0
	}

	return a
}

func (a *Arena) strategy(player board.Cell) advisor.Strategy {
	if player == board.Black {
		return a.black
	}

	return a.white
}

// PlayGame plays one game to the end.
func (a *Arena) PlayGame() Result {
	g := board.NewGame()
	g.Initialize()

	var result Result
	for ply := 0; !g.IsTerminal(); ply++ {
		player := g.CurrentPlayer()

		var (
			move board.Move
			ok   bool
		)
		if ply < a.openingPlies {
			moves := advisor.LegalMoves(g, player)
			if len(moves) > 0 {
				move, ok = moves[a.rng.Intn(len(moves))], true
			}
		} else {
			move, ok = a.strategy(player).Choose(g, player)
		}

		if !ok {
			// AdvanceTurn never leaves a stuck player to move; guard anyway
			g.AdvanceTurn()
			result.Passes++
			continue
		}

		g.Place(move.Row, move.Col, player)
		g.AdvanceTurn()
		result.Moves = append(result.Moves, move)
		if !g.IsTerminal() && g.CurrentPlayer() == player {
			result.Passes++
		}
	}

	result.Score = g.Score()
	result.Winner = result.Score.Winner()

	return result
}

// Play runs n games.
func (a *Arena) Play(n int) []Result {
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, a.PlayGame())
	}

	return results
}

// Summary aggregates a series of games from Black's point of view.
type Summary struct {
	Games     int
	BlackWins int
	WhiteWins int
	Draws     int
	// MeanDiff and StdDiff describe Black's disc lead; StdDiff is the sample
	// standard deviation.
	MeanDiff   float64
	StdDiff    float64
	MeanLength float64
	Passes     int
}

// Summarize folds results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}

	diffs := make([]float64, len(results))
	lengths := make([]float64, len(results))
	for i, r := range results {
		switch r.Winner {
		case board.Black:
			s.BlackWins++
		case board.White:
			s.WhiteWins++
		default:
			s.Draws++
		}
		diffs[i] = float64(r.Diff())
		lengths[i] = float64(len(r.Moves))
		s.Passes += r.Passes
	}

	s.MeanDiff, s.StdDiff = stat.MeanStdDev(diffs, nil)
	if len(results) == 1 {
		s.StdDiff = 0
	}
	s.MeanLength = stat.Mean(lengths, nil)

	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("games=%d black=%d white=%d draws=%d diff=%.2f±%.2f length=%.1f passes=%d",
		s.Games, s.BlackWins, s.WhiteWins, s.Draws, s.MeanDiff, s.StdDiff, s.MeanLength, s.Passes)
}
