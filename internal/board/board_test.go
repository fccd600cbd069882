package board

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func mustRows(t *testing.T, rows ...string) Board {
	t.Helper()
	b, err := FromRows(rows...)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return b
}

func legalMoves(b *Board, player Cell) []Move {
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsLegal(row, col, player) {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

func TestOpeningPosition(t *testing.T) {
	b := NewBoard()
	if b[3][3] != Black || b[4][4] != Black || b[3][4] != White || b[4][3] != White {
		t.Fatalf("unexpected opening:\n%s", b)
	}
	if s := b.Score(); s.Black != 2 || s.White != 2 || s.Empty() != 60 {
		t.Fatalf("opening score = %+v", s)
	}
}

func TestOpeningLegalMoves(t *testing.T) {
	b := NewBoard()
	want := []Move{{2, 4}, {3, 5}, {4, 2}, {5, 3}}
	if got := legalMoves(&b, Black); !reflect.DeepEqual(got, want) {
		t.Fatalf("black opening moves = %v, want %v", got, want)
	}
	if got := legalMoves(&b, White); len(got) != 4 {
		t.Fatalf("white opening moves = %v, want 4", got)
	}
}

func TestIsLegalRejects(t *testing.T) {
	b := NewBoard()
	tests := []struct {
		name     string
		row, col int
	}{
		{"occupied", 3, 3},
		{"occupied opponent", 3, 4},
		{"no capture", 0, 0},
		{"adjacent own stone only", 2, 3},
		{"row below range", -1, 4},
		{"row above range", 8, 4},
		{"col out of range", 4, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if b.IsLegal(tt.row, tt.col, Black) {
				t.Fatalf("IsLegal(%d,%d) = true", tt.row, tt.col)
			}
		})
	}
}

func TestRunStopsAtEdgeAndGaps(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		rows     []string
	}{
		{"run to the edge", 0, 0, []string{
			".WWWWWWW",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
		}},
		{"gap in the run", 0, 0, []string{
			".W.B....",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
		}},
		{"diagonal to the corner", 7, 0, []string{
			".......W",
			"......W.",
			".....W..",
			"....W...",
			"...W....",
			"..W.....",
			".W......",
			"........",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustRows(t, tt.rows...)
			row, col := tt.row, tt.col
			if b.IsLegal(row, col, Black) {
				t.Fatalf("IsLegal(%d,%d) = true on\n%s", row, col, b)
			}
			if flips := b.Captures(row, col, Black); len(flips) != 0 {
				t.Fatalf("Captures = %v, want none", flips)
			}
		})
	}
}

func TestPlaceFlipsEveryClosedRun(t *testing.T) {
	b := mustRows(t,
		"........",
		"...B....",
		"..WW....",
		"....WB..",
		"....W...",
		".....B..",
		"........",
		"........",
	)
	if !b.IsLegal(3, 3, Black) {
		t.Fatalf("expected (3,3) to be legal")
	}

	flips := b.Place(3, 3, Black)
	want := []Move{{2, 3}, {3, 4}, {4, 4}}
	if !reflect.DeepEqual(flips, want) {
		t.Fatalf("flips = %v, want %v", flips, want)
	}
	for _, f := range want {
		if b[f.Row][f.Col] != Black {
			t.Errorf("(%d,%d) not flipped", f.Row, f.Col)
		}
	}
	if b[2][2] != White {
		t.Errorf("(2,2) is not bracketed and must stay white")
	}
	if b[3][3] != Black {
		t.Errorf("placed stone missing")
	}
}

func TestCapturedStonesLieBetweenBrackets(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 20; game++ {
		b := NewBoard()
		player := Black
		for passes := 0; passes < 2; {
			moves := legalMoves(&b, player)
			if len(moves) == 0 {
				passes++
				player = Opponent(player)
				continue
			}
			passes = 0
			m := moves[rng.Intn(len(moves))]
			before := b
			flips := b.Place(m.Row, m.Col, player)
			if len(flips) == 0 {
				t.Fatalf("legal move %v flipped nothing", m)
			}
			for _, f := range flips {
				if before[f.Row][f.Col] != Opponent(player) {
					t.Fatalf("flipped %v was not an opponent stone", f)
				}
				if !bracketed(&before, m, f, player) {
					t.Fatalf("flipped %v is not bracketed from %v on\n%s", f, m, before)
				}
			}
			if s, empty := b.Score(), countEmpty(&b); s.Black+s.White+empty != Cells {
				t.Fatalf("cell count drifted: %+v with %d empty on\n%s", s, empty, b)
			}
			player = Opponent(player)
		}
	}
}

func countEmpty(b *Board) int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c == Empty {
				n++
			}
		}
	}
	return n
}

// bracketed walks from m past f and expects only opponent stones until a
// stone of player.
func bracketed(b *Board, m, f Move, player Cell) bool {
	dr, dc := sign(f.Row-m.Row), sign(f.Col-m.Col)
	if (f.Row-m.Row)*dc != (f.Col-m.Col)*dr {
		return false
	}
	passed := false
	for r, c := m.Row+dr, m.Col+dc; InBounds(r, c); r, c = r+dr, c+dc {
		if r == f.Row && c == f.Col {
			passed = true
		}
		switch b[r][c] {
		case player:
			return passed
		case Empty:
			return false
		}
	}
	return false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func TestFromRowsRoundTrip(t *testing.T) {
	b := NewBoard()
	rows := []string{
		"........",
		"........",
		"........",
		"...BW...",
		"...WB...",
		"........",
		"........",
		"........",
	}
	parsed := mustRows(t, rows...)
	if parsed != b {
		t.Fatalf("parsed opening differs:\n%s", parsed)
	}
	if b.String() != "........\n........\n........\n...BW...\n...WB...\n........\n........\n........\n" {
		t.Fatalf("unexpected String():\n%s", b.String())
	}
}

func TestFromRowsErrors(t *testing.T) {
	if _, err := FromRows("........"); !errors.Is(err, ErrBadDiagram) {
		t.Fatalf("short diagram err = %v", err)
	}
	rows := []string{"........", "........", "........", "...BZ...", "........", "........", "........", "........"}
	if _, err := FromRows(rows...); !errors.Is(err, ErrBadDiagram) {
		t.Fatalf("bad cell err = %v", err)
	}
}

func TestScoreWinner(t *testing.T) {
	tests := []struct {
		score Score
		want  Cell
	}{
		{Score{Black: 40, White: 24}, Black},
		{Score{Black: 20, White: 30}, White},
		{Score{Black: 32, White: 32}, Empty},
	}
	for _, tt := range tests {
		if got := tt.score.Winner(); got != tt.want {
			t.Errorf("%+v.Winner() = %v, want %v", tt.score, got, tt.want)
		}
	}
}
