package board

import "testing"

func TestNewGameIsNotStarted(t *testing.T) {
	g := NewGame()
	if g.Status() != NotStarted {
		t.Fatalf("status = %v, want not_started", g.Status())
	}
	if g.Cell(3, 3) != Black {
		t.Fatalf("a new game should already show the opening")
	}

	g.Initialize()
	if g.Status() != InProgress || g.CurrentPlayer() != Black || g.IsTerminal() {
		t.Fatalf("after Initialize: status=%v current=%v terminal=%v", g.Status(), g.CurrentPlayer(), g.IsTerminal())
	}
}

func TestFirstMoveFlipsAndPassesTurn(t *testing.T) {
	g := NewGame()
	g.Initialize()

	if !g.IsLegal(2, 4, Black) {
		t.Fatalf("(2,4) should be legal for black")
	}
	flips := g.Place(2, 4, Black)
	g.AdvanceTurn()

	if len(flips) != 1 || flips[0] != (Move{Row: 3, Col: 4}) {
		t.Fatalf("flips = %v, want [(3,4)]", flips)
	}
	if g.Cell(2, 4) != Black || g.Cell(3, 4) != Black {
		t.Fatalf("board after (2,4):\n%s", g.Board())
	}
	if g.CurrentPlayer() != White {
		t.Fatalf("current = %v, want White", g.CurrentPlayer())
	}
	if s := g.Score(); s.Black != 4 || s.White != 1 {
		t.Fatalf("score = %+v, want 4/1", s)
	}
}

func TestAdvanceTurnSkipsPlayerWithoutMoves(t *testing.T) {
	b := mustRows(t,
		"BW......",
		"........",
		"BW......",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	g := NewGame()
	g.LoadPosition(b, Black)

	g.Place(0, 2, Black)
	g.AdvanceTurn()
	if g.IsTerminal() {
		t.Fatalf("a single pass must not end the game")
	}
	if g.CurrentPlayer() != Black {
		t.Fatalf("white has no move, black should move again; current = %v", g.CurrentPlayer())
	}

	g.Place(2, 2, Black)
	g.AdvanceTurn()
	if !g.IsTerminal() || g.Status() != Terminal {
		t.Fatalf("neither side can move, game should be over:\n%s", g.Board())
	}
}

func TestTerminalIsAbsorbing(t *testing.T) {
	b := mustRows(t,
		"BBBBBBBB",
		"BBBBBBBB",
		"BBBBBBBB",
		"BBBBBBBB",
		"WWWWWWWW",
		"WWWWWWWW",
		"WWWWWWWW",
		"WWWWWWWW",
	)
	g := NewGame()
	g.LoadPosition(b, White)
	if !g.IsTerminal() {
		t.Fatalf("full board should be terminal")
	}

	g.AdvanceTurn()
	if !g.IsTerminal() {
		t.Fatalf("AdvanceTurn cleared the terminal flag")
	}

	g.Initialize()
	if g.IsTerminal() || g.Status() != InProgress {
		t.Fatalf("Initialize should clear the terminal flag")
	}
}

func TestLoadPositionPassesStuckPlayer(t *testing.T) {
	b := mustRows(t,
		"BW......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	g := NewGame()
	g.LoadPosition(b, White)
	if g.IsTerminal() || g.CurrentPlayer() != Black {
		t.Fatalf("white is stuck, black should be to move; current=%v terminal=%v", g.CurrentPlayer(), g.IsTerminal())
	}
}

func TestCellOutOfRangeIsEmpty(t *testing.T) {
	g := NewGame()
	for _, m := range []Move{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if c := g.Cell(m.Row, m.Col); c != Empty {
			t.Errorf("Cell(%d,%d) = %v", m.Row, m.Col, c)
		}
	}
}
