package tui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/havfo/reversi/internal/advisor"
	"github.com/havfo/reversi/internal/board"
	"github.com/havfo/reversi/internal/session"
)

func TestTitle(t *testing.T) {
	snap := session.Snapshot{Current: board.White}

	tests := []struct {
		spinner, notice, want string
	}{
		{"", "", " Reversi - White's turn "},
		{"/", "", " Reversi - White's turn / "},
		{"", "Black has no move", " Reversi - White's turn (Black has no move) "},
	}
	for _, tt := range tests {
		if got := title(snap, tt.spinner, tt.notice); got != tt.want {
			t.Errorf("title(%q, %q) = %q, want %q", tt.spinner, tt.notice, got, tt.want)
		}
	}
}

func TestPassNotice(t *testing.T) {
	if got := passNotice(session.Outcome{Player: board.Black, Passed: true}); got != "White has no move" {
		t.Errorf("passNotice = %q", got)
	}
	if got := passNotice(session.Outcome{Player: board.Black}); got != "" {
		t.Errorf("passNotice without pass = %q", got)
	}
}

func TestScoreTextListsRecentMoves(t *testing.T) {
	snap := session.Snapshot{
		Score:    board.Score{Black: 10, White: 6},
		Settings: session.DefaultSettings(),
	}
	for i := 0; i < historyLines+2; i++ {
		snap.History = append(snap.History, session.Record{
			Move:     board.Move{Row: i % board.Size, Col: 0},
			Player:   board.Black,
			Flips:    1,
			Computer: i%2 == 1,
		})
	}

	got := scoreText(snap)
	for _, want := range []string{"Black: 10", "White: 6", "Computer: White (normal)", "14. Black a6  +1 cpu"} {
		if !strings.Contains(got, want) {
			t.Errorf("scoreText missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, " 2. ") {
		t.Errorf("scoreText should drop the oldest moves:\n%s", got)
	}

	snap.Settings.Mode = session.HumanVsHuman
	if got := scoreText(snap); !strings.Contains(got, "Human vs Human") {
		t.Errorf("scoreText in pvp:\n%s", got)
	}
}

func TestHintText(t *testing.T) {
	ratings := []advisor.Rating{
		{Move: board.Move{Row: 1, Col: 1}, Flips: 3, PositionValue: -50, Score: -44},
		{Move: board.Move{Row: 7, Col: 2}, Flips: 1, PositionValue: 10, Score: 12},
	}
	if got := hintText(ratings); got != "Hint: c8 (flips 1, square +10)" {
		t.Errorf("hintText = %q", got)
	}
	if got := hintText(nil); got != "" {
		t.Errorf("hintText(nil) = %q", got)
	}
}

func TestGameOverText(t *testing.T) {
	if got := gameOverText(board.Score{Black: 40, White: 24}); !strings.Contains(got, "Black wins!") {
		t.Errorf("gameOverText = %q", got)
	}
	if got := gameOverText(board.Score{Black: 32, White: 32}); !strings.Contains(got, "draw") {
		t.Errorf("gameOverText on a draw = %q", got)
	}
}

func TestSquareName(t *testing.T) {
	if got := squareName(board.Move{Row: 2, Col: 4}); got != "e3" {
		t.Errorf("squareName = %q, want e3", got)
	}
	if got := squareName(board.Move{Row: 7, Col: 0}); got != "a8" {
		t.Errorf("squareName = %q, want a8", got)
	}
}

func TestFormOptions(t *testing.T) {
	if got := difficultyOptions(); !reflect.DeepEqual(got, []string{"Easy", "Normal", "Hard"}) {
		t.Errorf("difficultyOptions = %v", got)
	}
	for _, c := range []board.Cell{board.Black, board.White} {
		if got := colorOption(colorIndex(c)); got != c {
			t.Errorf("colorOption(colorIndex(%v)) = %v", c, got)
		}
	}
}
