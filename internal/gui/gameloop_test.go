package gui

import (
	"strings"
	"testing"
	"time"

	"github.com/havfo/reversi/internal/board"
	"github.com/havfo/reversi/internal/session"
)

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y     int
		row, col int
		ok       bool
	}{
		{margin, margin, 0, 0, true},
		{margin + cellSize - 1, margin, 0, 0, true},
		{margin + cellSize, margin, 0, 1, true},
		{margin + 4*cellSize + 5, margin + 2*cellSize + 5, 2, 4, true},
		{margin + boardPx - 1, margin + boardPx - 1, 7, 7, true},
		{margin - 1, margin, 0, 0, false},
		{margin + boardPx, margin, 0, 0, false},
		{margin, screenH - 1, 0, 0, false},
	}
	for _, tt := range tests {
		row, col, ok := cellAt(tt.x, tt.y)
		if ok != tt.ok || (ok && (row != tt.row || col != tt.col)) {
			t.Errorf("cellAt(%d,%d) = %d,%d,%v want %d,%d,%v", tt.x, tt.y, row, col, ok, tt.row, tt.col, tt.ok)
		}
	}
}

func TestCellCenterRoundTrips(t *testing.T) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			cx, cy := cellCenter(row, col)
			r, c, ok := cellAt(int(cx), int(cy))
			if !ok || r != row || c != col {
				t.Fatalf("cellAt(cellCenter(%d,%d)) = %d,%d,%v", row, col, r, c, ok)
			}
		}
	}
}

func TestStatusLine(t *testing.T) {
	snap := session.Snapshot{
		Status:   board.InProgress,
		Current:  board.White,
		Score:    board.Score{Black: 4, White: 1},
		Settings: session.DefaultSettings(),
	}
	if got := statusLine(snap); got != "White to move | Black 4  White 1" {
		t.Errorf("statusLine = %q", got)
	}

	snap.Thinking = true
	if got := statusLine(snap); !strings.Contains(got, "thinking") {
		t.Errorf("statusLine while thinking = %q", got)
	}

	snap.Status = board.Terminal
	snap.Score = board.Score{Black: 20, White: 44}
	if got := statusLine(snap); !strings.HasPrefix(got, "Game over, White wins") {
		t.Errorf("statusLine at the end = %q", got)
	}
}

func TestOutcomeMessage(t *testing.T) {
	if got := outcomeMessage(session.Outcome{Player: board.Black, Passed: true}); got != "White has no move, Black plays again" {
		t.Errorf("outcomeMessage = %q", got)
	}
	if got := outcomeMessage(session.Outcome{Skipped: true}); got != "" {
		t.Errorf("outcomeMessage for a skipped turn = %q", got)
	}
}

func TestGameLoopDrivesComputer(t *testing.T) {
	settings := session.DefaultSettings()
	settings.ComputerColor = board.Black
	s := session.New(settings, session.WithSleep(func(time.Duration) {}))
	s.Initialize()
	gl := NewGameLoop(s, true)

	if !gl.pollComputer() || gl.pending == nil {
		t.Fatalf("computer should start its turn")
	}

	deadline := time.Now().Add(2 * time.Second)
	for gl.pending != nil {
		gl.pollComputer()
		if time.Now().After(deadline) {
			t.Fatalf("computer turn never finished")
		}
		time.Sleep(time.Millisecond)
	}
	if s.CurrentPlayer() != board.White || len(s.History()) != 1 {
		t.Fatalf("after computer turn: current=%v history=%v", s.CurrentPlayer(), s.History())
	}

	// the human now clicks; an illegal square only sets a message
	gl.click(0, 0)
	if gl.message == "" || len(s.History()) != 1 {
		t.Fatalf("illegal click: message=%q history=%d", gl.message, len(s.History()))
	}

	gl.restart()
	if len(s.History()) != 0 || gl.pending != nil {
		t.Fatalf("restart did not reset the game")
	}
}
