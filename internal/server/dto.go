package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/havfo/reversi/internal/advisor"
	"github.com/havfo/reversi/internal/board"
	"github.com/havfo/reversi/internal/session"
)

type StatusResponse struct {
	Board         [][]int           `json:"board"`
	CurrentPlayer int               `json:"current_player"`
	Status        string            `json:"status"`
	Score         board.Score       `json:"score"`
	Winner        int               `json:"winner"`
	LegalMoves    []board.Move      `json:"legal_moves"`
	Thinking      bool              `json:"thinking"`
	Settings      SettingsDTO       `json:"settings"`
	History       []historyEntryDTO `json:"history"`
}

type SettingsDTO struct {
	Mode          string `json:"mode"`
	Difficulty    string `json:"difficulty"`
	ComputerColor int    `json:"computer_color"`
}

// settingsPatch is the body of /api/settings and /api/start; absent fields
// keep their current value.
type settingsPatch struct {
	Mode          *string `json:"mode"`
	Difficulty    *string `json:"difficulty"`
	ComputerColor *int    `json:"computer_color"`
}

type apiMove struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Player int `json:"player"`
}

type historyEntryDTO struct {
	Row      int  `json:"row"`
	Col      int  `json:"col"`
	Player   int  `json:"player"`
	Flips    int  `json:"flips"`
	Computer bool `json:"computer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func statusFromSnapshot(snap session.Snapshot) StatusResponse {
	cells := make([][]int, board.Size)
	for row := range cells {
		cells[row] = make([]int, board.Size)
		for col := range cells[row] {
			cells[row][col] = int(snap.Board[row][col])
		}
	}

	winner := 0
	if snap.Status == board.Terminal {
		winner = int(snap.Score.Winner())
	}

	history := make([]historyEntryDTO, len(snap.History))
	for i, r := range snap.History {
		history[i] = historyEntryDTO{
			Row:      r.Move.Row,
			Col:      r.Move.Col,
			Player:   int(r.Player),
			Flips:    r.Flips,
			Computer: r.Computer,
		}
	}

	legal := snap.LegalMoves
	if legal == nil {
		legal = []board.Move{}
	}

	return StatusResponse{
		Board:         cells,
		CurrentPlayer: int(snap.Current),
		Status:        snap.Status.String(),
		Score:         snap.Score,
		Winner:        winner,
		LegalMoves:    legal,
		Thinking:      snap.Thinking,
		Settings:      settingsToDTO(snap.Settings),
		History:       history,
	}
}

func settingsToDTO(s session.Settings) SettingsDTO {
	return SettingsDTO{
		Mode:          s.Mode.String(),
		Difficulty:    s.Difficulty.String(),
		ComputerColor: int(s.ComputerColor),
	}
}

// apply returns base with the fields present in p replaced.
func (p settingsPatch) apply(base session.Settings) (session.Settings, error) {
	settings := base
	if p.Mode != nil {
		m, err := session.ParseMode(*p.Mode)
		if err != nil {
			return base, err
		}
		settings.Mode = m
	}
	if p.Difficulty != nil {
		d, err := advisor.ParseDifficulty(*p.Difficulty)
		if err != nil {
			return base, fmt.Errorf("%w: %v", session.ErrInvalidSettings, err)
		}
		settings.Difficulty = d
	}
	if p.ComputerColor != nil {
		c := board.Cell(*p.ComputerColor)
		if c != board.Black && c != board.White {
			return base, fmt.Errorf("%w: computer colour %d", session.ErrInvalidSettings, *p.ComputerColor)
		}
		settings.ComputerColor = c
	}

	return settings, settings.Validate()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return data
}
