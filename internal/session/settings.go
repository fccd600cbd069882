package session

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/havfo/reversi/internal/advisor"
	"github.com/havfo/reversi/internal/board"
)

// ErrInvalidSettings is wrapped by Settings.Validate and the parsers.
var ErrInvalidSettings = errors.New("session: invalid settings")

// Mode selects who plays the computer's colour.
type Mode int

const (
	HumanVsComputer Mode = iota
	HumanVsHuman
)

func (m Mode) String() string {
	if m == HumanVsHuman {
		return "pvp"
	}

	return "pvc"
}

// ParseMode accepts "pvp"/"human_vs_human" and "pvc"/"human_vs_computer".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pvp", "human_vs_human", "hvh":
		return HumanVsHuman, nil
	case "pvc", "pve", "human_vs_computer", "hvc":
		return HumanVsComputer, nil
	}

	return HumanVsComputer, fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}

// ParseColor parses the computer colour flag.
func ParseColor(s string) (board.Cell, error) {
	c, ok := board.ParsePlayer(strings.TrimSpace(s))
	if !ok {
		return board.Empty, fmt.Errorf("%w: unknown colour %q", ErrInvalidSettings, s)
	}

	return c, nil
}

// Settings configures a session.
type Settings struct {
	Mode          Mode               `json:"mode"`
	Difficulty    advisor.Difficulty `json:"difficulty"`
	ComputerColor board.Cell         `json:"computer_color"`
	// Pacing is how long the computer "thinks" before committing its move.
	Pacing time.Duration `json:"-"`
}

// DefaultSettings is human vs computer on normal, the computer playing White.
func DefaultSettings() Settings {
	return Settings{
		Mode:          HumanVsComputer,
		Difficulty:    advisor.Normal,
		ComputerColor: board.White,
		Pacing:        500 * time.Millisecond,
	}
}

func (s Settings) Validate() error {
	if s.Mode != HumanVsComputer && s.Mode != HumanVsHuman {
		return fmt.Errorf("%w: mode %d", ErrInvalidSettings, int(s.Mode))
	}
	if s.Difficulty < advisor.Easy || s.Difficulty > advisor.Hard {
		return fmt.Errorf("%w: difficulty %d", ErrInvalidSettings, int(s.Difficulty))
	}
	if s.ComputerColor != board.Black && s.ComputerColor != board.White {
		return fmt.Errorf("%w: computer colour %v", ErrInvalidSettings, s.ComputerColor)
	}
	if s.Pacing < 0 {
		return fmt.Errorf("%w: negative pacing %v", ErrInvalidSettings, s.Pacing)
	}

	return nil
}

// IsComputer reports whether player is driven by the advisor.
func (s Settings) IsComputer(player board.Cell) bool {
	return s.Mode == HumanVsComputer && player == s.ComputerColor
}

// BindFlags registers -mode, -difficulty, -cpu-color and -pacing on fs,
// writing into s. Values already in s become the defaults.
func BindFlags(fs *flag.FlagSet, s *Settings) {
	fs.TextVar(&s.Mode, "mode", s.Mode, "game mode: pvc or pvp")
	fs.TextVar(&s.Difficulty, "difficulty", s.Difficulty, "computer difficulty: easy, normal or hard")
	fs.Func("cpu-color", "colour the computer plays: black or white (default "+strings.ToLower(s.ComputerColor.String())+")", func(v string) error {
		c, err := ParseColor(v)
		if err != nil {
			return err
		}
		s.ComputerColor = c

		return nil
	})
	fs.DurationVar(&s.Pacing, "pacing", s.Pacing, "delay before the computer commits its move")
}
