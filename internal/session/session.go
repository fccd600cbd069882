// Package session owns one game: the board engine, the move advisor and the
// settings, and serialises every mutation. Front-ends talk to the game only
// through a Session.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/havfo/reversi/internal/advisor"
	"github.com/havfo/reversi/internal/board"
)

// Move rejections. Front-ends ignore them; they are not faults.
var (
	ErrIllegalMove = errors.New("illegal move")
	ErrNotYourTurn = errors.New("not your turn")
	ErrThinking    = errors.New("computer is thinking")
	ErrGameOver    = errors.New("game is over")
	ErrNotStarted  = errors.New("game not started")
)

// Outcome describes one committed turn.
type Outcome struct {
	Move    board.Move   `json:"move"`
	Player  board.Cell   `json:"player"`
	Flipped []board.Move `json:"flipped"`
	// NoMove is set when the computer had nothing to play and only the
	// turn advanced.
	NoMove bool `json:"no_move"`
	// Passed is set when the opponent had no reply and Player moves again.
	Passed   bool       `json:"passed"`
	Terminal bool       `json:"terminal"`
	Next     board.Cell `json:"next"`
	// Skipped means nothing was committed: the computer was not to move, or
	// the game was re-initialised while it was thinking.
	Skipped bool `json:"skipped"`
}

// Record is one entry of the in-memory move log.
type Record struct {
	Move     board.Move `json:"move"`
	Player   board.Cell `json:"player"`
	Flips    int        `json:"flips"`
	Computer bool       `json:"computer"`
}

// Snapshot is a value copy of everything renderers read.
type Snapshot struct {
	Board      board.Board
	Current    board.Cell
	Status     board.Status
	Score      board.Score
	LegalMoves []board.Move
	Thinking   bool
	Settings   Settings
	History    []Record
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session logs to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithRand seeds the Easy tier.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSleep replaces the pacing delay, mostly for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Session) { s.sleep = sleep }
}

// Session is the single owner of a game.
type Session struct {
	mu         sync.Mutex
	game       *board.Game
	advisor    *advisor.Advisor
	settings   Settings
	history    []Record
	generation uint64
	listeners  []func(Snapshot)

	thinking atomic.Bool

	rng    *rand.Rand
	sleep  func(time.Duration)
	logger *log.Logger
}

// New returns a session in the NotStarted state. Invalid settings fall back
// to DefaultSettings.
func New(settings Settings, opts ...Option) *Session {
	s := &Session{
		game:   board.NewGame(),
		sleep:  time.Sleep,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := settings.Validate(); err != nil {
		s.logger.Printf("[session] %v, using defaults", err)
		settings = DefaultSettings()
	}
	s.settings = settings
	s.advisor = advisor.New(settings.Difficulty, s.rng)

	return s
}

// OnChange registers fn to be called with a snapshot after every change.
// Callbacks run outside the session lock, on the goroutine that made the
// change.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Initialize starts a new game. A computer turn still pending from the old
// game is discarded when it wakes up.
func (s *Session) Initialize() {
	s.mu.Lock()
	s.game.Initialize()
	s.history = nil
	s.generation++
	s.thinking.Store(false)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Printf("[session] new game: mode=%v difficulty=%v computer=%v", snap.Settings.Mode, snap.Settings.Difficulty, snap.Settings.ComputerColor)
	s.notify(snap)
}

// LoadPosition starts a game from b with toMove to play.
func (s *Session) LoadPosition(b board.Board, toMove board.Cell) {
	s.mu.Lock()
	s.game.LoadPosition(b, toMove)
	s.history = nil
	s.generation++
	s.thinking.Store(false)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// AttemptMove validates and commits a human move in one step. A rejected
// move returns one of the Err* values and leaves the game untouched.
func (s *Session) AttemptMove(row, col int, player board.Cell) (Outcome, error) {
	s.mu.Lock()

	if err := s.checkHumanMoveLocked(row, col, player); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}

	out := s.commitLocked(board.Move{Row: row, Col: col}, player, false)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)

	return out, nil
}

func (s *Session) checkHumanMoveLocked(row, col int, player board.Cell) error {
	switch s.game.Status() {
	case board.NotStarted:
		return ErrNotStarted
	case board.Terminal:
		return ErrGameOver
	}

	if s.thinking.Load() {
		return ErrThinking
	}
	if player != s.game.CurrentPlayer() || s.settings.IsComputer(player) {
		return fmt.Errorf("%w: %v to move", ErrNotYourTurn, s.game.CurrentPlayer())
	}
	if !s.game.IsLegal(row, col, player) {
		return fmt.Errorf("%w: (%d,%d) for %v", ErrIllegalMove, row, col, player)
	}

	return nil
}

// commitLocked places a move that has already been validated and advances
// the turn.
func (s *Session) commitLocked(m board.Move, player board.Cell, computer bool) Outcome {
	flipped := s.game.Place(m.Row, m.Col, player)
	s.game.AdvanceTurn()
	s.history = append(s.history, Record{Move: m, Player: player, Flips: len(flipped), Computer: computer})

	out := Outcome{
		Move:     m,
		Player:   player,
		Flipped:  flipped,
		Terminal: s.game.IsTerminal(),
		Next:     s.game.CurrentPlayer(),
	}
	out.Passed = !out.Terminal && out.Next == player

	if out.Terminal {
		score := s.game.Score()
		s.logger.Printf("[session] game over: black=%d white=%d winner=%v", score.Black, score.White, score.Winner())
	} else if out.Passed {
		s.logger.Printf("[session] %v has no move, %v plays again", board.Opponent(player), player)
	}

	return out
}

// ComputerToMove reports whether the advisor owns the next move.
func (s *Session) ComputerToMove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.computerToMoveLocked()
}

func (s *Session) computerToMoveLocked() bool {
	return s.game.Status() == board.InProgress && s.settings.IsComputer(s.game.CurrentPlayer())
}

// PlayComputerTurn runs the computer's turn in the background. Human input
// is rejected with ErrThinking until it finishes. After the pacing delay the
// advisor's move is committed, or, when the computer has no legal move, only
// the turn advances. Exactly one Outcome is sent on the returned channel,
// which is then closed.
func (s *Session) PlayComputerTurn() <-chan Outcome {
	done := make(chan Outcome, 1)

	s.mu.Lock()
	if !s.computerToMoveLocked() || s.thinking.Load() {
		s.mu.Unlock()
		done <- Outcome{Skipped: true}
		close(done)

		return done
	}
	s.thinking.Store(true)
	gen := s.generation
	pacing := s.settings.Pacing
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)

	go func() {
		defer close(done)

		s.sleep(pacing)
		out, changed := s.finishComputerTurn(gen)
		if changed {
			s.notify(s.Snapshot())
		}
		done <- out
	}()

	return done
}

func (s *Session) finishComputerTurn(gen uint64) (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return Outcome{Skipped: true}, false
	}
	defer s.thinking.Store(false)

	player := s.game.CurrentPlayer()
	// settings may have handed the side to a human during the delay
	if !s.settings.IsComputer(player) {
		s.logger.Printf("[session] %v is no longer computer controlled, turn dropped", player)

		return Outcome{Skipped: true}, true
	}

	move, ok := s.advisor.Choose(s.game, player)
	if !ok {
		s.game.AdvanceTurn()
		s.logger.Printf("[session] computer (%v) has no move", player)

		return Outcome{
			Player:   player,
			NoMove:   true,
			Terminal: s.game.IsTerminal(),
			Next:     s.game.CurrentPlayer(),
		}, true
	}

	s.logger.Printf("[session] computer (%v, %v) plays (%d,%d)", player, s.advisor.Difficulty(), move.Row, move.Col)

	return s.commitLocked(move, player, true), true
}

// ScheduleComputer starts the computer's turn if it is to move and keeps
// playing while it stays to move, calling onDone after each committed turn.
// It reports whether a turn was started.
func (s *Session) ScheduleComputer(onDone func(Outcome)) bool {
	if !s.ComputerToMove() {
		return false
	}

	go func() {
		for {
			out := <-s.PlayComputerTurn()
			if out.Skipped {
				return
			}
			if onDone != nil {
				onDone(out)
			}
			if !s.ComputerToMove() {
				return
			}
		}
	}()

	return true
}

// Thinking reports whether a computer turn is pending.
func (s *Session) Thinking() bool {
	return s.thinking.Load()
}

func (s *Session) Cell(row, col int) board.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.Cell(row, col)
}

func (s *Session) CurrentPlayer() board.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.CurrentPlayer()
}

func (s *Session) IsTerminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.IsTerminal()
}

func (s *Session) Status() board.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.Status()
}

func (s *Session) Score() board.Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.Score()
}

// LegalMoves lists player's legal moves in scan order.
func (s *Session) LegalMoves(player board.Cell) []board.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	return advisor.LegalMoves(s.game, player)
}

// Hints rates the current player's moves for move hinting.
func (s *Session) Hints() []advisor.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Status() != board.InProgress {
		return nil
	}

	return advisor.Ranked(s.game, s.game.CurrentPlayer())
}

func (s *Session) Board() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.Board()
}

func (s *Session) History() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Record(nil), s.history...)
}

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings
}

// SetDifficulty changes the tier used from the next computer turn on.
func (s *Session) SetDifficulty(d advisor.Difficulty) error {
	if d < advisor.Easy || d > advisor.Hard {
		return fmt.Errorf("%w: difficulty %d", ErrInvalidSettings, int(d))
	}

	s.update(func(st *Settings) {
		st.Difficulty = d
		s.advisor.SetDifficulty(d)
	})

	return nil
}

// SetMode switches between human-vs-human and human-vs-computer without
// touching the board.
func (s *Session) SetMode(m Mode) error {
	if m != HumanVsHuman && m != HumanVsComputer {
		return fmt.Errorf("%w: mode %d", ErrInvalidSettings, int(m))
	}

	s.update(func(st *Settings) { st.Mode = m })

	return nil
}

// SetComputerColor chooses which colour the advisor plays.
func (s *Session) SetComputerColor(c board.Cell) error {
	if c != board.Black && c != board.White {
		return fmt.Errorf("%w: computer colour %v", ErrInvalidSettings, c)
	}

	s.update(func(st *Settings) { st.ComputerColor = c })

	return nil
}

// ApplySettings replaces all settings at once.
func (s *Session) ApplySettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.update(func(st *Settings) {
		*st = settings
		s.advisor.SetDifficulty(settings.Difficulty)
	})

	return nil
}

func (s *Session) update(fn func(*Settings)) {
	s.mu.Lock()
	fn(&s.settings)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Printf("[session] settings: mode=%v difficulty=%v computer=%v", snap.Settings.Mode, snap.Settings.Difficulty, snap.Settings.ComputerColor)
	s.notify(snap)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Board:      s.game.Board(),
		Current:    s.game.CurrentPlayer(),
		Status:     s.game.Status(),
		Score:      s.game.Score(),
		LegalMoves: []board.Move{},
		Thinking:   s.thinking.Load(),
		Settings:   s.settings,
		History:    append([]Record(nil), s.history...),
	}
	if snap.Status == board.InProgress {
		snap.LegalMoves = advisor.LegalMoves(s.game, snap.Current)
	}

	return snap
}

func (s *Session) notify(snap Snapshot) {
	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
