package board

// View is the read-only surface move selection works against.
type View interface {
	Cell(row, col int) Cell
	IsLegal(row, col int, player Cell) bool
	Captures(row, col int, player Cell) []Move
}

var (
	_ View = (*Board)(nil)
	_ View = (*Game)(nil)
)

// Status is the lifecycle of a game.
type Status int

const (
	NotStarted Status = iota
	InProgress
	Terminal
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Terminal:
		return "terminal"
	}

	return "unknown"
}

// Game represents the game state
type Game struct {
	board    Board
	current  Cell
	terminal bool
	started  bool
}

// NewGame returns a game showing the opening position that has not been
// started yet.
func NewGame() *Game {
	return &Game{
		board:   NewBoard(),
		current: Black,
	}
}

// Initialize resets to the opening position with Black to move.
func (g *Game) Initialize() {
	g.board = NewBoard()
	g.current = Black
	g.terminal = false
	g.started = true
}

// LoadPosition starts a game from an arbitrary position. The game is terminal
// straight away when neither side can move; when only toMove is stuck the
// turn passes to the opponent.
func (g *Game) LoadPosition(b Board, toMove Cell) {
	g.board = b
	g.current = toMove
	g.terminal = false
	g.started = true

	if !g.board.HasAnyLegalMove(g.current) {
		g.current = Opponent(g.current)
		if !g.board.HasAnyLegalMove(g.current) {
			g.terminal = true
		}
	}
}

// Cell returns the content of (row, col), Empty when off the board.
func (g *Game) Cell(row, col int) Cell {
	return g.board.Cell(row, col)
}

// Board returns a copy of the grid.
func (g *Game) Board() Board {
	return g.board
}

// CurrentPlayer returns the player to move.
func (g *Game) CurrentPlayer() Cell {
	return g.current
}

// IsTerminal reports whether both players have run out of moves.
func (g *Game) IsTerminal() bool {
	return g.terminal
}

func (g *Game) Status() Status {
	switch {
	case !g.started:
		return NotStarted
	case g.terminal:
		return Terminal
	default:
		return InProgress
	}
}

// IsLegal reports whether player may place a stone on (row, col).
func (g *Game) IsLegal(row, col int, player Cell) bool {
	return g.board.IsLegal(row, col, player)
}

// Captures lists the stones a move would flip without playing it.
func (g *Game) Captures(row, col int, player Cell) []Move {
	return g.board.Captures(row, col, player)
}

// Place commits player's stone and flips the captured runs. Legality is the
// caller's responsibility; an unchecked move leaves the board in whatever
// state the capture scan produces.
func (g *Game) Place(row, col int, player Cell) []Move {
	return g.board.Place(row, col, player)
}

// HasAnyLegalMove reports whether player has at least one legal move.
func (g *Game) HasAnyLegalMove(player Cell) bool {
	return g.board.HasAnyLegalMove(player)
}

// SwitchTurn switches the current player
func (g *Game) SwitchTurn() {
	g.current = Opponent(g.current)
}

// AdvanceTurn hands the move to the opponent. An opponent without a legal
// move passes back to the player who just moved; if that player cannot move
// either, the game ends.
func (g *Game) AdvanceTurn() {
	if g.terminal {
		return
	}

	g.SwitchTurn()
	if g.HasAnyLegalMove(g.current) {
		return
	}

	g.SwitchTurn()
	if !g.HasAnyLegalMove(g.current) {
		g.terminal = true
	}
}

// Score returns the stone count of both colours.
func (g *Game) Score() Score {
	return g.board.Score()
}
