// Package tui is the terminal front-end: a start form, the board as a
// selectable table and a side panel with the score and the move log.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/havfo/reversi/internal/advisor"
	"github.com/havfo/reversi/internal/board"
	"github.com/havfo/reversi/internal/session"
)

// historyLines is how many moves the side panel lists.
const historyLines = 12

var spinners = []string{"|", "/", "-", "\\"}

// UI drives one session from the terminal.
type UI struct {
	app       *tview.Application
	session   *session.Session
	showHints bool
	// screen counts root swaps so a late computer turn does not draw over
	// a screen that replaced its board
	screen int
}

func New(s *session.Session, showHints bool) *UI {
	return &UI{
		app:       tview.NewApplication(),
		session:   s,
		showHints: showHints,
	}
}

// Run blocks until the user quits.
func (u *UI) Run() error {
	u.showStartScreen()

	return u.app.Run()
}

func (u *UI) showStartScreen() {
	u.screen++
	settings := u.session.Settings()
	showHints := u.showHints

	form := tview.NewForm()
	form.
		AddDropDown("Mode", []string{"Human vs Computer", "Human vs Human"}, int(settings.Mode), func(option string, index int) {
			if index >= 0 {
				settings.Mode = session.Mode(index)
			}
		}).
		AddDropDown("Choose your color", []string{"Black", "White"}, colorIndex(board.Opponent(settings.ComputerColor)), func(option string, index int) {
			if index >= 0 {
				settings.ComputerColor = board.Opponent(colorOption(index))
			}
		}).
		AddDropDown("Difficulty", difficultyOptions(), int(settings.Difficulty), func(option string, index int) {
			if index >= 0 {
				settings.Difficulty = advisor.Difficulty(index)
			}
		}).
		AddCheckbox("Show valid moves", showHints, func(checked bool) {
			showHints = checked
		}).
		AddButton("Start Game", func() {
			if err := u.session.ApplySettings(settings); err != nil {
				return
			}
			u.showHints = showHints
			u.startGame()
		}).
		AddButton("Quit", func() {
			u.app.Stop()
		})
	form.SetBorder(true).SetTitle("Reversi").SetTitleAlign(tview.AlignCenter)

	u.app.SetRoot(form, true).SetFocus(form)
}

func (u *UI) startGame() {
	u.session.Initialize()
	u.screen++
	screen := u.screen

	boardTable := tview.NewTable()
	boardTable.SetSelectable(true, true)
	boardTable.SetBorder(true)
	boardTable.SetTitleAlign(tview.AlignLeft)
	boardTable.SetTitleColor(tcell.ColorGreen)
	boardTable.SetBorderColor(tcell.ColorGreen)
	boardTable.SetBorders(true)

	scoreBox := tview.NewTextView()
	scoreBox.SetBorder(true)
	scoreBox.SetTitle("Score")

	flex := tview.NewFlex().
		AddItem(boardTable, 0, 1, true).
		AddItem(scoreBox, 40, 1, false)

	// notice is a one-shot message shown in the title until the next redraw
	var notice string

	updateBoard := func() {
		snap := u.session.Snapshot()
		legal := map[board.Move]bool{}
		if u.showHints && !snap.Thinking && !snap.Settings.IsComputer(snap.Current) {
			for _, m := range snap.LegalMoves {
				legal[m] = true
			}
		}

		for row := 0; row < board.Size; row++ {
			for col := 0; col < board.Size; col++ {
				cell := tview.NewTableCell(pieceSymbol(snap.Board[row][col]))
				cell.SetAlign(tview.AlignCenter)
				if legal[board.Move{Row: row, Col: col}] {
					cell.SetText("· ")
					cell.SetTextColor(tcell.ColorGreen)
				}
				boardTable.SetCell(row, col, cell)
			}
		}

		boardTable.SetTitle(title(snap, "", notice))
		notice = ""
		text := scoreText(snap)
		if len(legal) > 0 {
			text = hintText(u.session.Hints()) + "\n" + text
		}
		scoreBox.SetText(text)
	}

	var processNextTurn func()

	processNextTurn = func() {
		if u.session.IsTerminal() {
			u.showGameOver(u.session.Score())
			return
		}

		if !u.session.ComputerToMove() {
			updateBoard()
			return
		}

		done := u.session.PlayComputerTurn()
		updateBoard()

		ticker := time.NewTicker(100 * time.Millisecond)
		go func() {
			defer ticker.Stop()
			spinnerIndex := 0
			for range ticker.C {
				if !u.session.Thinking() {
					return
				}
				spinner := spinners[spinnerIndex%len(spinners)]
				spinnerIndex++
				u.app.QueueUpdateDraw(func() {
					if snap := u.session.Snapshot(); snap.Thinking {
						boardTable.SetTitle(title(snap, spinner, ""))
					}
				})
			}
		}()

		go func() {
			out := <-done
			if out.Skipped {
				return
			}

			u.app.QueueUpdateDraw(func() {
				if u.screen != screen {
					return
				}
				notice = passNotice(out)
				processNextTurn()
			})
		}()
	}

	boardTable.SetSelectedFunc(func(row, column int) {
		out, err := u.session.AttemptMove(row, column, u.session.CurrentPlayer())
		if err != nil {
			// rejected input is ignored, the title just says why
			boardTable.SetTitle(title(u.session.Snapshot(), "", err.Error()))
			return
		}

		notice = passNotice(out)
		processNextTurn()
	})

	boardTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			u.showStartScreen()
			return nil
		}

		return event
	})

	u.app.SetRoot(flex, true).SetFocus(boardTable)
	processNextTurn()
}

func (u *UI) showGameOver(score board.Score) {
	modal := tview.NewModal().
		SetText(gameOverText(score)).
		AddButtons([]string{"New Game", "Quit"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "New Game" {
				u.showStartScreen()
			} else {
				u.app.Stop()
			}
		})

	u.app.SetRoot(modal, false).SetFocus(modal)
}

func title(snap session.Snapshot, spinner, notice string) string {
	t := fmt.Sprintf(" Reversi - %s's turn ", snap.Current)
	if spinner != "" {
		t += spinner + " "
	}
	if notice != "" {
		t += "(" + notice + ") "
	}

	return t
}

func passNotice(out session.Outcome) string {
	if out.Passed {
		return fmt.Sprintf("%s has no move", board.Opponent(out.Player))
	}

	return ""
}

func scoreText(snap session.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Black: %d\nWhite: %d\n\n", snap.Score.Black, snap.Score.White)
	if snap.Settings.Mode == session.HumanVsComputer {
		fmt.Fprintf(&sb, "Computer: %s (%s)\n\n", snap.Settings.ComputerColor, snap.Settings.Difficulty)
	} else {
		sb.WriteString("Human vs Human\n\n")
	}

	start := 0
	if len(snap.History) > historyLines {
		start = len(snap.History) - historyLines
	}
	for i, r := range snap.History[start:] {
		who := ""
		if r.Computer {
			who = " cpu"
		}
		fmt.Fprintf(&sb, "%2d. %-5s %s  +%d%s\n", start+i+1, r.Player, squareName(r.Move), r.Flips, who)
	}

	return sb.String()
}

// hintText names the move the hard tier would play.
func hintText(ratings []advisor.Rating) string {
	if len(ratings) == 0 {
		return ""
	}

	best := ratings[0]
	for _, r := range ratings[1:] {
		if r.Score > best.Score {
			best = r
		}
	}

	return fmt.Sprintf("Hint: %s (flips %d, square %+d)", squareName(best.Move), best.Flips, best.PositionValue)
}

func gameOverText(score board.Score) string {
	result := "It's a draw!"
	if w := score.Winner(); w != board.Empty {
		result = fmt.Sprintf("%s wins!", w)
	}

	return fmt.Sprintf("Game Over!\n%s\nBlack score: %d\nWhite score: %d", result, score.Black, score.White)
}

// squareName renders a move as column letter and row number, e.g. "e3".
func squareName(m board.Move) string {
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

func pieceSymbol(piece board.Cell) string {
	switch piece {
	case board.Black:
		return " ⚫ "
	case board.White:
		return " ⚪ "
	default:
		return "    "
	}
}

func difficultyOptions() []string {
	options := make([]string, len(advisor.Difficulties))
	for i, d := range advisor.Difficulties {
		options[i] = strings.ToUpper(d.String()[:1]) + d.String()[1:]
	}

	return options
}

func colorIndex(c board.Cell) int {
	if c == board.White {
		return 1
	}

	return 0
}

func colorOption(index int) board.Cell {
	if index == 1 {
		return board.White
	}

	return board.Black
}
