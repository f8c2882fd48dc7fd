// Package gui is the interactive board simulator: a tview application
// showing the interpreted game with feedback colors, driven by script
// groups typed at a prompt.
package gui

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/engine"
	"github.com/hqpham/boardsense/pkg/feedback"
	"github.com/hqpham/boardsense/pkg/rules"
	"github.com/hqpham/boardsense/pkg/sim"
)

const numrows = 8

// App wires a scripted sensor and an inference engine to a tview UI.
type App struct {
	app    *tview.Application
	board  *tview.Table
	status *tview.TextView
	input  *tview.InputField
	layout *tview.Grid

	sensor *sim.ScriptedSensor
	eng    *engine.Engine
	theme  Theme
}

// New builds the simulator, optionally from a FEN position.
func New(fen string) (*App, error) {
	var (
		eng *engine.Engine
		err error
	)
	if fen == "" {
		eng = engine.New()
	} else if eng, err = engine.FromFEN(fen); err != nil {
		return nil, err
	}

	a := &App{
		app:    tview.NewApplication(),
		board:  tview.NewTable(),
		status: tview.NewTextView(),
		sensor: sim.FromGame(eng.State().Game()),
		eng:    eng,
		theme:  DefaultTheme(),
	}

	a.status.SetDynamicColors(true)
	a.input = tview.NewInputField().SetLabel("> ")
	a.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := a.input.GetText()
		a.input.SetText("")
		a.handleLine(line)
	})

	a.layout = tview.NewGrid().
		SetRows(11, -1, 1).
		SetColumns(-1).
		AddItem(a.board, 0, 0, 1, 1, 0, 0, false).
		AddItem(a.status, 1, 0, 1, 1, 0, 0, false).
		AddItem(a.input, 2, 0, 1, 1, 0, 0, true)

	a.render("")
	return a, nil
}

func (a *App) Run() error {
	return a.app.SetRoot(a.layout, true).EnableMouse(true).Run()
}

// handleLine routes one prompt line: a command or a script chunk.
func (a *App) handleLine(line string) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return
	case line == "quit" || line == "q":
		a.app.Stop()
	case line == "reset":
		a.eng = engine.New()
		a.sensor = sim.FromGame(a.eng.State().Game())
		a.render("reset to starting position")
	case strings.HasPrefix(line, "load "):
		a.loadFEN(strings.TrimSpace(strings.TrimPrefix(line, "load ")))
	default:
		a.runScript(line)
	}
}

func (a *App) loadFEN(fen string) {
	if fen == "startpos" {
		fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	}
	eng, err := engine.FromFEN(fen)
	if err != nil {
		a.render(err.Error())
		return
	}
	a.eng = eng
	a.sensor = sim.FromGame(eng.State().Game())
	a.render("position loaded")
}

func (a *App) runScript(script string) {
	// A bare group gets its tick delimiter for free.
	if !strings.HasSuffix(script, ".") {
		script += "."
	}
	if err := a.sensor.PushScript(script); err != nil {
		a.render(err.Error())
		return
	}
	committed := 0
	a.sensor.Drain(func(snap board.Snapshot) {
		if st := a.eng.Tick(snap); st != nil {
			committed++
			log.Printf("committed %s", st.LastMove)
		}
	})
	msg := ""
	if committed == 0 {
		msg = "no move committed yet"
	}
	a.render(msg)
}

// render redraws the board table and status line. Backgrounds come
// from guidance feedback, mirroring what the LED board would show.
func (a *App) render(msg string) {
	state := a.eng.State()
	fb := feedback.Guide(state, a.eng.Pending())
	snap := a.sensor.Snapshot()

	for r := 0; r <= numrows; r++ {
		for f := 0; f <= numrows; f++ {
			if f == 0 && r != numrows { // rank label
				cell := tview.NewTableCell(fmt.Sprintf("%d", numrows-r)).
					SetTextColor(a.theme.Label).
					SetAlign(tview.AlignCenter)
				a.board.SetCell(r, f, cell)
				continue
			}
			if r == numrows { // file labels
				label := ""
				if f > 0 {
					label = fmt.Sprintf(" %c", 'a'+f-1)
				}
				cell := tview.NewTableCell(label).
					SetTextColor(a.theme.Label).
					SetAlign(tview.AlignCenter)
				a.board.SetCell(r, f, cell)
				continue
			}

			sq := board.NewSquare(f-1, numrows-r-1)
			cell := tview.NewTableCell(" " + a.glyph(state.Game(), sq, snap)).
				SetAlign(tview.AlignCenter).
				SetBackgroundColor(a.theme.squareBg(sq, fb.Get(sq)))
			a.board.SetCell(r, f, cell)
		}
	}

	a.status.SetText(a.statusText(state, msg))
}

// glyph shows the piece the game expects on sq, or a marker when the
// sensors disagree with the game.
func (a *App) glyph(g *rules.Game, sq board.Square, snap board.Snapshot) string {
	p := g.PieceAt(sq)
	covered := snap.Occupied().Has(sq)
	switch {
	case p != chess.NoPiece && covered:
		return p.String()
	case p != chess.NoPiece:
		return "o" // piece in the air
	case covered:
		return "x" // reading without a piece
	default:
		return " "
	}
}

func (a *App) statusText(state *engine.GameState, msg string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s to move", state.Turn)
	if state.LastMove != nil {
		fmt.Fprintf(&b, " | last %s", state.LastMove)
	}
	switch {
	case state.Checkmate:
		b.WriteString(" | checkmate")
	case state.Stalemate:
		b.WriteString(" | stalemate")
	case state.InCheck:
		b.WriteString(" | check")
	}
	fmt.Fprintf(&b, "\n%s", state.FEN)
	if msg != "" {
		fmt.Fprintf(&b, "\n[#%06x]%s[-]", a.theme.Msg.Hex(), msg)
	}
	b.WriteString("\n\nscript groups (\"e2 We4.\"), load <fen>, reset, quit")
	return b.String()
}
