package sim

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/notnil/chess"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/engine"
	"github.com/hqpham/boardsense/pkg/feedback"
)

// TerminalDisplay renders feedback boards as an ANSI-colored 8x8 grid.
type TerminalDisplay struct {
	W io.Writer
}

func NewTerminalDisplay() *TerminalDisplay {
	return &TerminalDisplay{W: os.Stdout}
}

// Accept implements the display port.
func (d *TerminalDisplay) Accept(fb feedback.Board) {
	RenderFeedback(d.W, fb)
}

var tagColors = map[feedback.Tag]*color.Color{
	feedback.Origin:      color.New(color.BgGreen),
	feedback.Destination: color.New(color.BgBlue),
	feedback.Capture:     color.New(color.BgRed),
	feedback.Check:       color.New(color.BgMagenta),
	feedback.Checker:     color.New(color.BgYellow),
}

// RenderFeedback writes the feedback grid, ranks top-down.
func RenderFeedback(w io.Writer, fb feedback.Board) {
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(w, " %d ", rank+1)
		for file := 0; file < 8; file++ {
			cell := " · "
			if c, ok := tagColors[fb.Get(board.NewSquare(file, rank))]; ok {
				c.Fprint(w, cell)
			} else {
				fmt.Fprint(w, cell)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "    a  b  c  d  e  f  g  h")
}

// RenderDual writes the raw sensor reading next to the interpreted
// game state, marking pieces the sensors miss (o) and readings the
// game cannot explain (x).
func RenderDual(w io.Writer, snap board.Snapshot, state *engine.GameState) {
	fmt.Fprintln(w, "    Raw Sensors                  Game State")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(w, " %d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			switch {
			case snap.White.Has(sq):
				fmt.Fprint(w, " w ")
			case snap.Black.Has(sq):
				fmt.Fprint(w, " b ")
			default:
				fmt.Fprint(w, " · ")
			}
		}
		fmt.Fprintf(w, "   %d ", rank+1)
		for file := 0; file < 8; file++ {
			fmt.Fprint(w, dualCell(board.NewSquare(file, rank), snap, state))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "    a  b  c  d  e  f  g  h       a  b  c  d  e  f  g  h")
	fmt.Fprintf(w, "sensors w=%#016x b=%#016x pieces=%d\n",
		uint64(snap.White), uint64(snap.Black), snap.Occupied().Count())
}

func dualCell(sq board.Square, snap board.Snapshot, state *engine.GameState) string {
	covered := snap.Occupied().Has(sq)
	p := state.Game().PieceAt(sq)
	if p != chess.NoPiece {
		if covered {
			return " " + p.String() + " "
		}
		return " o " // piece the sensors no longer see
	}
	if covered {
		return " x " // reading with no piece behind it
	}
	return " · "
}
