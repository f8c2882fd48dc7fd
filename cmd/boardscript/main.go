// boardscript replays a sensor script non-interactively and prints the
// interpreted game after every tick. Useful for debugging inference
// behavior and for piping recorded sessions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/engine"
	"github.com/hqpham/boardsense/pkg/feedback"
	"github.com/hqpham/boardsense/pkg/logutil"
	"github.com/hqpham/boardsense/pkg/sim"
)

func main() {
	logPath := flag.String("log", "./log", "path to log file")
	fen := flag.String("fen", "", "starting position, FEN (default: standard)")
	quiet := flag.Bool("quiet", false, "print only committed moves")
	flag.Parse()
	logutil.InitLog(*logPath, "SCRIPT: ")

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	var (
		eng *engine.Engine
		err error
	)
	if *fen == "" {
		eng = engine.New()
	} else if eng, err = engine.FromFEN(*fen); err != nil {
		log.Fatal(err)
	}
	sensor := sim.FromGame(eng.State().Game())

	script, err := readScript(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	if err := sensor.PushScript(script); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tick := 0
	sensor.Drain(func(snap board.Snapshot) {
		tick++
		st := eng.Tick(snap)
		if st != nil {
			fmt.Printf("tick %d: %s\n", tick, st.LastMove)
		} else if !*quiet {
			fmt.Printf("tick %d: no move\n", tick)
		}
		if !*quiet {
			sim.RenderDual(os.Stdout, snap, eng.State())
			sim.RenderFeedback(os.Stdout, feedback.Guide(eng.State(), eng.Pending()))
			fmt.Println()
		}
	})

	state := eng.State()
	fmt.Printf("final: %s\n", state.FEN)
	switch {
	case state.Checkmate:
		fmt.Printf("checkmate, %s wins\n", state.Turn.Other())
	case state.Stalemate:
		fmt.Println("stalemate")
	case state.InCheck:
		fmt.Printf("%s is in check\n", state.Turn)
	}
}

// readScript concatenates the argument tokens, or reads stdin when no
// arguments were given.
func readScript(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	var b strings.Builder
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteByte(' ')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
