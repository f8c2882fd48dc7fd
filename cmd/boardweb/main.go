// boardweb feeds sensor script lines from stdin into the inference
// engine and publishes the interpreted game over HTTP and websockets.
// It stands in for the hardware loop when developing remote monitors.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hqpham/boardsense/pkg/board"
	"github.com/hqpham/boardsense/pkg/engine"
	"github.com/hqpham/boardsense/pkg/feedback"
	"github.com/hqpham/boardsense/pkg/logutil"
	"github.com/hqpham/boardsense/pkg/sim"
	"github.com/hqpham/boardsense/pkg/web"
)

func main() {
	addr := flag.String("addr", ":1998", "http listen address")
	logPath := flag.String("log", "./log", "path to log file")
	fen := flag.String("fen", "", "starting position, FEN (default: standard)")
	flag.Parse()
	logutil.InitLog(*logPath, "WEB: ")

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

	srv := web.NewServer()
	srv.Update(eng.State(), feedback.Derive(eng.State()))
	go func() {
		if err := srv.Listen(*addr); err != nil {
			log.Fatal(err)
		}
	}()

	fmt.Printf("listening on %s, reading script lines from stdin\n", *addr)
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		if err := sensor.PushScript(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		sensor.Drain(func(snap board.Snapshot) {
			if st := eng.Tick(snap); st != nil {
				fmt.Printf("committed %s\n", st.LastMove)
			}
			srv.Update(eng.State(), feedback.Guide(eng.State(), eng.Pending()))
		})
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
	if err := srv.Shutdown(); err != nil {
		log.Fatal(err)
	}
}
