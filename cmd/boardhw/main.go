// boardhw is the bridge loop for a serial-attached board controller:
// it polls sensor frames from one stream, runs move inference, and
// writes feedback frames to another. Point -in and -out at the
// controller's character device, or at pipes for bench testing.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hqpham/boardsense/pkg/engine"
	"github.com/hqpham/boardsense/pkg/feedback"
	"github.com/hqpham/boardsense/pkg/hw"
	"github.com/hqpham/boardsense/pkg/logutil"
)

func main() {
	inPath := flag.String("in", "", "sensor frame stream (default: stdin)")
	outPath := flag.String("out", "", "feedback frame stream (default: stdout)")
	logPath := flag.String("log", "./log", "path to log file")
	fen := flag.String("fen", "", "starting position, FEN (default: standard)")
	hz := flag.Int("hz", 10, "sensor poll rate")
	flag.Parse()
	logutil.InitLog(*logPath, "HW: ")

	var (
		eng *engine.Engine
		err error
	)
	if *fen == "" {
		eng = engine.New()
	} else if eng, err = engine.FromFEN(*fen); err != nil {
		log.Fatal(err)
	}

	in := os.Stdin
	if *inPath != "" {
		if in, err = os.Open(*inPath); err != nil {
			log.Fatal(err)
		}
		defer in.Close()
	}
	out := os.Stdout
	if *outPath != "" {
		if out, err = os.OpenFile(*outPath, os.O_WRONLY, 0); err != nil {
			log.Fatal(err)
		}
		defer out.Close()
	}

	var sensor engine.Sensor = hw.NewFrameSensor(in, eng.State().Game().Snapshot())
	var display feedback.Display = hw.NewFrameDisplay(out)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second / time.Duration(*hz))
	defer ticker.Stop()

	log.Printf("bridging at %d Hz", *hz)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := sensor.Poll()
			if st := eng.Tick(snap); st != nil {
				log.Printf("committed %s, %s to move", st.LastMove, st.Turn)
			}
			display.Accept(feedback.Guide(eng.State(), eng.Pending()))
		}
	}
}
