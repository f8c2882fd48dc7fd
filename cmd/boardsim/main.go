package main

import (
	"flag"
	"log"

	"github.com/hqpham/boardsense/pkg/gui"
	"github.com/hqpham/boardsense/pkg/logutil"
)

func main() {
	logPath := flag.String("log", "./log", "path to log file")
	fen := flag.String("fen", "", "starting position, FEN (default: standard)")
	flag.Parse()
	logutil.InitLog(*logPath, "SIM: ")

	app, err := gui.New(*fen)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
