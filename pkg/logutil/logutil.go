// Package logutil configures the process logger. TUI processes own the
// terminal, so logs always go to a file.
package logutil

import (
	"log"
	"os"
)

// InitLog points the standard logger at dest with the given prefix.
func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}
