// boardd serves the board simulator over ssh: each session gets its
// own boardsim process on a pseudo-terminal, so anyone can try the
// move inference without installing anything.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"syscall"
	"time"
	"unsafe"

	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/hqpham/boardsense/pkg/logutil"
)

const idleTimeout = 5 * time.Minute

var simPath string

func setWinsize(f *os.File, w, h int) {
	syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(syscall.TIOCSWINSZ),
		uintptr(unsafe.Pointer(&struct{ h, w, x, y uint16 }{uint16(h), uint16(w), 0, 0})))
}

func sshHandle(s ssh.Session) {
	ptyReq, winCh, isPty := s.Pty()
	if !isPty {
		io.WriteString(s, "non-interactive terminals are not supported\n")
		s.Exit(1)
		return
	}

	session := petname.Generate(2, "-")
	log.Printf("session %s from %s", session, s.RemoteAddr())

	cmdCtx, cancelCmd := context.WithCancel(s.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, simPath,
		"-log", fmt.Sprintf("./log-%s", session))
	cmd.Env = append(s.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.Start(cmd)
	if err != nil {
		io.WriteString(s, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		s.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			setWinsize(f, win.Width, win.Height)
		}
	}()

	go func() {
		io.Copy(f, s)
	}()
	io.Copy(s, f)

	f.Close()
	cmd.Wait()
	log.Printf("session %s closed", session)
}

// hostKey loads the key at path, or generates an ephemeral ed25519 key
// when none is configured.
func hostKey(path string, s *ssh.Server) error {
	if path != "" {
		return s.SetOption(ssh.HostKeyFile(path))
	}
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return err
	}
	s.AddHostKey(signer)
	return nil
}

func main() {
	addr := flag.String("addr", ":2222", "ssh listen address")
	logPath := flag.String("log", "./log", "path to log file")
	keyPath := flag.String("hostkey", "", "host key file (default: ephemeral)")
	flag.StringVar(&simPath, "sim", "boardsim", "path to the boardsim binary")
	flag.Parse()
	logutil.InitLog(*logPath, "BOARDD: ")

	s := &ssh.Server{
		Addr:        *addr,
		IdleTimeout: idleTimeout,
		Handler:     sshHandle,
	}
	if err := hostKey(*keyPath, s); err != nil {
		log.Fatal(err)
	}

	log.Printf("listening on %s", *addr)
	if err := s.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
