// tacmapgen-server serves the interactive map viewer over SSH. Build:
//
//	go build -o tacmapgen-server ./cmd/server
//
// Usage:
//
//	./tacmapgen-server [--port 2222] [--key server_host_key]
//
// Connect:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"tacmapgen/internal/generate"
	"tacmapgen/internal/render"
	internalssh "tacmapgen/internal/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	rows := flag.Int("rows", 33, "grid rows")
	cols := flag.Int("cols", 21, "grid columns")
	flag.Parse()

	signer := loadOrCreateHostKey(*keyFile)
	base := generate.Config{
		Rows:            *rows,
		Cols:            *cols,
		WallDensityPct:  10,
		WaterDensityPct: 5,
		GrassDensityPct: 10,
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, base)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("tacmapgen SSH viewer listening on :%d", *port)
	log.Fatal(srv.ListenAndServe())
}

// sessionSeq distinguishes the seeds of sessions opened in the same
// nanosecond.
var sessionSeq atomic.Int64

// handleSession gives one connected client its own viewer. Every
// session owns a private grid and PRNG stream, so concurrent clients
// never share mutable state.
func handleSession(s gossh.Session, cfg generate.Config) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "A PTY is required. Connect with: ssh -t -p 2222 <host>")
		return
	}

	term := "xterm-256color"
	for _, env := range s.Environ() {
		if strings.HasPrefix(env, "TERM=") {
			term = env[5:]
			break
		}
	}

	// TERM must be set in the process environment before
	// NewTerminfoScreenFromTty reads it.
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	cfg.Seed = time.Now().UnixNano() + sessionSeq.Add(1)
	if err := render.NewViewer(screen, cfg).Run(); err != nil {
		log.Printf("session ended with error: %v", err)
	}
}

// termMu serializes os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// loadOrCreateHostKey loads a PEM private key from path, or generates
// and persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatalf("create signer: %v", err)
	}
	if pemBlock, err := xssh.MarshalPrivateKey(key, "tacmapgen server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer
}
