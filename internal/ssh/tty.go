package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty adapts a gliderlabs/ssh session into a tcell.Tty so each
// connected client can drive its own map viewer over the wire.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	resize func()
}

// NewSessionTty wraps a session. pty carries the initial window size;
// winCh delivers resize events for the lifetime of the connection.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{session: s, window: pty.Window, winCh: winCh}
}

// Read pulls keyboard input from the session's stdin.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write pushes rendered output to the session's stdout.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close tears down the SSH channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start is a no-op: the channel is opened and owned by the server
// handler.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op for the same reason.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op; SSH writes flush immediately.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the client terminal's current dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb and starts draining the window-change
// channel so tcell sees every client-side resize.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.resize = cb
	t.mu.Unlock()

	go func() {
		for win := range t.winCh {
			t.mu.Lock()
			t.window = win
			cb := t.resize
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}()
}
