//go:build !windows

package rl

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/pkg/term"
	"github.com/xyproto/env/v2"
)

var defaultTimeout = 10 * time.Millisecond

// escTimeout is how long to wait for the rest of an escape sequence after a
// lone ESC byte.
const escTimeout = 50 * time.Millisecond

const readBufferSize = 64

// TTY reads raw terminal input and decodes it into raw events.
type TTY struct {
	t       *term.Term
	timeout time.Duration
	seq     SeqBuffer
}

// NewTTY opens a terminal device in raw mode. An empty path selects the
// terminal of the current session.
func NewTTY(path string) (*TTY, error) {
	if path == "" {
		path = getTTYPath()
	}
	t, err := term.Open(path, term.RawMode, term.ReadTimeout(defaultTimeout))
	if err != nil {
		return nil, errors.Join(ErrNoTTY, err)
	}
	return &TTY{t: t, timeout: defaultTimeout}, nil
}

// getTTYPath returns the appropriate TTY path
func getTTYPath() string {
	if tmuxTTY := env.Str("TMUX_PANE_TTY"); tmuxTTY != "" {
		return tmuxTTY
	}
	if sshTTY := env.Str("SSH_TTY"); sshTTY != "" {
		return sshTTY
	}
	defaultTTY := "/dev/tty"
	if _, err := os.Stat(defaultTTY); err == nil {
		return defaultTTY
	}
	return "/dev/stdin"
}

// SetTimeout sets how long a read waits for input
func (tty *TTY) SetTimeout(d time.Duration) {
	tty.timeout = d
	tty.t.SetReadTimeout(d)
}

// Timeout returns the configured read timeout
func (tty *TTY) Timeout() time.Duration {
	return tty.timeout
}

// Close will restore and close the raw terminal
func (tty *TTY) Close() {
	tty.t.Restore()
	tty.t.Close()
}

// ReadBytes reads whatever input is pending, waiting at most the read
// timeout. It returns nil when nothing arrived.
func (tty *TTY) ReadBytes() ([]byte, error) {
	buf := make([]byte, readBufferSize)
	n, err := tty.read(buf)
	if err != nil || n == 0 {
		return nil, err
	}
	// A lone ESC may be the first byte of a sequence that is still arriving.
	if n == 1 && buf[0] == 27 {
		tty.t.SetReadTimeout(escTimeout)
		n2, _ := tty.read(buf[1:])
		tty.t.SetReadTimeout(tty.timeout)
		n += n2
	}
	return buf[:n], nil
}

func (tty *TTY) read(buf []byte) (int, error) {
	n, err := tty.t.Read(buf)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}

// Events reads pending input and decodes it. A sequence split between two
// reads is held back until the rest arrives or a read times out.
func (tty *TTY) Events() ([]TermEvent, error) {
	b, err := tty.ReadBytes()
	if err != nil {
		return nil, err
	}
	return tty.seq.Feed(b), nil
}

// WriteString writes a string to the terminal
func (tty *TTY) WriteString(s string) error {
	if n, err := tty.t.Write([]byte(s)); err != nil || n == 0 {
		return errors.New("no bytes written to the TTY")
	}
	return nil
}

// Term will return the underlying term.Term
func (tty *TTY) Term() *term.Term {
	return tty.t
}
