package rl

import (
	"errors"
	"strings"

	"github.com/xyproto/env/v2"
)

// ErrNoTTY is returned when no terminal could be opened for input.
var ErrNoTTY = errors.New("no terminal available")

const (
	showCursor  = "\033[?25h"
	hideCursor  = "\033[?25l"
	eraseScreen = "\033[2J"
	cursorHome  = "\033[H"
	eraseDown   = "\033[J"
	pasteOn     = "\033[?2004h"
	pasteOff    = "\033[?2004l"
	mouseOn     = "\033[?1000h\033[?1002h\033[?1006h"
	mouseOff    = "\033[?1006l\033[?1002l\033[?1000l"
	focusOn     = "\033[?1004h"
	focusOff    = "\033[?1004l"
	resetColors = "\033[0m"
)

// writer is the subset of TTY used for terminal setup.
type writer interface {
	WriteString(s string) error
}

// EnableInput turns on mouse, focus and bracketed paste reporting and hides
// the cursor. Bracketed paste keeps pasted text from being mistaken for keys
// with modifiers.
func EnableInput(w writer) error {
	return w.WriteString(hideCursor + mouseOn + focusOn + pasteOn)
}

// DisableInput undoes EnableInput.
func DisableInput(w writer) error {
	return w.WriteString(pasteOff + focusOff + mouseOff + resetColors + showCursor)
}

// ClearScreen returns the cursor home and erases the screen.
func ClearScreen(w writer) error {
	return w.WriteString(cursorHome + eraseScreen)
}

// Redraw returns the cursor home and erases everything below it, for
// repainting a view in place.
func Redraw(w writer, s string) error {
	return w.WriteString(cursorHome + eraseDown + s)
}

// UnderTMUX reports whether the program runs inside tmux.
func UnderTMUX() bool {
	return env.Has("TMUX") || strings.Contains(env.Str("TERM"), "tmux")
}
