package rl

import (
	"os"

	"github.com/xyproto/env/v2"
	"golang.org/x/term"
)

// TermSize returns the current terminal width and height. When stdout is not
// a terminal, COLS or COLUMNS and LINES are used, defaulting to 80x25.
func TermSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err == nil {
			return width, height
		}
	}
	w := 80
	if cols := env.Int("COLS", 0); cols > 0 {
		w = cols
	} else if cols := env.Int("COLUMNS", 0); cols > 0 {
		w = cols
	}
	return w, env.Int("LINES", 25)
}

// TermViewport returns a viewport covering the whole terminal, in cells.
func TermViewport() Viewport {
	w, h := TermSize()
	return Viewport{Width: w, Height: h}
}
