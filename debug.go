package rl

import (
	"strings"

	"github.com/mgutz/ansi"
)

// DebugInfo is what the debug view shows: the last raw key event, the key it
// resolved to, and the key state as rows of bits.
type DebugInfo struct {
	Raw  string
	Key  string
	Bits []string
}

// Lines returns the debug view as plain text lines.
func (d DebugInfo) Lines() []string {
	lines := make([]string, 0, 2+len(d.Bits))
	lines = append(lines, d.Raw, d.Key)
	return append(lines, d.Bits...)
}

var (
	debugRaw    = ansi.ColorFunc("cyan")
	debugKey    = ansi.ColorFunc("yellow+b")
	debugBitOn  = ansi.ColorFunc("green+b")
	debugBitOff = ansi.ColorFunc("black+h")
)

// FormatDebug renders the debug view, one line per row, optionally with
// ANSI colors.
func FormatDebug(d DebugInfo, color bool) string {
	if !color {
		return strings.Join(d.Lines(), "\n")
	}
	var sb strings.Builder
	sb.WriteString(debugRaw(d.Raw))
	sb.WriteByte('\n')
	sb.WriteString(debugKey(d.Key))
	for _, row := range d.Bits {
		sb.WriteByte('\n')
		for _, c := range row {
			if c == '1' {
				sb.WriteString(debugBitOn("1"))
			} else {
				sb.WriteString(debugBitOff(string(c)))
			}
		}
	}
	return sb.String()
}

// HeldKeys lists the canonical names of the held keys among ids.
func HeldKeys(s *KeyState, ids ...KeyID) []string {
	var held []string
	for _, id := range ids {
		if s.Test(id) {
			held = append(held, id.String())
		}
	}
	return held
}

// WellKnownIDs returns the ids of all keys in the table, in table order.
func WellKnownIDs(t *Table) []KeyID {
	keys := t.Keys()
	ids := make([]KeyID, len(keys))
	for i, k := range keys {
		ids[i] = ID(k)
	}
	return ids
}
