package rl

import (
	"fmt"
	"log/slog"
	"unicode"
	"unicode/utf8"
)

// KeyEventKind is the kind of a raw keyboard event.
type KeyEventKind uint8

const (
	KeyDown  KeyEventKind = iota
	KeyPress              // follows a KeyDown (or repeats it) and carries the printable character
	KeyUp
)

func (k KeyEventKind) String() string {
	switch k {
	case KeyDown:
		return "keydown"
	case KeyPress:
		return "keypress"
	case KeyUp:
		return "keyup"
	}
	return fmt.Sprintf("KeyEventKind(%d)", k)
}

// RawKeyEvent is keyboard event data as a host reported it.
type RawKeyEvent struct {
	Kind     KeyEventKind
	ID       string   // raw key identifier (keyIdentifier or key)
	Location Location // raw key location
	Code     int      // raw numeric key code
	Char     string   // printable character, if the host knows one
}

// Resolution is the outcome of resolving one raw key event.
type Resolution struct {
	Key   KeyID  // the resolved canonical id
	State KeyID  // the id whose state bit changed
	Char  string // the printable character, or ""
}

// Resolver turns raw key events into key state transitions. It owns the
// live key state of one consumer. A Resolver is not safe for concurrent use.
type Resolver struct {
	table *Table
	reg   *Registry
	keys  *KeyState

	// codes remembers the bit set for a raw code, so that the matching up
	// event clears it even if it reports a different identifier.
	codes map[int]Bit

	lastDown     KeyID
	lastDownCode int

	lastRaw string
	lastKey string

	logger *slog.Logger
}

// NewResolver creates a resolver with no keys held.
func NewResolver(t *Table, reg *Registry, logger *slog.Logger) *Resolver {
	return &Resolver{
		table:  t,
		reg:    reg,
		keys:   reg.NewKeyState(),
		codes:  make(map[int]Bit),
		logger: orDiscard(logger),
	}
}

// Resolve applies one raw event to the live key state.
func (r *Resolver) Resolve(ev RawKeyEvent) Resolution {
	char := printable(ev.Char)

	var id KeyID
	if ev.Kind == KeyPress {
		// Hosts do not reliably repeat identifier or location on keypress.
		id = r.lastDown
	} else {
		id = r.table.Resolve(ev.ID, ev.Location)
	}
	if ev.Kind == KeyDown {
		r.lastDown = id
		r.lastDownCode = ev.Code
	}

	state := id
	if char != "" && id.Key == KeyUnknown {
		state = CharID(char)
	}
	code := ev.Code
	if ev.Kind == KeyPress {
		code = r.lastDownCode
	}

	switch ev.Kind {
	case KeyDown, KeyPress:
		r.set(state, code)
	case KeyUp:
		r.clear(state, code)
	}

	r.lastRaw = fmt.Sprintf("rawKeyId: %s keyLoc: %d", ev.ID, ev.Location)
	r.lastKey = fmt.Sprintf("rlKeyId: %s [%s]", id, char)
	r.logger.Debug("key event", "kind", ev.Kind.String(), "raw", ev.ID, "location", ev.Location, "code", ev.Code, "key", id.String(), "state", state.String())

	return Resolution{Key: id, State: state, Char: char}
}

func (r *Resolver) set(id KeyID, code int) {
	b, _, _ := r.reg.ensure(id)
	r.codes[code] = b
	r.keys.setBit(b)
}

func (r *Resolver) clear(id KeyID, code int) {
	b, owner, _ := r.reg.ensure(id)
	r.keys.clearBit(b)

	if remembered, ok := r.codes[code]; ok {
		r.keys.clearBit(remembered)
		delete(r.codes, code)
	}

	if owner.IsChar() {
		r.clearKey(KeyUnknown)
	}

	if m, ok := id.Key.Released(); ok {
		r.clearModifier(m)
	}
	if m, _, ok := id.Key.Modifier(); ok {
		// More than one key of a kind may be held while the host reports a
		// single release.
		r.clearModifier(m)
	}
}

func (r *Resolver) clearKey(k Key) {
	b, _, _ := r.reg.ensure(ID(k))
	r.keys.clearBit(b)
}

func (r *Resolver) clearModifier(m Modifier) {
	r.clearKey(ModifierKey(m, SideLeft))
	r.clearKey(ModifierKey(m, SideRight))
}

// Keys returns the live key state. It changes with every resolved event;
// clone it to keep a copy.
func (r *Resolver) Keys() *KeyState {
	return r.keys
}

// Test reports whether the key is currently held.
func (r *Resolver) Test(id KeyID) bool {
	return r.keys.Test(id)
}

// Reset releases every key and forgets remembered codes, as after the host
// window lost or regained focus.
func (r *Resolver) Reset() {
	r.keys.ClearAll()
	clear(r.codes)
	r.lastDown = KeyID{}
	r.lastDownCode = 0
}

// Debug returns the last raw and resolved event info together with the key
// state bits.
func (r *Resolver) Debug() DebugInfo {
	return DebugInfo{Raw: r.lastRaw, Key: r.lastKey, Bits: r.keys.BitRows()}
}

// printable returns s if it is exactly one printable character.
func printable(s string) string {
	if utf8.RuneCountInString(s) != 1 {
		return ""
	}
	c, _ := utf8.DecodeRuneInString(s)
	if c == utf8.RuneError || !unicode.IsPrint(c) {
		return ""
	}
	return s
}
