package rl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Location is the keyboard section a raw key event reported.
type Location uint8

const (
	LocationStandard Location = iota
	LocationLeft
	LocationRight
	LocationNumpad

	locationCount
)

// PunctuationPolicy decides how punctuation keys on the main keyboard section
// are identified.
type PunctuationPolicy uint8

const (
	// PunctuationFallback leaves punctuation out of the table, so that it is
	// identified by the character it produces ("UC_-").
	PunctuationFallback PunctuationPolicy = iota
	// PunctuationDistinct gives each US-layout punctuation key its own id ("-").
	PunctuationDistinct
)

// ErrBadPunctuationPolicy is returned for an unrecognized policy name.
var ErrBadPunctuationPolicy = errors.New("unknown punctuation policy")

// ErrBadLocation is returned for an alias with a location outside 0-3.
var ErrBadLocation = errors.New("key location out of range")

func (p PunctuationPolicy) String() string {
	if p == PunctuationDistinct {
		return "distinct"
	}
	return "fallback"
}

// ParsePunctuationPolicy parses "fallback" or "distinct". The empty string
// selects the fallback policy.
func ParsePunctuationPolicy(s string) (PunctuationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fallback":
		return PunctuationFallback, nil
	case "distinct":
		return PunctuationDistinct, nil
	}
	return PunctuationFallback, fmt.Errorf("%w: %q", ErrBadPunctuationPolicy, s)
}

// Alias maps one more raw identifier at a location to a canonical key.
type Alias struct {
	Location Location
	Raw      string
	Key      Key
}

type tableEntry struct {
	loc Location
	raw string
	key Key
}

// Table maps raw (identifier, location) pairs to canonical key ids.
// A Table is read-only after construction.
type Table struct {
	lookup [locationCount]map[string]Key
	order  []Key
	policy PunctuationPolicy
}

// NewTable builds the identifier table for the given punctuation policy.
// Aliases are applied last and override built-in entries.
func NewTable(policy PunctuationPolicy, aliases ...Alias) (*Table, error) {
	t := &Table{policy: policy}
	for i := range t.lookup {
		t.lookup[i] = make(map[string]Key)
	}
	seen := make(map[Key]bool)
	add := func(e tableEntry) {
		t.lookup[e.loc][e.raw] = e.key
		if !seen[e.key] {
			seen[e.key] = true
			t.order = append(t.order, e.key)
		}
	}
	for _, e := range standardEntries(policy) {
		add(e)
	}
	// Canonical names identify themselves at the standard location, so a host
	// may feed ids it already resolved.
	for _, k := range append([]Key(nil), t.order...) {
		if _, taken := t.lookup[LocationStandard][k.String()]; !taken {
			t.lookup[LocationStandard][k.String()] = k
		}
	}
	for _, a := range aliases {
		if a.Location >= locationCount {
			return nil, fmt.Errorf("alias %q: %w: %d", a.Raw, ErrBadLocation, a.Location)
		}
		add(tableEntry{a.Location, a.Raw, a.Key})
	}
	return t, nil
}

// MustTable is like NewTable without aliases, which cannot fail.
func MustTable(policy PunctuationPolicy) *Table {
	t, _ := NewTable(policy)
	return t
}

// Resolve returns the canonical id for a raw identifier at a location, or the
// Unknown id when there is no entry.
func (t *Table) Resolve(raw string, loc Location) KeyID {
	if loc >= locationCount {
		return ID(KeyUnknown)
	}
	if k, ok := t.lookup[loc][raw]; ok {
		return ID(k)
	}
	return ID(KeyUnknown)
}

// Keys returns every canonical key in the table, in first-seen order.
func (t *Table) Keys() []Key {
	return append([]Key(nil), t.order...)
}

// Policy returns the punctuation policy the table was built with.
func (t *Table) Policy() PunctuationPolicy {
	return t.policy
}

// Len returns the number of (identifier, location) entries.
func (t *Table) Len() int {
	n := 0
	for _, m := range t.lookup {
		n += len(m)
	}
	return n
}

// standardEntries lists the cross-browser identifiers: legacy keyIdentifier
// values ("U+0041"), legacy and current key values, per location.
func standardEntries(policy PunctuationPolicy) []tableEntry {
	const (
		std = LocationStandard
		lft = LocationLeft
		rgt = LocationRight
		num = LocationNumpad
	)
	var es []tableEntry
	add := func(loc Location, k Key, raws ...string) {
		for _, raw := range raws {
			es = append(es, tableEntry{loc, raw, k})
		}
	}
	hex := func(n int) string {
		return fmt.Sprintf("U+%04X", n)
	}

	add(std, KeyEsc, hex(0x1B), "Esc", "Escape")
	for i := 0; i < 12; i++ {
		add(std, KeyF1+Key(i), "F"+strconv.Itoa(i+1))
	}
	add(std, KeyPrintScreen, "PrintScreen")
	add(std, KeyScrollLock, "Scroll", "ScrollLock")
	add(std, KeyPause, "Pause")
	for i := 0; i < 10; i++ {
		add(std, KeyD0+Key(i), hex(0x30+i), strconv.Itoa(i), "Digit"+strconv.Itoa(i))
		if i == 0 {
			add(num, KeyN0, hex(0x60))
		} else {
			add(num, KeyN0+Key(i), hex(0x40+i))
		}
	}
	if policy == PunctuationDistinct {
		add(std, KeyGrave, hex(0xC0), "`", "Backquote")
		add(std, KeyMinus, hex(0xBD), "-", "Minus")
		add(std, KeyEqual, hex(0xBB), "=", "Equal")
	}
	add(std, KeyBackspace, hex(0x08), "Backspace")
	add(std, KeyInsert, "Insert")
	add(std, KeyHome, "Home")
	add(std, KeyPageUp, "PageUp")
	add(num, KeyNumLock, hex(0x90))
	add(std, KeyNumLock, "NumLock")
	add(num, KeyNDivide, hex(0x4F), "/", "Divide", "NumpadDivide")
	add(num, KeyNMultiply, hex(0x4A), "*", "Multiply", "NumpadMultiply")
	add(num, KeyNSubtract, hex(0x4D), "-", "Subtract", "NumpadSubtract")
	add(std, KeyTab, hex(0x09), "Tab")
	for i := 0; i < 26; i++ {
		upper := string(rune('A' + i))
		add(std, KeyLA+Key(i), hex(0x41+i), upper, strings.ToLower(upper), "Key"+upper)
	}
	if policy == PunctuationDistinct {
		add(std, KeyBracketLeft, hex(0xDB), "[", "BracketLeft")
		add(std, KeyBracketRight, hex(0xDD), "]", "BracketRight")
		add(std, KeyBackslash, hex(0xDC), "\\", "Backslash")
	}
	add(std, KeyDelete, hex(0x7F), "Del", "Delete")
	add(std, KeyEnd, "End")
	add(std, KeyPageDown, "PageDown")
	add(num, KeyN7, "Home", "7", "Numpad7")
	add(num, KeyN8, "Up", "ArrowUp", "8", "Numpad8")
	add(num, KeyN9, "PageUp", "9", "Numpad9")
	add(num, KeyNAdd, hex(0x4B), "+", "Add", "NumpadAdd")
	add(std, KeyCapsLock, "CapsLock")
	add(std, KeyEnter, "Enter")
	if policy == PunctuationDistinct {
		add(std, KeySemicolon, hex(0xBA), ";", "Semicolon")
		add(std, KeyQuote, hex(0xDE), "'", "Quote")
	}
	add(num, KeyN4, "Left", "ArrowLeft", "4", "Numpad4")
	add(num, KeyN5, "Clear", "5", "Unidentified", "Numpad5")
	add(num, KeyN6, "Right", "ArrowRight", "6", "Numpad6")
	add(lft, KeyLeftShift, "Shift", "ShiftLeft")
	add(rgt, KeyRightShift, "Shift", "ShiftRight")
	if policy == PunctuationDistinct {
		add(std, KeyComma, hex(0xBC), ",", "Comma")
		add(std, KeyPeriod, hex(0xBE), ".", "Period")
		add(std, KeySlash, hex(0xBF), "/", "Slash")
	}
	add(std, KeyArrowUp, "Up", "ArrowUp")
	add(num, KeyN1, "End", "1", "Numpad1")
	add(num, KeyN2, "Down", "ArrowDown", "2", "Numpad2")
	add(num, KeyN3, "PageDown", "3", "Numpad3")
	add(num, KeyNEnter, "Enter", "NumpadEnter")
	add(lft, KeyLeftControl, "Control", "ControlLeft")
	add(lft, KeyLeftOS, "Win", "OS")
	add(lft, KeyLeftAlt, "Alt", "AltLeft")
	add(std, KeySpace, hex(0x20), "", "Spacebar", " ")
	add(rgt, KeyRightAlt, "Alt", "AltRight", "AltGraph")
	add(rgt, KeyRightOS, "Win", "OS")
	add(rgt, KeyRightControl, "Control", "ControlRight")
	add(std, KeyArrowLeft, "Left", "ArrowLeft")
	add(std, KeyArrowDown, "Down", "ArrowDown")
	add(std, KeyArrowRight, "Right", "ArrowRight")
	add(num, KeyN0, "Insert", "0", "Numpad0")
	add(num, KeyNDecimal, hex(0x7F), ".", ",", hex(0x4E), "Del", "Delete", "Decimal", "NumpadDecimal")
	add(std, KeyReleaseShift, "Shift")
	add(std, KeyReleaseControl, "Control")
	add(std, KeyReleaseAlt, "Alt")
	add(std, KeyReleaseOS, "Win", "OS")
	add(lft, KeyMetaLeft, "Meta", "MetaLeft")
	add(rgt, KeyMetaRight, "Meta", "MetaRight")
	add(std, KeyNone, "None")
	return es
}
