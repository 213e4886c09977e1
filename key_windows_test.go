//go:build windows

package rl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVirtualKeyID(t *testing.T) {
	tests := []struct {
		name     string
		vk, scan uint16
		state    uint32
		id       string
		loc      Location
	}{
		{"letter", 'A', 0x1E, 0, "A", LocationStandard},
		{"digit", '5', 0x06, 0, "5", LocationStandard},
		{"numpad digit", 0x65, 0x4C, 0, "5", LocationNumpad},
		{"f11", 0x7A, 0x57, 0, "F11", LocationStandard},
		{"left shift", 0x10, 0x2A, 0, "Shift", LocationLeft},
		{"right shift", 0x10, 0x36, 0, "Shift", LocationRight},
		{"left control", 0x11, 0x1D, 0, "Control", LocationLeft},
		{"right control", 0x11, 0x1D, enhancedKey, "Control", LocationRight},
		{"right alt", 0x12, 0x38, enhancedKey, "Alt", LocationRight},
		{"left windows", 0x5B, 0x5B, enhancedKey, "OS", LocationLeft},
		{"arrow", 0x26, 0x48, enhancedKey, "Up", LocationStandard},
		{"numpad arrow", 0x26, 0x48, 0, "Up", LocationNumpad},
		{"numpad enter", 0x0D, 0x1C, enhancedKey, "Enter", LocationNumpad},
		{"enter", 0x0D, 0x1C, 0, "Enter", LocationStandard},
		{"semicolon", 0xBA, 0x27, 0, "U+00BA", LocationStandard},
		{"minus", 0xBD, 0x0C, 0, "U+00BD", LocationStandard},
		{"grave", 0xC0, 0x29, 0, "U+00C0", LocationStandard},
		{"quote", 0xDE, 0x28, 0, "U+00DE", LocationStandard},
		{"unknown", 0xE2, 0x56, 0, "Unidentified", LocationStandard},
	}
	tab := MustTable(PunctuationDistinct)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, loc := virtualKeyID(tt.vk, tt.scan, tt.state)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.loc, loc)
			if tt.id != "Unidentified" {
				assert.NotEqual(t, ID(KeyUnknown), tab.Resolve(id, loc))
			}
		})
	}
}

func TestConsoleKeyEvents(t *testing.T) {
	down := keyEventRecord{bKeyDown: 1, wVirtualKeyCode: 'A', uChar: [2]byte{'a', 0}}
	events := consoleKeyEvents(down)
	assert.Len(t, events, 2)
	assert.Equal(t, KeyDown, events[0].Key.Kind)
	assert.Equal(t, KeyPress, events[1].Key.Kind)
	assert.Equal(t, "a", events[1].Key.Char)

	up := down
	up.bKeyDown = 0
	events = consoleKeyEvents(up)
	assert.Len(t, events, 1)
	assert.Equal(t, RawKeyEvent{Kind: KeyUp, ID: "A", Code: 'A'}, events[0].Key)
}

func TestVirtualKeyPunctuation(t *testing.T) {
	distinct := MustTable(PunctuationDistinct)
	fallback := MustTable(PunctuationFallback)
	want := map[uint16]Key{
		0xBA: KeySemicolon,
		0xBB: KeyEqual,
		0xBC: KeyComma,
		0xBD: KeyMinus,
		0xBE: KeyPeriod,
		0xBF: KeySlash,
		0xC0: KeyGrave,
		0xDB: KeyBracketLeft,
		0xDC: KeyBackslash,
		0xDD: KeyBracketRight,
		0xDE: KeyQuote,
	}
	for vk, k := range want {
		id, loc := virtualKeyID(vk, 0, 0)
		assert.Equal(t, ID(k), distinct.Resolve(id, loc), "vk %#x", vk)
		assert.Equal(t, ID(KeyUnknown), fallback.Resolve(id, loc), "vk %#x", vk)
	}
}
