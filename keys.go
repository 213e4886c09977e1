package rl

import (
	"strconv"
	"strings"
)

// Key is a well known logical key, independent of how a browser or terminal
// reported it.
type Key uint16

const (
	KeyUnknown Key = iota // character input from a key that is not well known
	KeyNone               // mouse events carry this id
	KeyChar               // character-derived id, see CharID

	KeyEsc
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock
	KeyPause

	KeyD0
	KeyD1
	KeyD2
	KeyD3
	KeyD4
	KeyD5
	KeyD6
	KeyD7
	KeyD8
	KeyD9

	KeyLA
	KeyLB
	KeyLC
	KeyLD
	KeyLE
	KeyLF
	KeyLG
	KeyLH
	KeyLI
	KeyLJ
	KeyLK
	KeyLL
	KeyLM
	KeyLN
	KeyLO
	KeyLP
	KeyLQ
	KeyLR
	KeyLS
	KeyLT
	KeyLU
	KeyLV
	KeyLW
	KeyLX
	KeyLY
	KeyLZ

	KeyBackspace
	KeyTab
	KeyCapsLock
	KeyEnter
	KeySpace

	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyArrowLeft
	KeyArrowUp
	KeyArrowRight
	KeyArrowDown

	KeyNumLock
	KeyN0
	KeyN1
	KeyN2
	KeyN3
	KeyN4
	KeyN5
	KeyN6
	KeyN7
	KeyN8
	KeyN9
	KeyNDivide
	KeyNMultiply
	KeyNSubtract
	KeyNAdd
	KeyNEnter
	KeyNDecimal

	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftOS
	KeyRightOS
	KeyMetaLeft
	KeyMetaRight

	// Location-less modifier releases, reported on key-up when the host
	// cannot tell the left key from the right one.
	KeyReleaseShift
	KeyReleaseControl
	KeyReleaseAlt
	KeyReleaseOS

	// Punctuation keys, only present in tables built with PunctuationDistinct.
	KeyGrave
	KeyMinus
	KeyEqual
	KeyBracketLeft
	KeyBracketRight
	KeyBackslash
	KeySemicolon
	KeyQuote
	KeyComma
	KeyPeriod
	KeySlash

	keyCount
)

var keyNames = buildKeyNames()

var keyByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		m[name] = Key(k)
	}
	return m
}()

func buildKeyNames() []string {
	names := make([]string, keyCount)
	names[KeyUnknown] = "Unknown"
	names[KeyNone] = "None"
	names[KeyChar] = charPrefix
	names[KeyEsc] = "Esc"
	for i := 0; i < 12; i++ {
		names[KeyF1+Key(i)] = "F" + strconv.Itoa(i+1)
	}
	for i := 0; i < 10; i++ {
		names[KeyD0+Key(i)] = "D" + strconv.Itoa(i)
		names[KeyN0+Key(i)] = "N" + strconv.Itoa(i)
	}
	for i := 0; i < 26; i++ {
		names[KeyLA+Key(i)] = "L" + string(rune('A'+i))
	}
	for k, name := range map[Key]string{
		KeyPrintScreen:    "PrintScreen",
		KeyScrollLock:     "ScrollLock",
		KeyPause:          "Pause",
		KeyBackspace:      "Backspace",
		KeyTab:            "Tab",
		KeyCapsLock:       "CapsLock",
		KeyEnter:          "Enter",
		KeySpace:          "Space",
		KeyInsert:         "Insert",
		KeyHome:           "Home",
		KeyPageUp:         "PageUp",
		KeyDelete:         "Delete",
		KeyEnd:            "End",
		KeyPageDown:       "PageDown",
		KeyArrowLeft:      "Left",
		KeyArrowUp:        "Up",
		KeyArrowRight:     "Right",
		KeyArrowDown:      "Down",
		KeyNumLock:        "NumLock",
		KeyNDivide:        "N/",
		KeyNMultiply:      "N*",
		KeyNSubtract:      "N-",
		KeyNAdd:           "N+",
		KeyNEnter:         "NEnter",
		KeyNDecimal:       "ND",
		KeyLeftShift:      "LeftShift",
		KeyRightShift:     "RightShift",
		KeyLeftControl:    "LeftControl",
		KeyRightControl:   "RightControl",
		KeyLeftAlt:        "LeftAlt",
		KeyRightAlt:       "RightAlt",
		KeyLeftOS:         "LeftOS",
		KeyRightOS:        "RightOS",
		KeyMetaLeft:       "MetaLeft",
		KeyMetaRight:      "MetaRight",
		KeyReleaseShift:   "ReleaseShift",
		KeyReleaseControl: "ReleaseControl",
		KeyReleaseAlt:     "ReleaseAlt",
		KeyReleaseOS:      "ReleaseOS",
	} {
		names[k] = name
	}
	for k, c := range punctuationChars {
		names[k] = c
	}
	return names
}

// punctuationChars holds the character each distinct punctuation key produces
// on a US layout. The character doubles as the key's canonical name.
var punctuationChars = map[Key]string{
	KeyGrave:        "`",
	KeyMinus:        "-",
	KeyEqual:        "=",
	KeyBracketLeft:  "[",
	KeyBracketRight: "]",
	KeyBackslash:    "\\",
	KeySemicolon:    ";",
	KeyQuote:        "'",
	KeyComma:        ",",
	KeyPeriod:       ".",
	KeySlash:        "/",
}

// String returns the canonical name of the key, for example "LeftShift" or "N+".
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// ParseKey returns the key with the given canonical name.
func ParseKey(name string) (Key, bool) {
	k, ok := keyByName[name]
	return k, ok
}

// Modifier is a modifier key kind.
type Modifier uint8

const (
	ModShift Modifier = iota
	ModControl
	ModAlt
	ModOS
	ModMeta
)

// Side tells the left modifier variant from the right one.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

var modifierKeys = [...][2]Key{
	ModShift:   {KeyLeftShift, KeyRightShift},
	ModControl: {KeyLeftControl, KeyRightControl},
	ModAlt:     {KeyLeftAlt, KeyRightAlt},
	ModOS:      {KeyLeftOS, KeyRightOS},
	ModMeta:    {KeyMetaLeft, KeyMetaRight},
}

var releaseKeys = map[Key]Modifier{
	KeyReleaseShift:   ModShift,
	KeyReleaseControl: ModControl,
	KeyReleaseAlt:     ModAlt,
	KeyReleaseOS:      ModOS,
}

// ModifierKey returns the key for one side of a modifier.
func ModifierKey(m Modifier, s Side) Key {
	return modifierKeys[m][s]
}

// Modifier reports whether k is a left or right modifier key.
func (k Key) Modifier() (Modifier, Side, bool) {
	for m, pair := range modifierKeys {
		for s, mk := range pair {
			if mk == k {
				return Modifier(m), Side(s), true
			}
		}
	}
	return 0, 0, false
}

// Released reports whether k is a location-less release pseudo-key, and for
// which modifier.
func (k Key) Released() (Modifier, bool) {
	m, ok := releaseKeys[k]
	return m, ok
}

// charPrefix marks character-derived ids in their string form.
const charPrefix = "UC_"

// KeyID is a canonical key id. It is either a well known Key, or, when
// Key is KeyChar, the character carried in Char. The latter stands for
// input whose physical source key is not known.
type KeyID struct {
	Key  Key
	Char string
}

// ID returns the id of a well known key.
func ID(k Key) KeyID {
	return KeyID{Key: k}
}

// CharID returns the character-derived id for c.
func CharID(c string) KeyID {
	return KeyID{Key: KeyChar, Char: c}
}

// ParseKeyID turns a canonical name ("D5", "LeftShift", "UC_€") into an id.
// Names that are not canonical become character ids.
func ParseKeyID(name string) KeyID {
	if strings.HasPrefix(name, charPrefix) && len(name) > len(charPrefix) {
		return CharID(name[len(charPrefix):])
	}
	if k, ok := ParseKey(name); ok && k != KeyChar {
		return ID(k)
	}
	return CharID(name)
}

// String returns the canonical name of the id.
func (id KeyID) String() string {
	if id.Key == KeyChar {
		return charPrefix + id.Char
	}
	return id.Key.String()
}

// IsChar reports whether the id is character-derived.
func (id KeyID) IsChar() bool {
	return id.Key == KeyChar
}

// fallback is the character-derived id that stands in for id when id itself
// has no bit.
func (id KeyID) fallback() KeyID {
	switch {
	case id.Key == KeyChar:
		return id
	case punctuationChars[id.Key] != "":
		return CharID(punctuationChars[id.Key])
	default:
		return CharID(id.Key.String())
	}
}
