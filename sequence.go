package rl

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TermEvent is one raw event decoded from terminal input.
type TermEvent struct {
	IsMouse bool
	Key     RawKeyEvent
	Mouse   RawMouseEvent

	// IsFocus marks a focus report; Focused tells gained from lost.
	IsFocus bool
	Focused bool
}

// termKey is a terminal key in the vocabulary of the identifier table.
type termKey struct {
	id   string
	loc  Location
	code int
}

// Key codes follow the DOM keyCode values where one exists. Other printable
// characters get charCodeBase plus their code point.
const charCodeBase = 1 << 16

var (
	keyShift   = termKey{"Shift", LocationLeft, 16}
	keyControl = termKey{"Control", LocationLeft, 17}
	keyAlt     = termKey{"Alt", LocationLeft, 18}
	keyOS      = termKey{"OS", LocationLeft, 91}
)

// CSI and SS3 sequences ending in a letter
var finalKeys = map[byte]termKey{
	'A': {"Up", LocationStandard, 38},
	'B': {"Down", LocationStandard, 40},
	'C': {"Right", LocationStandard, 39},
	'D': {"Left", LocationStandard, 37},
	'H': {"Home", LocationStandard, 36},
	'F': {"End", LocationStandard, 35},
	'E': {"Clear", LocationNumpad, 12},
	'P': {"F1", LocationStandard, 112},
	'Q': {"F2", LocationStandard, 113},
	'R': {"F3", LocationStandard, 114},
	'S': {"F4", LocationStandard, 115},
}

// CSI sequences of the form ESC [ n ~
var tildeKeys = map[int]termKey{
	1:  {"Home", LocationStandard, 36},
	2:  {"Insert", LocationStandard, 45},
	3:  {"Del", LocationStandard, 46},
	4:  {"End", LocationStandard, 35},
	5:  {"PageUp", LocationStandard, 33},
	6:  {"PageDown", LocationStandard, 34},
	7:  {"Home", LocationStandard, 36},
	8:  {"End", LocationStandard, 35},
	11: {"F1", LocationStandard, 112},
	12: {"F2", LocationStandard, 113},
	13: {"F3", LocationStandard, 114},
	14: {"F4", LocationStandard, 115},
	15: {"F5", LocationStandard, 116},
	17: {"F6", LocationStandard, 117},
	18: {"F7", LocationStandard, 118},
	19: {"F8", LocationStandard, 119},
	20: {"F9", LocationStandard, 120},
	21: {"F10", LocationStandard, 121},
	23: {"F11", LocationStandard, 122},
	24: {"F12", LocationStandard, 123},
}

// Bracketed paste markers (ESC [200~ and ESC [201~) produce no events.
const (
	pasteStart = 200
	pasteEnd   = 201
)

// Single control bytes
var controlKeys = map[byte]termKey{
	9:   {"Tab", LocationStandard, 9},
	10:  {"Enter", LocationStandard, 13},
	13:  {"Enter", LocationStandard, 13},
	27:  {"Esc", LocationStandard, 27},
	8:   {"Backspace", LocationStandard, 8},
	127: {"Backspace", LocationStandard, 8},
}

// ParseSequence decodes a chunk of terminal input into raw events. Terminals
// report no key releases, so every key yields a down, a press when it
// produces a character, and an up. Modifiers go down at the left location
// and come up without a location, the way some browsers report them.
// An unfinished sequence at the end of b is decoded as far as possible.
func ParseSequence(b []byte) []TermEvent {
	p := seqParser{}
	p.run(b)
	return p.events
}

// DecodeSequence is like ParseSequence, but stops before an unfinished
// escape sequence or UTF-8 character at the end of b and returns it as rest.
func DecodeSequence(b []byte) (events []TermEvent, rest []byte) {
	p := seqParser{partial: true}
	rest = p.run(b)
	return p.events, rest
}

type seqParser struct {
	events  []TermEvent
	partial bool // leave an unfinished tail undecoded
}

func (p *seqParser) run(b []byte) []byte {
	for len(b) > 0 {
		n := p.next(b)
		if n == 0 {
			break
		}
		b = b[n:]
	}
	return b
}

// maxPending bounds the tail a SeqBuffer holds back. A longer unfinished
// sequence is not a real one.
const maxPending = 256

// SeqBuffer decodes terminal input that arrives in chunks of any size,
// holding back a sequence that was split between two reads.
type SeqBuffer struct {
	pending []byte
}

// Feed decodes the pending tail followed by b. Feeding no bytes, as after
// a read timeout, decodes whatever is pending.
func (sb *SeqBuffer) Feed(b []byte) []TermEvent {
	if len(b) == 0 {
		return sb.Flush()
	}
	data := append(sb.pending, b...)
	events, rest := DecodeSequence(data)
	if len(rest) > maxPending {
		events = append(events, ParseSequence(rest)...)
		rest = nil
	}
	sb.pending = append([]byte(nil), rest...)
	return events
}

// Flush decodes and drops the pending tail.
func (sb *SeqBuffer) Flush() []TermEvent {
	if len(sb.pending) == 0 {
		return nil
	}
	events := ParseSequence(sb.pending)
	sb.pending = nil
	return events
}

// Pending returns the number of bytes held back.
func (sb *SeqBuffer) Pending() int {
	return len(sb.pending)
}

// next decodes one token at the start of b and returns its length, or 0
// when b holds only the start of a token and the parser keeps partial input.
func (p *seqParser) next(b []byte) int {
	if b[0] == 27 {
		if len(b) == 1 {
			if p.partial {
				return 0
			}
			p.key(controlKeys[27], "", nil)
			return 1
		}
		switch b[1] {
		case '[':
			if n := p.csi(b); n > 0 {
				return n
			}
			if p.partial {
				return 0
			}
		case 'O':
			if len(b) >= 3 {
				if k, ok := finalKeys[b[2]]; ok {
					p.key(k, "", nil)
					return 3
				}
			} else if p.partial {
				return 0
			}
		case 27:
			p.key(controlKeys[27], "", nil)
			return 1
		default:
			// ESC followed by a key is Alt plus that key.
			if k, ok := controlKeys[b[1]]; ok {
				p.key(k, "", []termKey{keyAlt})
				return 2
			}
			n := p.text(b[1:], []termKey{keyAlt})
			if n == 0 {
				return 0
			}
			return 1 + n
		}
		p.key(controlKeys[27], "", nil)
		return 1
	}
	if k, ok := controlKeys[b[0]]; ok {
		p.key(k, "", nil)
		return 1
	}
	switch {
	case b[0] == 0:
		p.key(termKey{" ", LocationStandard, 32}, "", []termKey{keyControl})
		return 1
	case b[0] >= 1 && b[0] <= 26:
		c := 'a' + rune(b[0]-1)
		p.key(termKey{string(c), LocationStandard, int(unicode.ToUpper(c))}, "", []termKey{keyControl})
		return 1
	case b[0] < 32:
		p.key(termKey{"Unidentified", LocationStandard, int(b[0])}, "", []termKey{keyControl})
		return 1
	}
	return p.text(b, nil)
}

// text decodes one UTF-8 character.
func (p *seqParser) text(b []byte, mods []termKey) int {
	if p.partial && !utf8.FullRune(b) {
		return 0
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		p.key(termKey{"Unidentified", LocationStandard, charCodeBase + int(r)}, "", mods)
		return max(n, 1)
	}
	k := termKey{string(r), LocationStandard, charCodeBase + int(r)}
	switch {
	case r >= 'a' && r <= 'z':
		k.code = int(unicode.ToUpper(r))
	case r >= 'A' && r <= 'Z':
		k.code = int(r)
		mods = append(mods, keyShift)
	case r >= '0' && r <= '9', r == ' ':
		k.code = int(r)
	}
	p.key(k, string(r), mods)
	return n
}

// csi decodes ESC [ params final. It returns 0 if b holds no complete sequence.
func (p *seqParser) csi(b []byte) int {
	end := -1
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7E {
			end = i
			break
		}
	}
	if end < 0 {
		return 0
	}
	params := string(b[2:end])
	final := b[end]
	n := end + 1

	if strings.HasPrefix(params, "<") && (final == 'M' || final == 'm') {
		p.mouse(params[1:], final == 'M')
		return n
	}

	if params == "" && (final == 'I' || final == 'O') {
		p.events = append(p.events, TermEvent{IsFocus: true, Focused: final == 'I'})
		return n
	}

	fields := strings.Split(params, ";")
	nums := make([]int, len(fields))
	for i, f := range fields {
		nums[i], _ = strconv.Atoi(f)
	}
	var mods []termKey
	if len(nums) > 1 {
		mods = modifierParam(nums[1])
	}

	if final == '~' {
		if nums[0] == pasteStart || nums[0] == pasteEnd {
			return n
		}
		if k, ok := tildeKeys[nums[0]]; ok {
			p.key(k, "", mods)
			return n
		}
	} else if k, ok := finalKeys[final]; ok {
		p.key(k, "", mods)
		return n
	} else if final == 'Z' {
		p.key(controlKeys[9], "", append(mods, keyShift))
		return n
	}
	p.key(termKey{"Unidentified", LocationStandard, 0}, "", mods)
	return n
}

// modifierParam decodes the xterm modifier parameter (1 + bitmask).
func modifierParam(m int) []termKey {
	m--
	if m <= 0 {
		return nil
	}
	var mods []termKey
	if m&4 != 0 {
		mods = append(mods, keyControl)
	}
	if m&2 != 0 {
		mods = append(mods, keyAlt)
	}
	if m&1 != 0 {
		mods = append(mods, keyShift)
	}
	if m&8 != 0 {
		mods = append(mods, keyOS)
	}
	return mods
}

// mouse decodes the parameters of an SGR mouse report: button;x;y.
func (p *seqParser) mouse(params string, press bool) {
	fields := strings.Split(params, ";")
	if len(fields) != 3 {
		return
	}
	var nums [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return
		}
		nums[i] = v
	}
	cb := nums[0]
	ev := RawMouseEvent{X: nums[1] - 1, Y: nums[2] - 1, Button: cb & 3}
	switch {
	case cb&64 != 0:
		ev.Kind = MouseWheel
		ev.Delta = -1
		if cb&1 != 0 {
			ev.Delta = 1
		}
	case cb&32 != 0:
		ev.Kind = MouseMove
	case press:
		ev.Kind = MouseDown
	default:
		ev.Kind = MouseUp
	}
	p.events = append(p.events, TermEvent{IsMouse: true, Mouse: ev})
}

// key emits the down, press and up events of one key, wrapped in the
// modifier downs and ups.
func (p *seqParser) key(k termKey, char string, mods []termKey) {
	for _, m := range mods {
		p.emit(RawKeyEvent{Kind: KeyDown, ID: m.id, Location: m.loc, Code: m.code})
	}
	p.emit(RawKeyEvent{Kind: KeyDown, ID: k.id, Location: k.loc, Code: k.code, Char: char})
	if char != "" {
		p.emit(RawKeyEvent{Kind: KeyPress, ID: k.id, Location: k.loc, Code: k.code, Char: char})
	}
	p.emit(RawKeyEvent{Kind: KeyUp, ID: k.id, Location: k.loc, Code: k.code})
	for i := len(mods) - 1; i >= 0; i-- {
		m := mods[i]
		p.emit(RawKeyEvent{Kind: KeyUp, ID: m.id, Location: LocationStandard, Code: m.code})
	}
}

func (p *seqParser) emit(ev RawKeyEvent) {
	p.events = append(p.events, TermEvent{Key: ev})
}
