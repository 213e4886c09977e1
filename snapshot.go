package rl

// EventKind is the kind of input event a Snapshot was taken for.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventMouseWheel
	EventKeyDown
	EventKeyPress
	EventKeyUp
)

var eventKindNames = [...]string{
	EventNone:       "",
	EventMouseDown:  "md",
	EventMouseUp:    "mu",
	EventMouseMove:  "mm",
	EventMouseWheel: "mw",
	EventKeyDown:    "kd",
	EventKeyPress:   "kp",
	EventKeyUp:      "ku",
}

// String returns the abbreviated kind, for example "kd" for a key down.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "?"
}

// IsKey reports whether the kind is a keyboard event.
func (k EventKind) IsKey() bool {
	return k >= EventKeyDown && k <= EventKeyUp
}

// IsMouse reports whether the kind is a mouse event.
func (k EventKind) IsMouse() bool {
	return k >= EventMouseDown && k <= EventMouseWheel
}

// Pointer is a mouse position relative to the viewport.
type Pointer struct {
	RX, RY int  // relative to the top left pixel of the viewport
	CX, CY int  // RX and RY capped to the viewport
	Inside bool // the mouse is inside the viewport
}

// Snapshot is the complete input state after one raw event. A snapshot owns
// its button and key state; later input does not change it.
type Snapshot struct {
	Kind    EventKind
	Tick    uint64
	Pointer Pointer
	Buttons MouseButtons
	Keys    *KeyState
	Key     KeyID  // KeyNone for mouse events
	Char    string // printable character, or ""
}

// Capture builds a snapshot, cloning keys.
func Capture(kind EventKind, tick uint64, p Pointer, buttons MouseButtons, keys *KeyState, key KeyID, char string) *Snapshot {
	return &Snapshot{
		Kind:    kind,
		Tick:    tick,
		Pointer: p,
		Buttons: buttons,
		Keys:    keys.Clone(),
		Key:     key,
		Char:    char,
	}
}

// EmptySnapshot returns a snapshot with nothing pressed.
func EmptySnapshot(reg *Registry) *Snapshot {
	return &Snapshot{Keys: reg.NewKeyState(), Key: ID(KeyNone)}
}

// Clone returns an independent copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Keys = s.Keys.Clone()
	return &c
}

// KeyPressed reports whether the key went from released in prev to held in curr.
func KeyPressed(prev, curr *Snapshot, id KeyID) bool {
	return !prev.Keys.Test(id) && curr.Keys.Test(id)
}

// KeyReleased reports whether the key went from held in prev to released in curr.
func KeyReleased(prev, curr *Snapshot, id KeyID) bool {
	return prev.Keys.Test(id) && !curr.Keys.Test(id)
}

// ButtonPressed reports whether the button went from up in prev to down in curr.
func ButtonPressed(prev, curr *Snapshot, b Button) bool {
	return !prev.Buttons.Get(b) && curr.Buttons.Get(b)
}

// ButtonReleased reports whether the button went from down in prev to up in curr.
func ButtonReleased(prev, curr *Snapshot, b Button) bool {
	return prev.Buttons.Get(b) && !curr.Buttons.Get(b)
}
