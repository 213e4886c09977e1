package rl

// Button is a mouse button or wheel direction.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonWheelUp:
		return "wheelUp"
	case ButtonWheelDown:
		return "wheelDown"
	}
	return "unknown"
}

// ButtonFromID translates a raw mouse button number (0 left, 1 middle,
// 2 right, 3 wheel down, 4 wheel up).
func ButtonFromID(id int) (Button, bool) {
	switch id {
	case 0:
		return ButtonLeft, true
	case 1:
		return ButtonMiddle, true
	case 2:
		return ButtonRight, true
	case 3:
		return ButtonWheelDown, true
	case 4:
		return ButtonWheelUp, true
	}
	return 0, false
}

// MouseButtons is the state of the mouse buttons. WheelUp and WheelDown are
// only set for the single event that reported the wheel movement.
// Copying a MouseButtons copies the state.
type MouseButtons struct {
	Left      bool
	Middle    bool
	Right     bool
	WheelUp   bool
	WheelDown bool
}

// Get reports whether the button is down.
func (mb MouseButtons) Get(b Button) bool {
	switch b {
	case ButtonLeft:
		return mb.Left
	case ButtonMiddle:
		return mb.Middle
	case ButtonRight:
		return mb.Right
	case ButtonWheelUp:
		return mb.WheelUp
	case ButtonWheelDown:
		return mb.WheelDown
	}
	return false
}

func (mb *MouseButtons) set(b Button, down bool) {
	switch b {
	case ButtonLeft:
		mb.Left = down
	case ButtonMiddle:
		mb.Middle = down
	case ButtonRight:
		mb.Right = down
	case ButtonWheelUp:
		mb.WheelUp = down
	case ButtonWheelDown:
		mb.WheelDown = down
	}
}

// MouseEventKind is the kind of a raw mouse event.
type MouseEventKind uint8

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseMove
	MouseWheel
)

// RawMouseEvent is mouse event data as a host reported it.
type RawMouseEvent struct {
	Kind   MouseEventKind
	X, Y   int // position in host coordinates
	Button int // raw button number, see ButtonFromID
	Delta  int // wheel movement, positive scrolls down
}
