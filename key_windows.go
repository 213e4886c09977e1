//go:build windows

package rl

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

var defaultTimeout = 10 * time.Millisecond

// TTY reads console input records. Unlike a unix terminal, the Windows
// console reports key releases and key locations, so events are passed on
// as they come.
type TTY struct {
	fd      int
	orig    *term.State
	timeout time.Duration
}

// NewTTY opens the console in raw mode. The path is ignored.
func NewTTY(path string) (*TTY, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		f, err := os.OpenFile("CONIN$", os.O_RDWR, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin is not a console and CONIN$ could not be opened: %w", ErrNoTTY, err)
		}
		fd = int(f.Fd())
	}
	orig, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Join(ErrNoTTY, err)
	}
	// MakeRaw turns on virtual terminal input, which would deliver escape
	// sequences instead of key records with virtual key codes.
	handle := windows.Handle(fd)
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err == nil {
		windows.SetConsoleMode(handle, mode&^windows.ENABLE_VIRTUAL_TERMINAL_INPUT)
	}
	return &TTY{fd: fd, orig: orig, timeout: defaultTimeout}, nil
}

// SetTimeout sets how long a read waits for input
func (tty *TTY) SetTimeout(d time.Duration) {
	tty.timeout = d
}

// Timeout returns the configured read timeout
func (tty *TTY) Timeout() time.Duration {
	return tty.timeout
}

// Close restores the console
func (tty *TTY) Close() {
	if tty.orig != nil {
		term.Restore(tty.fd, tty.orig)
	}
}

// WriteString writes a string to the console
func (tty *TTY) WriteString(s string) error {
	if n, err := os.Stdout.WriteString(s); err != nil || n == 0 {
		return errors.New("no bytes written to the TTY")
	}
	return nil
}

type keyEventRecord struct {
	bKeyDown          int32
	wRepeatCount      uint16
	wVirtualKeyCode   uint16
	wVirtualScanCode  uint16
	uChar             [2]byte
	dwControlKeyState uint32
}

type inputRecord struct {
	EventType uint16
	_         [2]byte // alignment padding
	Event     [16]byte
}

const (
	keyEventType   = 0x0001
	focusEventType = 0x0010
	enhancedKey    = 0x0100
	rightShiftSC   = 0x36
)

var procReadConsoleInputW = windows.NewLazySystemDLL("kernel32.dll").NewProc("ReadConsoleInputW")

func readOneConsoleInputRecord(handle windows.Handle) (inputRecord, uint32, error) {
	var rec [1]inputRecord
	var n uint32
	r1, _, _ := procReadConsoleInputW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(&rec[0])),
		1,
		uintptr(unsafe.Pointer(&n)),
	)
	if r1 == 0 {
		return inputRecord{}, 0, errors.New("ReadConsoleInputW failed")
	}
	return rec[0], n, nil
}

// Events waits at most the read timeout for console input and returns the
// key events of all pending records.
func (tty *TTY) Events() ([]TermEvent, error) {
	handle := windows.Handle(tty.fd)
	waitMS := uint32(windows.INFINITE)
	if tty.timeout > 0 {
		waitMS = max(uint32(tty.timeout.Milliseconds()), 1)
	}
	event, err := windows.WaitForSingleObject(handle, waitMS)
	if err != nil {
		return nil, err
	}
	if event == uint32(windows.WAIT_TIMEOUT) {
		return nil, nil
	}
	var events []TermEvent
	for {
		var pending uint32
		if err := windows.GetNumberOfConsoleInputEvents(handle, &pending); err != nil || pending == 0 {
			return events, err
		}
		rec, n, err := readOneConsoleInputRecord(handle)
		if err != nil || n == 0 {
			return events, err
		}
		switch rec.EventType {
		case keyEventType:
			ke := *(*keyEventRecord)(unsafe.Pointer(&rec.Event[0]))
			events = append(events, consoleKeyEvents(ke)...)
		case focusEventType:
			focused := *(*int32)(unsafe.Pointer(&rec.Event[0])) != 0
			events = append(events, TermEvent{IsFocus: true, Focused: focused})
		}
	}
}

// consoleKeyEvents translates one console key record.
func consoleKeyEvents(ke keyEventRecord) []TermEvent {
	id, loc := virtualKeyID(ke.wVirtualKeyCode, ke.wVirtualScanCode, ke.dwControlKeyState)
	r := rune(ke.uChar[0]) | rune(ke.uChar[1])<<8
	var char string
	if r >= 32 {
		char = string(r)
	}
	ev := RawKeyEvent{ID: id, Location: loc, Code: int(ke.wVirtualKeyCode), Char: char}
	if ke.bKeyDown == 0 {
		ev.Kind = KeyUp
		ev.Char = ""
		return []TermEvent{{Key: ev}}
	}
	ev.Kind = KeyDown
	events := []TermEvent{{Key: ev}}
	if char != "" {
		ev.Kind = KeyPress
		events = append(events, TermEvent{Key: ev})
	}
	return events
}

var virtualKeyNames = map[uint16]string{
	0x08: "Backspace",
	0x09: "Tab",
	0x0C: "Clear",
	0x0D: "Enter",
	0x10: "Shift",
	0x11: "Control",
	0x12: "Alt",
	0x13: "Pause",
	0x14: "CapsLock",
	0x1B: "Esc",
	0x20: " ",
	0x21: "PageUp",
	0x22: "PageDown",
	0x23: "End",
	0x24: "Home",
	0x25: "Left",
	0x26: "Up",
	0x27: "Right",
	0x28: "Down",
	0x2C: "PrintScreen",
	0x2D: "Insert",
	0x2E: "Del",
	0x5B: "OS",
	0x5C: "OS",
	0x6A: "*",
	0x6B: "+",
	0x6D: "-",
	0x6E: ".",
	0x6F: "/",
	0x90: "NumLock",
	0x91: "ScrollLock",
}

// virtualKeyID maps a virtual key code to a raw identifier and location.
func virtualKeyID(vk, scan uint16, state uint32) (string, Location) {
	enhanced := state&enhancedKey != 0
	switch {
	case vk >= '0' && vk <= '9', vk >= 'A' && vk <= 'Z':
		return string(rune(vk)), LocationStandard
	case vk >= 0x60 && vk <= 0x69:
		return string(rune('0' + vk - 0x60)), LocationNumpad
	case vk >= 0x70 && vk <= 0x7B:
		return fmt.Sprintf("F%d", vk-0x6F), LocationStandard
	case vk >= 0xBA && vk <= 0xC0, vk >= 0xDB && vk <= 0xDE:
		// OEM punctuation keys carry the legacy keyIdentifier codes.
		return fmt.Sprintf("U+%04X", vk), LocationStandard
	}
	name, ok := virtualKeyNames[vk]
	if !ok {
		return "Unidentified", LocationStandard
	}
	switch vk {
	case 0x10:
		if scan == rightShiftSC {
			return name, LocationRight
		}
		return name, LocationLeft
	case 0x11, 0x12:
		if enhanced {
			return name, LocationRight
		}
		return name, LocationLeft
	case 0x5B:
		return name, LocationLeft
	case 0x5C:
		return name, LocationRight
	case 0x0D:
		if enhanced {
			return name, LocationNumpad
		}
	case 0x0C, 0x6A, 0x6B, 0x6D, 0x6E:
		return name, LocationNumpad
	case 0x6F:
		return name, LocationNumpad
	case 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x2D, 0x2E:
		// Without the enhanced flag these come from the number pad with
		// num lock off.
		if !enhanced {
			return name, LocationNumpad
		}
	}
	return name, LocationStandard
}
