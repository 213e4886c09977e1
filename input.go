package rl

import "log/slog"

// Viewport is the area input coordinates are measured against, in host
// coordinates.
type Viewport struct {
	Left, Top     int
	Width, Height int
}

// locate returns the pointer for a position in host coordinates.
func (vp Viewport) locate(x, y int) Pointer {
	rx, ry := x-vp.Left, y-vp.Top
	return Pointer{
		RX:     rx,
		RY:     ry,
		CX:     capValue(0, rx, vp.Width-1),
		CY:     capValue(0, ry, vp.Height-1),
		Inside: rx >= 0 && ry >= 0 && rx < vp.Width && ry < vp.Height,
	}
}

func capValue(lo, v, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

// Handler receives the previous and the current snapshot after every raw
// event. The handler owns curr.
type Handler func(prev, curr *Snapshot)

// Input dispatches raw keyboard and mouse events of one consumer, keeps its
// live input state and hands a snapshot to the handler for every event.
// An Input is not safe for concurrent use.
type Input struct {
	resolver *Resolver
	reg      *Registry
	buttons  MouseButtons
	pointer  Pointer
	viewport Viewport
	tick     uint64
	prev     *Snapshot
	handler  Handler
	logger   *slog.Logger
}

// NewInput creates an input dispatcher. A nil handler is allowed.
func NewInput(t *Table, reg *Registry, vp Viewport, h Handler, logger *slog.Logger) *Input {
	logger = orDiscard(logger)
	return &Input{
		resolver: NewResolver(t, reg, logger),
		reg:      reg,
		viewport: vp,
		prev:     EmptySnapshot(reg),
		handler:  h,
		logger:   logger,
	}
}

// SetTick sets the logic tick recorded in subsequent snapshots.
func (in *Input) SetTick(tick uint64) {
	in.tick = tick
}

// SetViewport changes the area mouse positions are measured against.
func (in *Input) SetViewport(vp Viewport) {
	in.viewport = vp
}

// Viewport returns the current viewport.
func (in *Input) Viewport() Viewport {
	return in.viewport
}

// HandleKey processes one raw keyboard event.
func (in *Input) HandleKey(ev RawKeyEvent) *Snapshot {
	in.resetWheel()
	res := in.resolver.Resolve(ev)
	kind := EventKeyDown
	switch ev.Kind {
	case KeyPress:
		kind = EventKeyPress
	case KeyUp:
		kind = EventKeyUp
	}
	return in.deliver(Capture(kind, in.tick, in.pointer, in.buttons, in.resolver.Keys(), res.Key, res.Char))
}

// HandleMouse processes one raw mouse event.
func (in *Input) HandleMouse(ev RawMouseEvent) *Snapshot {
	in.resetWheel()
	in.pointer = in.viewport.locate(ev.X, ev.Y)

	var kind EventKind
	switch ev.Kind {
	case MouseDown, MouseUp:
		kind = EventMouseDown
		if ev.Kind == MouseUp {
			kind = EventMouseUp
		}
		if b, ok := ButtonFromID(ev.Button); ok {
			in.buttons.set(b, ev.Kind == MouseDown)
		} else {
			in.logger.Debug("ignoring unknown mouse button", "button", ev.Button)
		}
	case MouseWheel:
		kind = EventMouseWheel
		switch {
		case ev.Delta > 0:
			in.buttons.WheelDown = true
		case ev.Delta < 0:
			in.buttons.WheelUp = true
		}
	default:
		kind = EventMouseMove
	}
	return in.deliver(Capture(kind, in.tick, in.pointer, in.buttons, in.resolver.Keys(), ID(KeyNone), ""))
}

// HandleTerm processes one event decoded from terminal input. A focus
// change resets all input state, since releases may have gone elsewhere.
func (in *Input) HandleTerm(ev TermEvent) *Snapshot {
	if ev.IsFocus {
		in.logger.Debug("focus changed, resetting input", "focused", ev.Focused)
		in.Reset()
		return in.State()
	}
	if ev.IsMouse {
		return in.HandleMouse(ev.Mouse)
	}
	return in.HandleKey(ev.Key)
}

func (in *Input) resetWheel() {
	in.buttons.WheelUp = false
	in.buttons.WheelDown = false
}

func (in *Input) deliver(curr *Snapshot) *Snapshot {
	prev := in.prev
	in.prev = curr
	if in.handler != nil {
		in.handler(prev, curr)
	}
	return curr
}

// State returns the snapshot of the last processed event.
func (in *Input) State() *Snapshot {
	return in.prev
}

// Keys returns the live key state.
func (in *Input) Keys() *KeyState {
	return in.resolver.Keys()
}

// Resolver returns the resolver that owns the live key state.
func (in *Input) Resolver() *Resolver {
	return in.resolver
}

// Reset releases all buttons and keys, for when the host window gains or
// loses focus and release events may have been missed.
func (in *Input) Reset() {
	in.buttons = MouseButtons{}
	in.resolver.Reset()
	in.prev = EmptySnapshot(in.reg)
}
