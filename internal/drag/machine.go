// Package drag interprets pointer presses, moves and releases on the editor
// grids as reference assignments, moves and deletions.
//
// Geometry and modifier classification live in pure functions (Layout,
// Classify); Machine holds the ephemeral drag session and applies mutations
// to the frame that was current when the drag started.
package drag

import (
	"image/color"

	"github.com/Faultbox/pxref/internal/frame"
	"github.com/Faultbox/pxref/internal/palette"
	"github.com/Faultbox/pxref/internal/resolve"
)

// Document is the state a drag reads and mutates.
type Document interface {
	Frame() *frame.Frame
	Palette() *palette.Palette
}

// State is the machine state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateReleased:
		return "released"
	default:
		return "idle"
	}
}

// Outcome reports what a release did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAssign
	OutcomeMove
	OutcomeDelete
	OutcomeCancel
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAssign:
		return "assign"
	case OutcomeMove:
		return "move"
	case OutcomeDelete:
		return "delete"
	case OutcomeCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Session is one pointer-down to pointer-up interaction. It is never persisted.
type Session struct {
	Start  Point
	Latest Point
	Active bool
	Side   Side

	// StartX, StartY is the grid cell under Start on Side's grid.
	StartX, StartY int
	StartOK        bool

	// Carried is the ref being dragged: the palette slot for palette-side
	// drags, the existing frame reference for frame-side drags.
	Carried  frame.Cell
	Color    color.RGBA
	HasColor bool

	// Mods is the modifier state of the latest tick.
	Mods Modifiers

	// Frame is the frame current at press time. Every mutation of the
	// session goes to it, even if the document's current frame changes.
	Frame *frame.Frame
}

// Preview is the live swatch drawn while dragging.
type Preview struct {
	At    Point
	Color color.RGBA
	// HideStart asks the view to paint the start cell empty so a move looks
	// like a move rather than a copy.
	HideStart      bool
	StartX, StartY int
}

// Machine is the drag interaction state machine.
type Machine struct {
	layout  Layout
	state   State
	session Session
}

// New creates an idle machine.
func New(layout Layout) *Machine {
	return &Machine{layout: layout}
}

// Layout returns the geometry used by the machine.
func (m *Machine) Layout() Layout {
	return m.layout
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Session returns a copy of the current session.
func (m *Machine) Session() Session {
	return m.session
}

// Press starts a drag session at pos. The side is fixed here for the whole drag.
func (m *Machine) Press(doc Document, pos Point, mods Modifiers) {
	s := Session{
		Start:  pos,
		Latest: pos,
		Active: true,
		Side:   m.layout.Side(pos),
		Mods:   mods,
		Frame:  doc.Frame(),
	}

	switch s.Side {
	case SidePalette:
		s.StartX, s.StartY, s.StartOK = m.layout.PaletteCell(pos)
		if s.StartOK {
			s.Carried = frame.Some(frame.Ref{X: s.StartX, Y: s.StartY})
			s.Color, s.HasColor = doc.Palette().Get(s.StartX, s.StartY)
		}
	case SideFrame:
		s.StartX, s.StartY, s.StartOK = m.layout.FrameCell(pos)
		if s.StartOK {
			f := s.Frame
			s.Carried = f.Get(s.StartX, s.StartY)
			s.Color, s.HasColor = resolve.Resolve(f, s.StartX, s.StartY, doc.Palette())
			if mods.Shift {
				// Eraser: a shift press clears immediately, no drag required.
				f.Clear(s.StartX, s.StartY)
			}
		}
	}

	m.session = s
	m.state = StateDragging
}

// Move updates the live position. A frame-side drag with Shift held clears
// every cell the pointer passes over.
func (m *Machine) Move(pos Point, mods Modifiers) {
	if m.state != StateDragging {
		return
	}
	m.session.Latest = pos
	m.session.Mods = mods

	if m.session.Side == SideFrame && Classify(mods) == ActionDelete {
		if x, y, ok := m.layout.FrameCell(pos); ok {
			m.session.Frame.Clear(x, y)
		}
	}
}

// Release finishes the drag at pos and returns the machine to idle.
func (m *Machine) Release(pos Point, mods Modifiers) Outcome {
	if m.state != StateDragging {
		return OutcomeNone
	}
	m.session.Latest = pos
	m.session.Mods = mods
	m.state = StateReleased

	var out Outcome
	switch m.session.Side {
	case SidePalette:
		out = m.releasePalette()
	case SideFrame:
		out = m.releaseFrame()
	default:
		out = OutcomeCancel
	}

	m.Cancel()
	return out
}

func (m *Machine) releasePalette() Outcome {
	s := m.session
	x, y, ok := m.layout.FrameCell(s.Latest)
	if !ok || !s.Carried.Set {
		return OutcomeCancel
	}
	s.Frame.Set(x, y, s.Carried)
	return OutcomeAssign
}

func (m *Machine) releaseFrame() Outcome {
	s := m.session
	x, y, ok := m.layout.FrameCell(s.Latest)
	if !ok {
		return OutcomeCancel
	}
	f := s.Frame

	switch Classify(s.Mods) {
	case ActionDelete:
		f.Clear(x, y)
		return OutcomeDelete
	case ActionMove:
		sx, sy, sok := m.layout.FrameCell(s.Start)
		if !sok || !s.Carried.Set {
			return OutcomeCancel
		}
		if sx == x && sy == y {
			return OutcomeNone
		}
		f.Set(x, y, f.Get(sx, sy))
		f.Clear(sx, sy)
		return OutcomeMove
	default:
		return OutcomeNone
	}
}

// Cancel discards the session without touching the document.
func (m *Machine) Cancel() {
	m.session = Session{}
	m.state = StateIdle
}

// Preview returns the swatch to draw at the pointer, if any.
func (m *Machine) Preview() (Preview, bool) {
	s := m.session
	if m.state != StateDragging || !s.HasColor {
		return Preview{}, false
	}
	p := Preview{At: s.Latest, Color: s.Color}
	switch s.Side {
	case SidePalette:
		return p, true
	case SideFrame:
		if Classify(s.Mods) != ActionMove {
			return Preview{}, false
		}
		p.HideStart = s.StartOK
		p.StartX, p.StartY = s.StartX, s.StartY
		return p, true
	}
	return Preview{}, false
}
