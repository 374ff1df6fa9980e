// Package input turns raw window events into one per-tick snapshot of
// pointer and keyboard state.
package input

// EventType identifies a raw window event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventFocusLost
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// ButtonLeft is the primary mouse button.
const ButtonLeft uint8 = 1

// Key is an editor shortcut key.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeySpace
	KeyLeft
	KeyRight
	KeyBackspace
	KeyO
	KeyL
	KeyS
	KeyE
	KeyN
)

// Event is one raw window event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX float32
	MouseY float32
	Button uint8
}

// Modifiers is the keyboard modifier state.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Cmd   bool
}

// EdgeKind is a left button transition.
type EdgeKind int

const (
	EdgePress EdgeKind = iota
	EdgeRelease
)

// Edge is one left button transition at a pointer position.
type Edge struct {
	Kind EdgeKind
	X, Y float32
}

// Tick is everything the editor needs from one input batch. Pointer and
// modifier state are sampled together so one tick never mixes two states.
type Tick struct {
	// Latest pointer position and button state.
	X, Y float32
	Down bool

	// Button transitions in the order they happened.
	Edges []Edge

	Mods Modifiers
	Keys []Key

	Quit      bool
	FocusLost bool

	Resized       bool
	Width, Height int
}

// State carries pointer state between ticks.
type State struct {
	x, y float32
	down bool
}

// Apply folds one batch of events into a tick.
func (s *State) Apply(events []Event, mods Modifiers) Tick {
	t := Tick{Mods: mods}

	for _, e := range events {
		switch e.Type {
		case EventQuit:
			t.Quit = true
		case EventFocusLost:
			t.FocusLost = true
		case EventWindowResize:
			t.Resized = true
			t.Width, t.Height = e.Width, e.Height
		case EventKeyDown:
			t.Keys = append(t.Keys, e.Key)
		case EventMouseMove:
			s.x, s.y = e.MouseX, e.MouseY
		case EventMouseDown:
			s.x, s.y = e.MouseX, e.MouseY
			// A down while already down means the matching up was swallowed,
			// typically by a modal dialog; treat it as a fresh press.
			if e.Button == ButtonLeft {
				s.down = true
				t.Edges = append(t.Edges, Edge{Kind: EdgePress, X: e.MouseX, Y: e.MouseY})
			}
		case EventMouseUp:
			s.x, s.y = e.MouseX, e.MouseY
			if e.Button == ButtonLeft && s.down {
				s.down = false
				t.Edges = append(t.Edges, Edge{Kind: EdgeRelease, X: e.MouseX, Y: e.MouseY})
			}
		}
	}

	if t.FocusLost && s.down {
		// The release will never arrive once focus is gone.
		s.down = false
	}

	t.X, t.Y = s.x, s.y
	t.Down = s.down
	return t
}
