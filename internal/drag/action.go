package drag

// Modifiers is the modifier key state sampled once per input tick.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Cmd   bool
}

// Action is what a frame-side drag does on release.
type Action int

const (
	// ActionNone leaves the frame untouched. Dragging without modifiers would
	// copy a reference, but copying is disabled until undo exists.
	ActionNone Action = iota
	// ActionDelete clears every cell the pointer passes over.
	ActionDelete
	// ActionMove moves the reference from the start cell to the release cell.
	ActionMove
)

func (a Action) String() string {
	switch a {
	case ActionDelete:
		return "delete"
	case ActionMove:
		return "move"
	default:
		return "none"
	}
}

// Classify maps modifier keys to a frame-side action. Shift wins over Ctrl/Cmd.
func Classify(m Modifiers) Action {
	switch {
	case m.Shift:
		return ActionDelete
	case m.Ctrl || m.Cmd:
		return ActionMove
	default:
		return ActionNone
	}
}
