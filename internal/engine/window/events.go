package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/pxref/internal/engine/input"
)

var keymap = map[sdl.Keycode]input.Key{
	sdl.K_ESCAPE:    input.KeyEscape,
	sdl.K_SPACE:     input.KeySpace,
	sdl.K_LEFT:      input.KeyLeft,
	sdl.K_RIGHT:     input.KeyRight,
	sdl.K_BACKSPACE: input.KeyBackspace,
	sdl.K_o:         input.KeyO,
	sdl.K_l:         input.KeyL,
	sdl.K_s:         input.KeyS,
	sdl.K_e:         input.KeyE,
	sdl.K_n:         input.KeyN,
}

// Poll drains pending SDL events and samples the modifier state once, so
// the returned batch and modifiers describe the same moment.
func (w *Window) Poll() ([]input.Event, input.Modifiers) {
	w.events = w.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.events = append(w.events, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				w.events = append(w.events, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				w.events = append(w.events, input.Event{Type: input.EventFocusLost})
			case sdl.WINDOWEVENT_CLOSE:
				w.events = append(w.events, input.Event{Type: input.EventQuit})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if key, ok := keymap[e.Keysym.Sym]; ok {
				w.events = append(w.events, input.Event{Type: input.EventKeyDown, Key: key})
			}

		case *sdl.MouseMotionEvent:
			w.events = append(w.events, input.Event{
				Type:   input.EventMouseMove,
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
			})

		case *sdl.MouseButtonEvent:
			ev := input.Event{
				Type:   input.EventMouseDown,
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
				Button: e.Button,
			}
			if e.Type == sdl.MOUSEBUTTONUP {
				ev.Type = input.EventMouseUp
			}
			w.events = append(w.events, ev)
		}
	}

	mod := sdl.GetModState()
	mods := input.Modifiers{
		Shift: mod&sdl.KMOD_SHIFT != 0,
		Ctrl:  mod&sdl.KMOD_CTRL != 0,
		Cmd:   mod&sdl.KMOD_GUI != 0,
	}
	return w.events, mods
}
