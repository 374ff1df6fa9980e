package editor

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pxref/internal/drag"
	"github.com/Faultbox/pxref/internal/engine/input"
	"github.com/Faultbox/pxref/internal/frame"
)

// Timeline controls geometry.
const (
	buttonSize   = 32
	buttonStride = 48
	timelineX    = 16
	timelineY    = 304
	playX        = 560
	playY        = 32
)

type rect struct {
	X, Y, W, H float32
}

func (r rect) contains(p drag.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func frameButton(j int) rect {
	return rect{X: float32(timelineX + buttonStride*j), Y: timelineY, W: buttonSize, H: buttonSize}
}

func playButton() rect {
	return rect{X: playX, Y: playY, W: buttonSize, H: buttonSize}
}

// Step processes one input tick and advances playback by dt. It reports
// whether the editor should quit.
func (e *Editor) Step(t input.Tick, dt time.Duration) bool {
	e.mods = drag.Modifiers{Shift: t.Mods.Shift, Ctrl: t.Mods.Ctrl, Cmd: t.Mods.Cmd}
	e.pointer = drag.Point{X: t.X, Y: t.Y}

	if t.Quit {
		return true
	}
	if t.FocusLost && e.drag.State() == drag.StateDragging {
		e.log.Debug("focus lost, drag cancelled")
		e.drag.Cancel()
	}

	for _, k := range t.Keys {
		if e.handleKey(k) {
			return true
		}
	}

	for _, edge := range t.Edges {
		at := drag.Point{X: edge.X, Y: edge.Y}
		switch edge.Kind {
		case input.EdgePress:
			if !e.clickControl(at) {
				e.drag.Press(e, at, e.mods)
			}
		case input.EdgeRelease:
			if out := e.drag.Release(at, e.mods); out != drag.OutcomeNone {
				e.log.Debug("drag finished", zap.Stringer("outcome", out))
			}
		}
	}
	if t.Down && e.drag.State() == drag.StateDragging {
		e.drag.Move(e.pointer, e.mods)
	}

	// Playback holds while a drag is in progress.
	if e.drag.State() != drag.StateDragging {
		e.timeline.Tick(dt)
	}
	return false
}

func (e *Editor) handleKey(k input.Key) (quit bool) {
	ctrl := e.mods.Ctrl || e.mods.Cmd

	// Actions report their own failures through dialogs; the error is only logged here.
	var err error
	switch {
	case k == input.KeyEscape:
		return true
	case k == input.KeySpace:
		e.TogglePlayback()
	case k == input.KeyLeft:
		n := e.timeline.Len()
		err = e.SelectFrame((e.timeline.Index() - 1 + n) % n)
	case k == input.KeyRight:
		err = e.SelectFrame((e.timeline.Index() + 1) % e.timeline.Len())
	case ctrl && k == input.KeyN:
		e.AddFrame()
	case ctrl && k == input.KeyBackspace:
		e.drag.Cancel()
		e.ClearCanvas()
	case ctrl && k == input.KeyO:
		e.drag.Cancel()
		err = e.OpenPalette()
	case ctrl && k == input.KeyL:
		e.drag.Cancel()
		err = e.OpenRefs()
	case ctrl && k == input.KeyS:
		e.drag.Cancel()
		err = e.SaveRefsAs()
	case ctrl && k == input.KeyE:
		e.drag.Cancel()
		err = e.ExportImageAs()
	}
	if err != nil {
		e.log.Debug("shortcut failed", zap.Int("key", int(k)), zap.Error(err))
	}
	return false
}

// clickControl handles a press on the timeline or play button and reports
// whether one was hit.
func (e *Editor) clickControl(at drag.Point) bool {
	if playButton().contains(at) {
		e.TogglePlayback()
		return true
	}

	n := e.timeline.Len()
	for j := 0; j < n; j++ {
		if !frameButton(j).contains(at) {
			continue
		}
		if e.mods.Shift {
			if err := e.RemoveFrame(j); err != nil && !errors.Is(err, ErrCancelled) && !errors.Is(err, frame.ErrLastFrame) {
				e.log.Warn("remove frame failed", zap.Int("frame", j), zap.Error(err))
			}
		} else if err := e.SelectFrame(j); err != nil {
			e.log.Warn("select frame failed", zap.Int("frame", j), zap.Error(err))
		}
		return true
	}

	if frameButton(n).contains(at) {
		e.AddFrame()
		return true
	}
	return false
}
