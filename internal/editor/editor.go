// Package editor holds the application state of the sprite editor and
// turns input ticks into document edits.
package editor

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pxref/internal/drag"
	"github.com/Faultbox/pxref/internal/frame"
	"github.com/Faultbox/pxref/internal/palette"
	"github.com/Faultbox/pxref/internal/session"
	"github.com/Faultbox/pxref/internal/timeline"
)

// ErrCancelled is returned by Dialogs when the user dismisses a picker.
var ErrCancelled = errors.New("editor: dialog cancelled")

// Filter restricts a file picker to some extensions (without the dot).
type Filter struct {
	Description string
	Extensions  []string
}

// Dialogs is the native dialog boundary. Calls block until dismissed.
type Dialogs interface {
	OpenFile(title string, filters ...Filter) (string, error)
	SaveFile(title string, filters ...Filter) (string, error)
	Confirm(title, message string) bool
	Info(title, message string)
	Error(title, message string)
}

// Options configures a new Editor.
type Options struct {
	Logger             *zap.Logger
	Dialogs            Dialogs
	Layout             drag.Layout
	PlaybackInterval   time.Duration
	ExportScale        int
	ConfirmDestructive bool
}

// Editor is the whole application state.
type Editor struct {
	log     *zap.Logger
	dialogs Dialogs
	layout  drag.Layout

	palette     *palette.Palette
	palettePath string
	timeline    *timeline.Timeline
	drag        *drag.Machine

	exportScale int
	confirm     bool

	// Last pointer position and modifiers, for hover feedback.
	pointer drag.Point
	mods    drag.Modifiers
}

// New creates an editor with an empty palette and a single empty frame.
func New(opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	layout := opts.Layout
	if layout.CellSize == 0 {
		layout = drag.DefaultLayout()
	}
	interval := opts.PlaybackInterval
	if interval == 0 {
		interval = timeline.DefaultInterval
	}
	scale := opts.ExportScale
	if scale < 1 {
		scale = 1
	}

	return &Editor{
		log:         log,
		dialogs:     opts.Dialogs,
		layout:      layout,
		palette:     palette.New(),
		timeline:    timeline.New(interval),
		drag:        drag.New(layout),
		exportScale: scale,
		confirm:     opts.ConfirmDestructive,
	}
}

// Frame returns the frame being edited.
func (e *Editor) Frame() *frame.Frame {
	return e.timeline.Current()
}

// Palette returns the loaded palette.
func (e *Editor) Palette() *palette.Palette {
	return e.palette
}

// PalettePath returns the path the palette was loaded from.
func (e *Editor) PalettePath() string {
	return e.palettePath
}

// Timeline returns the frame timeline.
func (e *Editor) Timeline() *timeline.Timeline {
	return e.timeline
}

// Drag returns the drag machine.
func (e *Editor) Drag() *drag.Machine {
	return e.drag
}

// Snapshot captures what the session file persists.
func (e *Editor) Snapshot() session.State {
	return session.State{
		PalettePath:  e.palettePath,
		Frames:       e.timeline.Sequence().Frames(),
		CurrentFrame: e.timeline.Index(),
	}
}

// Restore replaces the document with a saved session. A palette that no
// longer loads is logged and left empty; the path is kept so the next save
// still points at it.
func (e *Editor) Restore(st session.State) {
	e.drag.Cancel()

	p := palette.New()
	if st.PalettePath != "" {
		loaded, err := palette.Load(st.PalettePath)
		if err != nil {
			e.log.Warn("session palette unavailable",
				zap.String("path", st.PalettePath),
				zap.Error(err),
			)
		} else {
			p = loaded
		}
	}
	e.palette = p
	e.palettePath = st.PalettePath

	e.timeline.Replace(frame.FromFrames(st.Frames))
	if err := e.timeline.Select(st.CurrentFrame); err != nil {
		e.log.Debug("session frame out of range", zap.Int("frame", st.CurrentFrame))
	}

	e.log.Info("session restored",
		zap.String("palette", st.PalettePath),
		zap.Int("frames", e.timeline.Len()),
	)
}
