// Package app runs the editor window: it owns the window, the renderer and
// the editor, and drives the main loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/pxref/internal/config"
	"github.com/Faultbox/pxref/internal/dialogs"
	"github.com/Faultbox/pxref/internal/drag"
	"github.com/Faultbox/pxref/internal/editor"
	"github.com/Faultbox/pxref/internal/engine/input"
	"github.com/Faultbox/pxref/internal/engine/ui2d"
	"github.com/Faultbox/pxref/internal/engine/window"
	"github.com/Faultbox/pxref/internal/logger"
	"github.com/Faultbox/pxref/internal/session"
)

const title = "pxref"

// Frame pacing when vsync is off.
const frameBudget = time.Second / 60

// App is the running editor.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	window   *window.Window
	renderer *ui2d.Renderer
	input    input.State
	editor   *editor.Editor
	running  bool

	// Title bookkeeping, so SetTitle only runs on change.
	shownFrame, shownFrames int
}

// New creates the window and the editor, then opens startup files or the
// previous session.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}

	a.log.Info("initializing editor",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:  title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	w, h := a.window.Size()
	a.renderer, err = ui2d.New(w, h)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	dw, dh := a.window.DrawableSize()
	a.renderer.Resize(w, h, dw, dh)

	a.editor = editor.New(editor.Options{
		Logger:             logger.Named("editor"),
		Dialogs:            &dialogs.Native{},
		Layout:             drag.DefaultLayout(),
		PlaybackInterval:   cfg.Editor.PlaybackInterval,
		ExportScale:        cfg.Export.Scale,
		ConfirmDestructive: cfg.Editor.ConfirmDestructive,
	})

	a.open()
	a.log.Info("editor initialized")
	return a, nil
}

// open loads command line files, falling back to the saved session.
func (a *App) open() {
	switch {
	case a.cfg.OpenRefs != "":
		a.editor.LoadRefs(a.cfg.OpenRefs)
	case a.cfg.Session.Enabled:
		path := a.cfg.SessionPath()
		st, ok, err := session.Load(path)
		if err != nil {
			a.log.Warn("ignoring unreadable session", zap.String("path", path), zap.Error(err))
		} else if ok {
			a.editor.Restore(st)
		}
	}

	if a.cfg.OpenPalette != "" {
		a.editor.LoadPalette(a.cfg.OpenPalette)
	}
}

// Run starts the main loop and returns when the editor quits.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Input
		events, mods := a.window.Poll()
		tick := a.input.Apply(events, mods)
		if tick.Resized {
			dw, dh := a.window.DrawableSize()
			a.renderer.Resize(tick.Width, tick.Height, dw, dh)
		}

		// 2. Update
		if a.editor.Step(tick, dt) {
			a.running = false
			break
		}
		a.updateTitle()

		// 3. Render
		a.renderer.Begin(editor.Background)
		a.editor.Draw(a.renderer)
		a.renderer.End()

		// 4. Present
		a.window.SwapBuffers()
		if !a.cfg.Window.VSync {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) updateTitle() {
	tl := a.editor.Timeline()
	if tl.Index() == a.shownFrame && tl.Len() == a.shownFrames {
		return
	}
	a.shownFrame, a.shownFrames = tl.Index(), tl.Len()
	a.window.SetTitle(fmt.Sprintf("%s - frame %d/%d", title, tl.Index()+1, tl.Len()))
}

// Close saves the session and releases the window.
func (a *App) Close() error {
	a.log.Info("closing editor")

	var err error
	if a.cfg.Session.Enabled && a.editor != nil {
		path := a.cfg.SessionPath()
		if serr := session.Save(path, a.editor.Snapshot()); serr != nil {
			err = multierr.Append(err, fmt.Errorf("saving session: %w", serr))
		} else {
			a.log.Info("session saved", zap.String("path", path))
		}
	}

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	return err
}
