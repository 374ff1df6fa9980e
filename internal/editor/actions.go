package editor

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/pxref/internal/frame"
	"github.com/Faultbox/pxref/internal/palette"
	"github.com/Faultbox/pxref/internal/pxref"
)

// Dialog titles.
const (
	TitleLoadPalette  = "Failed to Load Palette"
	TitleOpenRef      = "Unable to open Ref"
	TitleSaveRef      = "Failed to Save Ref"
	TitleRender       = "Failed to Render Image"
	TitleInvalid      = "Invalid action"
	TitleRemoveFrame  = "Do you want to remove the frame"
	TitleFrameRemoved = "Frame Removed"
	TitleClearCanvas  = "Clear Canvas"
	TitleDialog       = "Unable to open file dialog"
)

var (
	imageFilter = Filter{Description: "Images", Extensions: []string{"png", "bmp", "gif", "jpg", "jpeg", "tif", "tiff", "webp", "tga"}}
	refFilter   = Filter{Description: "Reference files", Extensions: []string{"pxref"}}
	pngFilter   = Filter{Description: "PNG image", Extensions: []string{"png"}}
)

// LoadPalette replaces the palette with the image at path. On failure the
// current palette is kept.
func (e *Editor) LoadPalette(path string) error {
	p, err := palette.Load(path)
	if err != nil {
		e.fail(TitleLoadPalette, err)
		return err
	}
	e.palette = p
	e.palettePath = path
	e.drag.Cancel()

	e.log.Info("palette loaded",
		zap.String("path", path),
		zap.Int("colors", p.Count()),
	)
	return nil
}

// LoadRefs replaces the document with a reference file and the palette it
// names. Nothing changes unless both load.
func (e *Editor) LoadRefs(path string) error {
	doc, err := pxref.Load(path)
	if err != nil {
		e.fail(TitleOpenRef, err)
		return err
	}

	palettePath := pxref.PalettePath(path, doc.PalettePath)
	p := palette.New()
	if palettePath != "" {
		p, err = palette.Load(palettePath)
		if err != nil {
			e.fail(TitleLoadPalette, err)
			return err
		}
	}

	e.drag.Cancel()
	e.palette = p
	e.palettePath = palettePath
	e.timeline.Replace(frame.FromFrames(doc.Frames))

	e.log.Info("references loaded",
		zap.String("path", path),
		zap.String("palette", palettePath),
		zap.Int("frames", len(doc.Frames)),
	)
	return nil
}

// SaveRefs writes every frame and the palette path to path. It returns the
// final path, which always carries the reference extension.
func (e *Editor) SaveRefs(path string) (string, error) {
	if e.palettePath == "" {
		e.log.Warn("saving references without a palette")
	}
	doc := pxref.Document{
		PalettePath: e.palettePath,
		Frames:      e.timeline.Sequence().Frames(),
	}
	final, err := pxref.Save(path, doc)
	if err != nil {
		e.fail(TitleSaveRef, err)
		return "", err
	}

	e.log.Info("references saved",
		zap.String("path", final),
		zap.Int("frames", len(doc.Frames)),
	)
	return final, nil
}

// ExportImage renders all frames as one horizontal PNG strip.
func (e *Editor) ExportImage(path string) (string, error) {
	final, n, err := pxref.ExportPNG(path, e.timeline.Sequence().Frames(), e.palette, e.exportScale)
	if err != nil {
		e.fail(TitleRender, err)
		return "", err
	}

	e.log.Info("image exported",
		zap.String("path", final),
		zap.Int("frames", e.timeline.Len()),
		zap.Int("scale", e.exportScale),
		zap.String("size", humanize.Bytes(uint64(n))),
	)
	return final, nil
}

// ClearCanvas empties the current frame after confirmation. It reports
// whether the frame was cleared.
func (e *Editor) ClearCanvas() bool {
	if e.confirm && !e.dialogs.Confirm(TitleClearCanvas, "Are you sure?") {
		return false
	}
	e.timeline.ClearCurrent()
	e.log.Debug("canvas cleared", zap.Int("frame", e.timeline.Index()))
	return true
}

// AddFrame appends an empty frame and selects it.
func (e *Editor) AddFrame() int {
	i := e.timeline.Add()
	e.drag.Cancel()
	e.log.Debug("frame added", zap.Int("frame", i))
	return i
}

// SelectFrame makes frame i current.
func (e *Editor) SelectFrame(i int) error {
	if err := e.timeline.Select(i); err != nil {
		return err
	}
	e.drag.Cancel()
	return nil
}

// RemoveFrame deletes frame i after confirmation. The only frame can never
// be removed; that attempt is reported to the user and returns
// frame.ErrLastFrame. A declined confirmation returns ErrCancelled.
func (e *Editor) RemoveFrame(i int) error {
	if e.timeline.Len() == 1 {
		e.dialogs.Info(TitleInvalid, "Can not remove the only frame")
		return frame.ErrLastFrame
	}
	if i < 0 || i >= e.timeline.Len() {
		return fmt.Errorf("%w: %d", frame.ErrIndex, i)
	}
	if e.confirm && !e.dialogs.Confirm(TitleRemoveFrame, "This action can not be undone") {
		return ErrCancelled
	}
	if err := e.timeline.Remove(i); err != nil {
		return err
	}
	e.drag.Cancel()

	e.dialogs.Info(TitleFrameRemoved, fmt.Sprintf("Removed frame %d", i+1))
	e.log.Info("frame removed", zap.Int("frame", i), zap.Int("remaining", e.timeline.Len()))
	return nil
}

// TogglePlayback starts or stops the animation preview.
func (e *Editor) TogglePlayback() bool {
	playing := e.timeline.Toggle()
	e.log.Debug("playback toggled", zap.Bool("playing", playing))
	return playing
}

// OpenPalette asks for an image and loads it as the palette.
func (e *Editor) OpenPalette() error {
	path, err := e.dialogs.OpenFile("Load Palette", imageFilter)
	if err != nil {
		return e.pickerError(err)
	}
	return e.LoadPalette(path)
}

// OpenRefs asks for a reference file and loads it.
func (e *Editor) OpenRefs() error {
	path, err := e.dialogs.OpenFile("Load Refs", refFilter)
	if err != nil {
		return e.pickerError(err)
	}
	return e.LoadRefs(path)
}

// SaveRefsAs asks for a destination and saves the references there.
func (e *Editor) SaveRefsAs() error {
	path, err := e.dialogs.SaveFile("Save Refs", refFilter)
	if err != nil {
		return e.pickerError(err)
	}
	_, err = e.SaveRefs(path)
	return err
}

// ExportImageAs asks for a destination and exports the strip there.
func (e *Editor) ExportImageAs() error {
	path, err := e.dialogs.SaveFile("Export Image", pngFilter)
	if err != nil {
		return e.pickerError(err)
	}
	_, err = e.ExportImage(path)
	return err
}

func (e *Editor) pickerError(err error) error {
	if errors.Is(err, ErrCancelled) {
		e.log.Debug("dialog cancelled")
		return nil
	}
	e.fail(TitleDialog, err)
	return err
}

func (e *Editor) fail(title string, err error) {
	e.log.Error(title, zap.Error(err))
	e.dialogs.Error(title, err.Error())
}
