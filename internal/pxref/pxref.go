// Package pxref reads and writes reference files and renders frames to images.
//
// A reference file stores the palette image path and, per frame, a 16x16 grid
// of optional palette coordinates indexed frames[k][x][y]. Palette pixels are
// never stored; the palette is reloaded from its path.
package pxref

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/pxref/internal/frame"
)

// Extension is the reference file extension.
const Extension = ".pxref"

// Reference file errors.
var (
	ErrFormat = errors.New("pxref: invalid reference file")
	ErrIO     = errors.New("pxref: i/o failure")
)

// Document is the persisted unit: palette path plus frames.
type Document struct {
	PalettePath string
	Frames      []frame.Frame
}

// fileFormat is the on-disk layout. The legacy keys are read when the current
// ones are absent.
type fileFormat struct {
	PalettePath string           `json:"palette_image_path"`
	Frames      [][][]frame.Cell `json:"frames"`

	LegacyPalette string           `json:"ref_png,omitempty"`
	LegacyFrames  [][][]frame.Cell `json:"ref_matrix,omitempty"`
}

// Marshal encodes a document as pretty-printed JSON.
func Marshal(doc Document) ([]byte, error) {
	out := fileFormat{
		PalettePath: doc.PalettePath,
		Frames:      make([][][]frame.Cell, len(doc.Frames)),
	}
	for k := range doc.Frames {
		grid := make([][]frame.Cell, frame.Size)
		for x := range grid {
			grid[x] = append([]frame.Cell(nil), doc.Frames[k][x][:]...)
		}
		out.Frames[k] = grid
	}
	return json.MarshalIndent(out, "", "  ")
}

// Unmarshal decodes a reference file.
func Unmarshal(data []byte) (Document, error) {
	var in fileFormat
	if err := json.Unmarshal(data, &in); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	path, grids := in.PalettePath, in.Frames
	if path == "" {
		path = in.LegacyPalette
	}
	if grids == nil {
		grids = in.LegacyFrames
	}
	if len(grids) == 0 {
		return Document{}, fmt.Errorf("%w: no frames", ErrFormat)
	}

	doc := Document{PalettePath: path, Frames: make([]frame.Frame, len(grids))}
	for k, grid := range grids {
		if len(grid) != frame.Size {
			return Document{}, fmt.Errorf("%w: frame %d has %d columns, want %d", ErrFormat, k, len(grid), frame.Size)
		}
		for x, column := range grid {
			if len(column) != frame.Size {
				return Document{}, fmt.Errorf("%w: frame %d column %d has %d cells, want %d", ErrFormat, k, x, len(column), frame.Size)
			}
			copy(doc.Frames[k][x][:], column)
		}
	}
	return doc, nil
}

// WithExtension appends ext to path unless it already ends with it.
func WithExtension(path, ext string) string {
	if strings.HasSuffix(strings.ToLower(path), ext) {
		return path
	}
	return path + ext
}

// Save writes doc to path, appending the reference extension if missing.
// The file is written to a temporary sibling and renamed into place.
func Save(path string, doc Document) (string, error) {
	path = WithExtension(path, Extension)

	data, err := Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	return path, nil
}

// Load reads a reference file. Paths without the reference extension are rejected.
func Load(path string) (Document, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return Document{}, fmt.Errorf("%w: %s is not a %s file", ErrFormat, filepath.Base(path), Extension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return Unmarshal(data)
}

// PalettePath resolves a stored palette path. Relative paths are taken
// relative to the directory of the reference file at refPath.
func PalettePath(refPath, palettePath string) string {
	if palettePath == "" || filepath.IsAbs(palettePath) {
		return palettePath
	}
	return filepath.Join(filepath.Dir(refPath), palettePath)
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	werr := tmp.Chmod(0644)
	if werr == nil {
		_, werr = tmp.Write(data)
	}
	err = multierr.Append(werr, tmp.Close())
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
