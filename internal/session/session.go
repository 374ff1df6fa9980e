// Package session persists editor state between runs.
//
// Only the palette path is stored for the palette; pixels are reloaded from
// disk on restore.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	gzip "github.com/klauspost/pgzip"
	"go.uber.org/multierr"

	"github.com/Faultbox/pxref/internal/frame"
)

// FileName is the default session file name inside the config directory.
const FileName = "session.json.gz"

// State is the persisted editor state.
type State struct {
	PalettePath  string        `json:"palette_path"`
	Frames       []frame.Frame `json:"frames"`
	CurrentFrame int           `json:"current_frame"`
}

// Save writes state to path as gzip-compressed JSON.
func Save(path string, st State) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	zw, err := gzip.NewWriterLevel(f, gzip.DefaultCompression)
	if err != nil {
		return fmt.Errorf("initializing compression: %w", err)
	}
	zw.Comment = "pxref editor session"

	if err := json.NewEncoder(zw).Encode(st); err != nil {
		zw.Close()
		return fmt.Errorf("encoding session: %w", err)
	}
	return zw.Close()
}

// Load reads a session file. A missing file returns ok == false and no error.
func Load(path string) (st State, ok bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("opening session file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return State{}, false, fmt.Errorf("reading session: %w", err)
	}
	defer zr.Close()

	if err := json.NewDecoder(zr).Decode(&st); err != nil {
		return State{}, false, fmt.Errorf("decoding session: %w", err)
	}
	if st.CurrentFrame < 0 || st.CurrentFrame >= max(len(st.Frames), 1) {
		st.CurrentFrame = 0
	}
	return st, true, nil
}
