// Package frame implements sprite frames whose cells reference palette slots.
package frame

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Faultbox/pxref/internal/palette"
)

// Size is the width and height of a frame.
const Size = palette.Size

// Frame store errors.
var (
	ErrLastFrame = errors.New("frame: cannot remove the only frame")
	ErrIndex     = errors.New("frame: index out of range")
)

// Ref is a palette coordinate. It is a lookup key, not an owned color:
// re-importing the palette silently changes what a Ref resolves to.
type Ref struct {
	X, Y int
}

// InBounds reports whether the ref addresses a palette slot.
func (r Ref) InBounds() bool {
	return r.X >= 0 && r.Y >= 0 && r.X < palette.Size && r.Y < palette.Size
}

// Index returns the zero-based row-major palette index.
func (r Ref) Index() int {
	return r.Y*palette.Size + r.X
}

// Cell is an optional Ref.
type Cell struct {
	Ref
	Set bool
}

// Some returns a cell holding r.
func Some(r Ref) Cell {
	return Cell{Ref: r, Set: true}
}

// None returns an empty cell.
func None() Cell {
	return Cell{}
}

// MarshalJSON encodes the cell as null or [x, y].
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Set {
		return []byte("null"), nil
	}
	return json.Marshal([2]int{c.X, c.Y})
}

// UnmarshalJSON decodes null or [x, y].
func (c *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = None()
		return nil
	}
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("reference must be a pair, got %d values", len(pair))
	}
	*c = Some(Ref{X: pair[0], Y: pair[1]})
	return nil
}

// Frame is a Size x Size grid of optional refs addressed [x][y].
type Frame [Size][Size]Cell

func inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < Size && y < Size
}

// Get returns the cell at (x, y); out-of-range positions read as empty.
func (f *Frame) Get(x, y int) Cell {
	if !inBounds(x, y) {
		return None()
	}
	return f[x][y]
}

// Set stores c at (x, y) and reports whether the position was in range.
func (f *Frame) Set(x, y int, c Cell) bool {
	if !inBounds(x, y) {
		return false
	}
	f[x][y] = c
	return true
}

// Clear empties the cell at (x, y).
func (f *Frame) Clear(x, y int) bool {
	return f.Set(x, y, None())
}

// Reset empties every cell.
func (f *Frame) Reset() {
	*f = Frame{}
}

// Used returns the number of cells holding a ref.
func (f *Frame) Used() int {
	n := 0
	for x := range f {
		for y := range f[x] {
			if f[x][y].Set {
				n++
			}
		}
	}
	return n
}

// Sequence is an ordered, non-empty list of frames.
type Sequence struct {
	frames []Frame
}

// NewSequence returns a sequence holding one empty frame.
func NewSequence() *Sequence {
	return &Sequence{frames: make([]Frame, 1)}
}

// FromFrames builds a sequence from a copy of frames.
// An empty slice yields a single empty frame.
func FromFrames(frames []Frame) *Sequence {
	if len(frames) == 0 {
		return NewSequence()
	}
	s := &Sequence{frames: make([]Frame, len(frames))}
	copy(s.frames, frames)
	return s
}

// Len returns the number of frames. It is always at least 1.
func (s *Sequence) Len() int {
	return len(s.frames)
}

// At returns frame i, or nil if i is out of range.
func (s *Sequence) At(i int) *Frame {
	if i < 0 || i >= len(s.frames) {
		return nil
	}
	return &s.frames[i]
}

// Append adds an empty frame and returns its index.
func (s *Sequence) Append() int {
	s.frames = append(s.frames, Frame{})
	return len(s.frames) - 1
}

// Remove deletes frame i. The last remaining frame can never be removed.
func (s *Sequence) Remove(i int) error {
	if i < 0 || i >= len(s.frames) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndex, i, len(s.frames))
	}
	if len(s.frames) == 1 {
		return ErrLastFrame
	}
	s.frames = append(s.frames[:i], s.frames[i+1:]...)
	return nil
}

// Frames returns a copy of all frames.
func (s *Sequence) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}
