// Package timeline tracks the current frame of a sequence and plays it back.
package timeline

import (
	"fmt"
	"time"

	"github.com/Faultbox/pxref/internal/frame"
)

// DefaultInterval is the default playback interval between frames.
const DefaultInterval = 150 * time.Millisecond

// MinInterval is the shortest playback interval allowed.
const MinInterval = 50 * time.Millisecond

// Timeline owns a frame sequence and the index of the frame being edited.
// The index is always valid for the sequence.
type Timeline struct {
	seq      *frame.Sequence
	current  int
	playing  bool
	interval time.Duration
	elapsed  time.Duration
}

// New creates a timeline over a single empty frame.
func New(interval time.Duration) *Timeline {
	if interval < MinInterval {
		interval = MinInterval
	}
	return &Timeline{seq: frame.NewSequence(), interval: interval}
}

// Sequence returns the underlying frames.
func (t *Timeline) Sequence() *frame.Sequence {
	return t.seq
}

// Replace swaps in a new sequence and selects its first frame.
func (t *Timeline) Replace(seq *frame.Sequence) {
	if seq == nil {
		seq = frame.NewSequence()
	}
	t.seq = seq
	t.current = 0
	t.elapsed = 0
}

// Len returns the number of frames.
func (t *Timeline) Len() int {
	return t.seq.Len()
}

// Index returns the current frame index.
func (t *Timeline) Index() int {
	return t.current
}

// Current returns the frame being edited.
func (t *Timeline) Current() *frame.Frame {
	return t.seq.At(t.current)
}

// Select makes frame i current.
func (t *Timeline) Select(i int) error {
	if i < 0 || i >= t.seq.Len() {
		return fmt.Errorf("%w: %d (len %d)", frame.ErrIndex, i, t.seq.Len())
	}
	t.current = i
	return nil
}

// Add appends an empty frame and selects it.
func (t *Timeline) Add() int {
	t.current = t.seq.Append()
	return t.current
}

// Remove deletes frame i. Removing the only frame fails with frame.ErrLastFrame
// and changes nothing. When i is at or before the current frame the current
// index moves back by one, never below zero.
func (t *Timeline) Remove(i int) error {
	if err := t.seq.Remove(i); err != nil {
		return err
	}
	if i <= t.current && t.current > 0 {
		t.current--
	}
	return nil
}

// ClearCurrent empties the current frame.
func (t *Timeline) ClearCurrent() {
	t.Current().Reset()
}

// Playing reports whether playback is running.
func (t *Timeline) Playing() bool {
	return t.playing
}

// Toggle starts or stops playback and returns the new state.
func (t *Timeline) Toggle() bool {
	t.playing = !t.playing
	t.elapsed = 0
	return t.playing
}

// Interval returns the playback interval.
func (t *Timeline) Interval() time.Duration {
	return t.interval
}

// Tick advances playback by dt and reports whether the current frame changed.
func (t *Timeline) Tick(dt time.Duration) bool {
	if !t.playing || t.seq.Len() < 2 {
		return false
	}
	t.elapsed += dt
	changed := false
	for t.elapsed >= t.interval {
		t.elapsed -= t.interval
		t.current = (t.current + 1) % t.seq.Len()
		changed = true
	}
	return changed
}
