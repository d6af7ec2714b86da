// Package rewind records per-component history and plays it backwards
//
// Each tracked component type keeps a deque of timestamps, one per
// simulation frame, plus a deque of component snapshots referenced by
// those timestamps. Repeated timestamps share one snapshot, so an
// unchanged component costs no storage beyond the frame marker
package rewind

import (
	"github.com/lixenwraith/revenant/parameter"
)

// Timestamp describes the status of a component at a frame
//
// Timestamps with different frame values represent different component
// states: if one frame holds Existent(1) and the next Existent(2), the
// component was mutated in between
type Timestamp struct {
	Frame    int64
	Existent bool
}

// StorageState describes how frames are being stored in a History
type StorageState int

const (
	// StorageGrowing means the history has never been full
	StorageGrowing StorageState = iota

	// StorageLeaking means it has been full and forgotten a frame
	// This does not mean it is full right now
	StorageLeaking
)

// History stores timestamps for one component over the last
// parameter.MaxStorageFrames frames
type History[T any] struct {
	// Frames is the per-tick timestamp deque, oldest first
	Frames []Timestamp

	// Components are the snapshots referenced by Existent timestamps,
	// earliest state at the front
	Components []T

	// State flips to leaking permanently once a frame is forgotten
	State StorageState

	// RenderedFrame is the first frame for which the component had its
	// current state. Prevents the same state being re-applied multiple
	// times during rewinding
	RenderedFrame int64
}

// NewHistory returns an empty history
func NewHistory[T any]() *History[T] {
	return &History[T]{
		Frames: make([]Timestamp, 0, parameter.MaxStorageFrames),
	}
}

// Retire forgets the oldest frame when the history is at capacity
func (h *History[T]) Retire() {
	if len(h.Frames) != parameter.MaxStorageFrames {
		return
	}

	oldest := h.Frames[0]
	h.Frames = h.Frames[1:]

	// if the component state referred to by the deleted frame is
	// no longer referenced, drop it from storage forever
	if oldest.Existent && h.Frames[0].Frame != oldest.Frame {
		h.Components = h.Components[1:]
	}

	h.State = StorageLeaking
}

// Save appends a snapshot of the component's current status
// exists reports component presence; changed that its value moved since
// the previous recorded state
func (h *History[T]) Save(value T, exists, changed bool, frame int64) {
	var ts Timestamp
	switch {
	case exists && changed:
		h.Components = append(h.Components, value)
		ts = Timestamp{Frame: frame, Existent: true}
	case exists:
		// reuse whatever frame index the previous tick recorded
		prev := h.Frames[len(h.Frames)-1]
		ts = Timestamp{Frame: prev.Frame, Existent: true}
	default:
		prev := h.Frames[len(h.Frames)-1]
		if prev.Existent {
			ts = Timestamp{Frame: frame, Existent: false}
		} else {
			ts = Timestamp{Frame: prev.Frame, Existent: false}
		}
	}

	h.RenderedFrame = ts.Frame
	h.Frames = append(h.Frames, ts)
}

// PopBack removes and returns the newest timestamp
func (h *History[T]) PopBack() (Timestamp, bool) {
	if len(h.Frames) == 0 {
		return Timestamp{}, false
	}
	ts := h.Frames[len(h.Frames)-1]
	h.Frames = h.Frames[:len(h.Frames)-1]
	return ts, true
}

// PopComponent removes and returns the newest snapshot
func (h *History[T]) PopComponent() (T, bool) {
	var zero T
	if len(h.Components) == 0 {
		return zero, false
	}
	c := h.Components[len(h.Components)-1]
	h.Components = h.Components[:len(h.Components)-1]
	return c, true
}
