package yuvframe

import "github.com/ausocean/hybridcodec/codec/hybrid/hybriderr"

// Store holds a sequence of Frames, all sharing a colour space and
// dimensions. It is owned by the Codec and lent by reference to the
// Intra/Inter coders for the duration of a single frame.
type Store struct {
	CS   ColorSpace
	H, W int
	fs   []*Frame
}

// NewStore returns an empty Store sized for n frames (decode use:
// frames are filled in one at a time as they're reconstructed).
func NewStore(cs ColorSpace, h, w, n int) *Store {
	fs := make([]*Frame, n)
	return &Store{CS: cs, H: h, W: w, fs: fs}
}

// Len returns the number of frame slots in the store.
func (s *Store) Len() int { return len(s.fs) }

// Frame returns the i'th frame, or nil if it hasn't been set yet.
func (s *Store) Frame(i int) *Frame { return s.fs[i] }

// SetFrame installs f as the i'th frame.
func (s *Store) SetFrame(i int, f *Frame) { s.fs[i] = f }

// Append adds f as a new frame at the end of the store, growing it by
// one, and returns its index.
func (s *Store) Append(f *Frame) int {
	s.fs = append(s.fs, f)
	return len(s.fs) - 1
}

// AllocFrame allocates and installs a new zeroed frame at index i,
// sized per the store's colour space and dimensions, and returns it.
func (s *Store) AllocFrame(i int) *Frame {
	f := NewFrame(s.CS, s.H, s.W)
	s.SetFrame(i, f)
	return f
}

// Frames returns all frames currently held, in order. Any nil
// (not-yet-decoded) slots cause hybriderr.IOError, since a caller
// asking for the full sequence expects it to be complete.
func (s *Store) Frames() ([]*Frame, error) {
	out := make([]*Frame, len(s.fs))
	for i, f := range s.fs {
		if f == nil {
			return nil, hybriderr.New(hybriderr.IOError, "incomplete frame sequence")
		}
		out[i] = f
	}
	return out, nil
}
