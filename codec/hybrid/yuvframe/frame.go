/*
NAME
  frame.go

DESCRIPTION
  frame.go implements Frame, a single planar YUV frame, with
  subsampling-aware pixel accessors. Store, a sequence of frames, is
  in store.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package yuvframe

// Component identifies one of the three planes of a Frame.
type Component int

const (
	Y Component = iota
	U
	V
)

// Frame holds the three planes of a single YUV picture, each stored
// row-major.
type Frame struct {
	CS   ColorSpace
	H, W int // luma dimensions

	Ypix []uint8 // H x W
	Upix []uint8 // Hc x Wc
	Vpix []uint8 // Hc x Wc
}

// NewFrame allocates a zeroed Frame for the given colour space and
// luma dimensions.
func NewFrame(cs ColorSpace, h, w int) *Frame {
	ch, cw := cs.ChromaDims(h, w)
	return &Frame{
		CS:   cs,
		H:    h,
		W:    w,
		Ypix: make([]uint8, h*w),
		Upix: make([]uint8, ch*cw),
		Vpix: make([]uint8, ch*cw),
	}
}

// chromaDims returns this frame's chroma plane dimensions.
func (f *Frame) chromaDims() (ch, cw int) {
	return f.CS.ChromaDims(f.H, f.W)
}

// GetPixel returns the logical pixel (y, u, v) at full-resolution
// coordinate (l, c). Out-of-range (negative) coordinates return the
// neutral triple (0, 0, 0); this is a contract the intra predictor's
// boundary handling depends on.
func (f *Frame) GetPixel(l, c int) (y, u, v uint8) {
	if l < 0 || c < 0 || l >= f.H || c >= f.W {
		return 0, 0, 0
	}
	al, ac := f.CS.adj(l, c)
	ch, cw := f.chromaDims()
	if al < 0 || ac < 0 || al >= ch || ac >= cw {
		return f.Ypix[l*f.W+c], 0, 0
	}
	return f.Ypix[l*f.W+c], f.Upix[al*cw+ac], f.Vpix[al*cw+ac]
}

// PutComponent writes value into component comp at full-resolution
// coordinate (l, c), folding chroma coordinates through adj.
func (f *Frame) PutComponent(comp Component, l, c int, value uint8) {
	switch comp {
	case Y:
		f.Ypix[l*f.W+c] = value
	case U:
		al, ac := f.CS.adj(l, c)
		_, cw := f.chromaDims()
		f.Upix[al*cw+ac] = value
	case V:
		al, ac := f.CS.adj(l, c)
		_, cw := f.chromaDims()
		f.Vpix[al*cw+ac] = value
	}
}
