/*
NAME
  colorspace.go

DESCRIPTION
  colorspace.go defines the supported YUV subsampling schemes and the
  single chroma coordinate fold (adj) that every accessor in this
  package consults.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuvframe provides planar YUV frame storage with
// subsampling-aware pixel and block accessors.
package yuvframe

import "github.com/ausocean/hybridcodec/codec/hybrid/hybriderr"

// ColorSpace identifies a chroma subsampling scheme.
type ColorSpace int

const (
	C444 ColorSpace = iota
	C422
	C420
)

// ParseColorSpace maps a header colour space code (444, 422, 420) to
// a ColorSpace, or returns hybriderr.UnsupportedColorSpace.
func ParseColorSpace(code int) (ColorSpace, error) {
	switch code {
	case 444:
		return C444, nil
	case 422:
		return C422, nil
	case 420:
		return C420, nil
	default:
		return 0, hybriderr.New(hybriderr.UnsupportedColorSpace, "colour space code must be 444, 422 or 420")
	}
}

// Code returns the header code (444, 422, 420) for c.
func (c ColorSpace) Code() int {
	switch c {
	case C444:
		return 444
	case C422:
		return 422
	case C420:
		return 420
	default:
		return 0
	}
}

func (c ColorSpace) String() string {
	switch c {
	case C444:
		return "4:4:4"
	case C422:
		return "4:2:2"
	case C420:
		return "4:2:0"
	default:
		return "unknown"
	}
}

// ChromaDims returns the chroma plane dimensions for a luma plane of
// size h x w under this colour space.
func (c ColorSpace) ChromaDims(h, w int) (ch, cw int) {
	switch c {
	case C422:
		return h, w / 2
	case C420:
		return h / 2, w / 2
	default: // C444
		return h, w
	}
}

// adj folds a full-resolution (l, c) coordinate through this colour
// space's subsampling into the corresponding chroma-plane index. It
// is the single point every pixel/block accessor in this package
// consults, per the "class of coordinate folding" design note.
func (cs ColorSpace) adj(l, c int) (int, int) {
	switch cs {
	case C422:
		return l, c / 2
	case C420:
		return l / 2, c / 2
	default: // C444
		return l, c
	}
}
