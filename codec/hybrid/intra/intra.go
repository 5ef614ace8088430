/*
NAME
  intra.go

DESCRIPTION
  intra.go implements the JPEG-LS-style MED (Median Edge Detector)
  predictor and its residual codec, applied independently per
  component across a single frame in row-major pixel order.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package intra implements the MED intra-frame predictor and its
// residual coder for a single YUV frame.
package intra

import (
	"github.com/ausocean/hybridcodec/codec/hybrid/bitstream"
	"github.com/ausocean/hybridcodec/codec/hybrid/golomb"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

// Quant holds the per-component quantisation steps (qY, qU, qV). A
// zero step means lossless coding for that component.
type Quant [3]uint8

// med computes the MED predictor for one component given its West,
// North and Northwest neighbour samples.
func med(w, n, nw int32) int32 {
	switch {
	case nw >= max32(w, n):
		return min32(w, n)
	case nw <= min32(w, n):
		return max32(w, n)
	default:
		return w + n - nw
	}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// neighbours returns the (West, Northwest, North) triples for all
// three components at full-resolution (l, c), consulting the frame's
// boundary contract (negative coordinates fold to zero).
func neighbours(f *yuvframe.Frame, l, c int) (w, nw, n [3]int32) {
	wy, wu, wv := f.GetPixel(l, c-1)
	nwy, nwu, nwv := f.GetPixel(l-1, c-1)
	ny, nu, nv := f.GetPixel(l-1, c)
	w = [3]int32{int32(wy), int32(wu), int32(wv)}
	nw = [3]int32{int32(nwy), int32(nwu), int32(nwv)}
	n = [3]int32{int32(ny), int32(nu), int32(nv)}
	return
}

// Encode walks f in row-major pixel order, predicting each component
// independently via MED and emitting the signed residual for each
// via g. If q is non-zero for a component, the quantised
// reconstruction is written back into f so subsequent predictions
// see what the decoder will see; the write-back is suppressed on the
// first row/column to preserve the fixed-seed (0,0,0) boundary.
func Encode(w *bitstream.Writer, g *golomb.Coder, f *yuvframe.Frame, q Quant) error {
	for l := 0; l < f.H; l++ {
		for c := 0; c < f.W; c++ {
			y, u, v := f.GetPixel(l, c)
			p := [3]int32{int32(y), int32(u), int32(v)}

			west, nw, north := neighbours(f, l, c)
			for i := 0; i < 3; i++ {
				x := med(west[i], north[i], nw[i])
				e := p[i] - x

				var mag int32
				if e < 0 {
					mag = -e
				} else {
					mag = e
				}

				qi := q[i]
				n := mag
				if qi > 0 {
					n = mag / int32(qi)
				}

				if err := writeSign(w, e); err != nil {
					return err
				}
				if err := g.Encode(w, uint32(n)); err != nil {
					return err
				}

				if qi > 0 {
					sign := int32(1)
					if e < 0 {
						sign = -1
					}
					recon := x + sign*n*int32(qi)
					if l != 0 && c != 0 {
						writeback(f, i, l, c, recon)
					}
				}
			}
		}
	}
	return nil
}

// Decode reverses Encode, reconstructing f pixel by pixel and
// component by component in the same row-major order, so that each
// later prediction consults already-decoded samples.
func Decode(r *bitstream.Reader, g *golomb.Coder, f *yuvframe.Frame, q Quant) error {
	for l := 0; l < f.H; l++ {
		for c := 0; c < f.W; c++ {
			west, nw, north := neighbours(f, l, c)
			var recon [3]int32
			for i := 0; i < 3; i++ {
				sign, err := readSign(r)
				if err != nil {
					return err
				}
				n, err := g.Decode(r)
				if err != nil {
					return err
				}

				x := med(west[i], north[i], nw[i])

				qi := q[i]
				var e int32
				if qi > 0 {
					e = sign * int32(n) * int32(qi)
				} else {
					e = sign * int32(n)
				}
				recon[i] = x + e
			}
			writeback(f, 0, l, c, recon[0])
			writeback(f, 1, l, c, recon[1])
			writeback(f, 2, l, c, recon[2])
		}
	}
	return nil
}

// writeSign emits the sign bit for a signed residual: 1 if negative,
// 0 otherwise (zero is always framed with sign bit 0).
func writeSign(w *bitstream.Writer, e int32) error {
	if e < 0 {
		return w.WriteBits(1, 1)
	}
	return w.WriteBits(0, 1)
}

func readSign(r *bitstream.Reader) (int32, error) {
	b, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if b == 1 {
		return -1, nil
	}
	return 1, nil
}

// writeback stores a reconstructed (possibly truncated to 8 bits,
// matching source behaviour) sample back into f. Integer wraparound
// here is intentional: the codec does not validate that decoded
// samples fit in 8 bits.
func writeback(f *yuvframe.Frame, comp int, l, c int, value int32) {
	f.PutComponent(yuvframe.Component(comp), l, c, uint8(value))
}
