/*
NAME
  inter.go

DESCRIPTION
  inter.go implements block partitioning, motion search and residual
  coding for non-first frames of the hybrid codec: each block of the
  current frame is matched against a reference block drawn from the
  previously reconstructed frame within a bounded search window.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package inter implements the block-matching inter-frame coder: per
// block motion search against the previously reconstructed frame,
// plus residual coding of the matched block.
package inter

import (
	"github.com/ausocean/hybridcodec/codec/hybrid/bitstream"
	"github.com/ausocean/hybridcodec/codec/hybrid/golomb"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

// Vector is a motion vector in absolute block coordinates (l, m) of
// the reference frame's block grid.
type Vector struct{ L, M int }

// sad returns the sum of absolute differences across all B*B*3
// component samples of a and b.
func sad(a, b *yuvframe.Block) int64 {
	var s int64
	for i := range a.Pix {
		pa, pb := a.Pix[i], b.Pix[i]
		s += absDiff(pa.Y, pb.Y) + absDiff(pa.U, pb.U) + absDiff(pa.V, pb.V)
	}
	return s
}

func absDiff(a, b uint8) int64 {
	if a > b {
		return int64(a - b)
	}
	return int64(b - a)
}

// FindBestBlock searches the reference grid ref for the block within
// a Manhattan box of radius s (in block coordinates) around (i, j)
// that minimises SAD against cur. Ties are broken by row-major scan
// order (l ascending, then m ascending): the first candidate
// achieving the minimum wins, which keeps the search deterministic
// between encoder and decoder.
func FindBestBlock(cur *yuvframe.Block, ref [][]*yuvframe.Block, s, i, j int) (*yuvframe.Block, Vector) {
	var (
		best     *yuvframe.Block
		bestVec  Vector
		bestScor int64
		found    bool
	)
	for l := 0; l < len(ref); l++ {
		if abs(l-i) > s {
			continue
		}
		for m := 0; m < len(ref[l]); m++ {
			if abs(m-j) > s {
				continue
			}
			score := sad(cur, ref[l][m])
			if !found || score < bestScor {
				found = true
				bestScor = score
				best = ref[l][m]
				bestVec = Vector{L: l, M: m}
			}
		}
	}
	return best, bestVec
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// EncodeBlock emits the motion vector (as two signed residuals, per
// 4.5 framing) and then the B*B component residuals between cur and
// the matched reference block, row-major within the block.
func EncodeBlock(w *bitstream.Writer, g *golomb.Coder, cur *yuvframe.Block, ref [][]*yuvframe.Block, s, i, j int) error {
	best, vec := FindBestBlock(cur, ref, s, i, j)

	if err := g.EncodeSigned(w, int32(vec.L)); err != nil {
		return err
	}
	if err := g.EncodeSigned(w, int32(vec.M)); err != nil {
		return err
	}

	for idx := range cur.Pix {
		c, r := cur.Pix[idx], best.Pix[idx]
		if err := g.EncodeSigned(w, int32(c.Y)-int32(r.Y)); err != nil {
			return err
		}
		if err := g.EncodeSigned(w, int32(c.U)-int32(r.U)); err != nil {
			return err
		}
		if err := g.EncodeSigned(w, int32(c.V)-int32(r.V)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBlock reads a motion vector and B*B residual triples,
// reconstructing the current block from the referenced block of
// refGrid (the previously reconstructed frame's blocks) plus the decoded
// residuals, and writes the result into cur at its frame position.
func DecodeBlock(r *bitstream.Reader, g *golomb.Coder, cur *yuvframe.Frame, refGrid [][]*yuvframe.Block, b, blockRow, blockCol int) error {
	l, err := g.DecodeSigned(r)
	if err != nil {
		return err
	}
	m, err := g.DecodeSigned(r)
	if err != nil {
		return err
	}
	ref := refGrid[l][m]

	for a := 0; a < b; a++ {
		for c := 0; c < b; c++ {
			ey, err := g.DecodeSigned(r)
			if err != nil {
				return err
			}
			eu, err := g.DecodeSigned(r)
			if err != nil {
				return err
			}
			ev, err := g.DecodeSigned(r)
			if err != nil {
				return err
			}

			rp := ref.At(a, c)
			line, col := blockRow*b+a, blockCol*b+c
			cur.PutComponent(yuvframe.Y, line, col, uint8(int32(rp.Y)+ey))
			cur.PutComponent(yuvframe.U, line, col, uint8(int32(rp.U)+eu))
			cur.PutComponent(yuvframe.V, line, col, uint8(int32(rp.V)+ev))
		}
	}
	return nil
}
