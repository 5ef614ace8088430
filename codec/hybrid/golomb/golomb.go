/*
NAME
  golomb.go

DESCRIPTION
  golomb.go implements a parameterised Golomb-Rice coder for
  non-negative integers, with a power-of-two divisor M.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package golomb implements Golomb-Rice coding of non-negative
// integers over a bitstream.Reader/Writer, with a power-of-two
// divisor M.
package golomb

import (
	"math/bits"

	"github.com/ausocean/hybridcodec/codec/hybrid/bitstream"
	"github.com/ausocean/hybridcodec/codec/hybrid/hybriderr"
)

// Coder encodes and decodes non-negative integers with divisor M.
type Coder struct {
	m uint32
	k int // log2(m)
}

// New returns a Coder for divisor m, which must be a positive power
// of two; otherwise hybriderr.GolombParamInvalid is returned.
func New(m uint32) (*Coder, error) {
	if m == 0 || m&(m-1) != 0 {
		return nil, hybriderr.New(hybriderr.GolombParamInvalid, "M must be a positive power of two")
	}
	return &Coder{m: m, k: bits.TrailingZeros32(m)}, nil
}

// M returns the coder's divisor.
func (c *Coder) M() uint32 { return c.m }

// K returns log2(M), the fixed remainder width in bits.
func (c *Coder) K() int { return c.k }

// Encode writes n (n >= 0) to w as q one-bits, a zero terminator,
// then exactly K remainder bits MSB-first.
func (c *Coder) Encode(w *bitstream.Writer, n uint32) error {
	q := n >> uint(c.k)
	r := n & (c.m - 1)

	for i := uint32(0); i < q; i++ {
		if err := w.WriteBits(1, 1); err != nil {
			return err
		}
	}
	if err := w.WriteBits(0, 1); err != nil {
		return err
	}
	if c.k > 0 {
		if err := w.WriteBits(uint64(r), c.k); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a unary run of one-bits terminated by a zero, then K
// remainder bits, and returns q*M + r.
func (c *Coder) Decode(r *bitstream.Reader) (uint32, error) {
	var q uint32
	for {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if b == 0 {
			break
		}
		q++
	}
	var rem uint64
	if c.k > 0 {
		var err error
		rem, err = r.ReadBits(c.k)
		if err != nil {
			return 0, err
		}
	}
	return q*c.m + uint32(rem), nil
}

// EncodedLen returns the bit length of Encode(n): floor(n/M) + 1 + log2(M).
func (c *Coder) EncodedLen(n uint32) int {
	return int(n>>uint(c.k)) + 1 + c.k
}
