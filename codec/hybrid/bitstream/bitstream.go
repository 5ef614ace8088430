/*
NAME
  bitstream.go

DESCRIPTION
  bitstream.go provides bit-granular sequential reader and writer
  implementations over a byte source/sink, in the style of
  codec/h264/h264dec/bits.BitReader.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitstream provides bit-sequential I/O over a byte sink/source,
// used to pack and unpack the hybrid codec's compressed bitstream.
package bitstream

import (
	"bufio"
	"io"

	"github.com/ausocean/hybridcodec/codec/hybrid/hybriderr"
)

// Reader is a bit-sequential reader over an io.Reader. Reads are
// non-seeking; byte alignment is not assumed or maintained beyond the
// first byte.
type Reader struct {
	r    *bufio.Reader
	n    uint64
	bits int
}

// NewReader returns a Reader that reads bits from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadBits reads the next n bits and returns them MSB-first as the
// low n bits of the returned value. An EOF reached mid-code is
// reported as hybriderr.StreamTruncated.
func (r *Reader) ReadBits(n int) (uint64, error) {
	for n > r.bits {
		b, err := r.r.ReadByte()
		if err == io.EOF {
			return 0, hybriderr.New(hybriderr.StreamTruncated, "unexpected end of bitstream")
		}
		if err != nil {
			return 0, hybriderr.Wrap(hybriderr.IOError, err, "read byte")
		}
		r.n <<= 8
		r.n |= uint64(b)
		r.bits += 8
	}
	v := (r.n >> uint(r.bits-n)) & ((1 << uint(n)) - 1)
	r.bits -= n
	return v, nil
}

// ReadBit reads a single bit, returning 0 or 1.
func (r *Reader) ReadBit() (int, error) {
	v, err := r.ReadBits(1)
	return int(v), err
}

// Writer is a bit-sequential writer over an io.Writer. Close must be
// called to flush any partial trailing byte, zero-padded.
type Writer struct {
	w    io.Writer
	n    uint64
	bits int
}

// NewWriter returns a Writer that writes bits to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteBits appends the low n bits of value, MSB-first.
func (w *Writer) WriteBits(value uint64, n int) error {
	value &= (1 << uint(n)) - 1
	w.n = (w.n << uint(n)) | value
	w.bits += n
	for w.bits >= 8 {
		shift := uint(w.bits - 8)
		b := byte((w.n >> shift) & 0xff)
		if _, err := w.w.Write([]byte{b}); err != nil {
			return hybriderr.Wrap(hybriderr.IOError, err, "write byte")
		}
		w.bits -= 8
		w.n &= (1 << uint(w.bits)) - 1
	}
	return nil
}

// WriteText writes each byte of s, MSB-first, as 8 bits.
func (w *Writer) WriteText(s string) error {
	for i := 0; i < len(s); i++ {
		if err := w.WriteBits(uint64(s[i]), 8); err != nil {
			return err
		}
	}
	return nil
}

// Close pads any partial final byte with zero bits and flushes it.
func (w *Writer) Close() error {
	if w.bits == 0 {
		return nil
	}
	pad := 8 - w.bits
	return w.WriteBits(0, pad)
}
