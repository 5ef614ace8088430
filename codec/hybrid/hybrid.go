/*
NAME
  hybrid.go

DESCRIPTION
  hybrid.go implements Codec, the frame-by-frame orchestrator binding
  together StreamHeader, FrameStore, IntraCoder, InterCoder and
  Golomb/BitStream into the hybrid intra/inter YUV codec described by
  this repository's specification.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package hybrid implements the hybrid intra/inter-frame codec for
// raw planar YUV video: a JPEG-LS-style MED intra predictor for the
// first frame and per-block motion-compensated inter coding for
// every subsequent frame, with residuals framed as signed Golomb
// codes over a packed bitstream.
package hybrid

import (
	"io"
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/hybridcodec/codec/hybrid/bitstream"
	"github.com/ausocean/hybridcodec/codec/hybrid/container"
	"github.com/ausocean/hybridcodec/codec/hybrid/golomb"
	"github.com/ausocean/hybridcodec/codec/hybrid/header"
	"github.com/ausocean/hybridcodec/codec/hybrid/hybriderr"
	"github.com/ausocean/hybridcodec/codec/hybrid/inter"
	"github.com/ausocean/hybridcodec/codec/hybrid/intra"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

// Codec holds a single FrameStore and the header describing it,
// lending the store by reference to the Intra/Inter coders for the
// duration of a single frame. It is not safe for concurrent use.
type Codec struct {
	Header *header.Header
	store  *yuvframe.Store
	log    logging.Logger
}

// nullLogger discards everything; used when callers don't supply one.
type nullLogger struct{}

func (nullLogger) SetLevel(int8)                                 {}
func (nullLogger) Log(level int8, message string, params ...any) {}

func logOrNull(l logging.Logger) logging.Logger {
	if l == nil {
		return nullLogger{}
	}
	return l
}

// OpenRaw opens a raw YUV file (header line plus concatenated
// frames) and reads up to limit frames (0 meaning all) into a fresh
// FrameStore.
func OpenRaw(path string, limit int, log logging.Logger) (*Codec, error) {
	log = logOrNull(log)
	f, err := os.Open(path)
	if err != nil {
		return nil, hybriderr.Wrap(hybriderr.IOError, err, "opening raw file")
	}
	defer f.Close()

	src, err := container.NewSource(f)
	if err != nil {
		return nil, err
	}
	log.Log(logging.Debug, "parsed raw header", "header", src.Header.String())

	store := yuvframe.NewStore(src.Header.CS, src.Header.Height, src.Header.Width, 0)
	for n := 0; limit == 0 || n < limit; n++ {
		fr, err := src.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		store.Append(fr)
	}
	src.Header.Frames = store.Len()
	log.Log(logging.Info, "read raw frames", "count", store.Len())

	return &Codec{Header: src.Header, store: store, log: log}, nil
}

// OpenEncoded opens a compressed hybrid-codec stream and decodes up
// to limit frames (0 meaning all declared in the header).
func OpenEncoded(path string, limit int, log logging.Logger) (*Codec, error) {
	log = logOrNull(log)
	f, err := os.Open(path)
	if err != nil {
		return nil, hybriderr.Wrap(hybriderr.IOError, err, "opening encoded file")
	}
	defer f.Close()

	hdr, br, err := readEncodedHeader(f)
	if err != nil {
		return nil, err
	}
	log.Log(logging.Debug, "parsed encoded header", "header", hdr.String())

	g, err := golomb.New(hdr.M)
	if err != nil {
		return nil, err
	}

	total := hdr.Frames
	if limit > 0 && limit < total {
		total = limit
	}

	store := yuvframe.NewStore(hdr.CS, hdr.Height, hdr.Width, total)
	q := intra.Quant(hdr.Q)

	for i := 0; i < total; i++ {
		if i == 0 {
			fr := store.AllocFrame(0)
			if err := intra.Decode(br, g, fr, q); err != nil {
				return nil, err
			}
			log.Log(logging.Debug, "decoded intra frame", "frame", i)
			continue
		}

		prev := store.Frame(i - 1)
		refGrid := prev.Tile(hdr.B)
		cur := store.AllocFrame(i)

		nr := hdr.Height / hdr.B
		nc := hdr.Width / hdr.B
		for bi := 0; bi < nr; bi++ {
			for bj := 0; bj < nc; bj++ {
				if err := inter.DecodeBlock(br, g, cur, refGrid, hdr.B, bi, bj); err != nil {
					return nil, err
				}
			}
		}
		log.Log(logging.Debug, "decoded inter frame", "frame", i)
	}

	return &Codec{Header: hdr, store: store, log: log}, nil
}

// readEncodedHeader reads the one-byte length prefix and the ASCII
// header that follows it, returning a bitstream.Reader positioned
// exactly at the start of the packed payload.
func readEncodedHeader(f *os.File) (*header.Header, *bitstream.Reader, error) {
	var lenBuf [1]byte
	if _, err := io.ReadFull(f, lenBuf[:]); err != nil {
		return nil, nil, hybriderr.Wrap(hybriderr.IOError, err, "reading header length")
	}
	headerLen := int(lenBuf[0])

	buf := make([]byte, headerLen)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "reading header bytes")
	}

	hdr, err := header.Parse(string(buf))
	if err != nil {
		return nil, nil, err
	}
	if !hdr.Encoded {
		return nil, nil, hybriderr.New(hybriderr.HeaderMalformed, "stream header has no Golomb divisor token")
	}

	return hdr, bitstream.NewReader(f), nil
}

// EncodeTo encodes the codec's loaded frame sequence to path: frame
// 0 via the MED intra predictor, and every subsequent frame via
// block-matched inter coding against the immediately preceding
// (reconstructed) frame. m must be a power of two; q may be the zero
// value for lossless coding.
func (c *Codec) EncodeTo(path string, m uint32, b, s int, q [3]uint8) error {
	g, err := golomb.New(m)
	if err != nil {
		return err
	}

	hdr := *c.Header
	hdr.Encoded = true
	hdr.Legacy = false // this encoder only ever emits the full-width Gv2 token
	hdr.M = m
	hdr.B = b
	hdr.S = s
	hdr.Q = q
	hdr.Frames = c.store.Len()
	if err := hdr.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return hybriderr.Wrap(hybriderr.IOError, err, "creating output file")
	}
	defer f.Close()

	text := hdr.String()
	if len(text) > 255 {
		return hybriderr.New(hybriderr.HeaderMalformed, "serialised header exceeds 255 bytes")
	}
	if _, err := f.Write([]byte{byte(len(text))}); err != nil {
		return hybriderr.Wrap(hybriderr.IOError, err, "writing header length")
	}
	if _, err := io.WriteString(f, text); err != nil {
		return hybriderr.Wrap(hybriderr.IOError, err, "writing header text")
	}

	bw := bitstream.NewWriter(f)
	qv := intra.Quant(q)

	for i := 0; i < c.store.Len(); i++ {
		if i == 0 {
			if err := intra.Encode(bw, g, c.store.Frame(0), qv); err != nil {
				return err
			}
			c.log.Log(logging.Debug, "encoded intra frame", "frame", i)
			continue
		}

		cur := c.store.Frame(i)
		prev := c.store.Frame(i - 1)
		curGrid := cur.Tile(b)
		refGrid := prev.Tile(b)

		for bi := range curGrid {
			for bj := range curGrid[bi] {
				if err := inter.EncodeBlock(bw, g, curGrid[bi][bj], refGrid, s, bi, bj); err != nil {
					return err
				}
			}
		}
		c.log.Log(logging.Debug, "encoded inter frame", "frame", i)
	}

	if err := bw.Close(); err != nil {
		return err
	}
	c.log.Log(logging.Info, "encode complete", "frames", c.store.Len(), "path", path)
	return nil
}

// Frames returns the codec's full decoded/loaded frame sequence, for
// verification against a reference.
func (c *Codec) Frames() ([]*yuvframe.Frame, error) {
	return c.store.Frames()
}
