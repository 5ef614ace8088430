/*
NAME
  header.go

DESCRIPTION
  header.go parses and serialises the whitespace-separated ASCII
  header that precedes both raw YUV files and compressed hybrid
  streams (see spec §4.7/§6).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package header parses and serialises the ASCII header carried by
// raw YUV files and compressed hybrid-codec streams.
package header

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/hybridcodec/codec/hybrid/hybriderr"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

// Header holds every token recognised from the stream header, doubling
// as both the wire header and the encode-time configuration (M, B, S, Q).
type Header struct {
	Width, Height int
	FPS           int
	CS            yuvframe.ColorSpace

	// Encoded is true if a Golomb divisor token (G or Gv2) was present,
	// i.e. this is a compressed stream header rather than a raw one.
	Encoded bool
	M       uint32 // Golomb divisor, power of two.
	Frames  int    // total frame count (z).
	B       int    // block size.
	S       int    // search window, in blocks.
	Q       [3]uint8

	// Legacy marks a header parsed with the historical truncating G
	// token (last digit of the suffix read as the divisor M itself,
	// undersizing M for any source M >= 10), preserved for decoding
	// files written by older encoders. Validate rejects a Legacy
	// header outright: it must be normalised (Legacy = false) before
	// it can drive a new encode, which EncodeTo does explicitly.
	Legacy bool
}

// Parse interprets a whitespace-separated header string per spec §4.7.
func Parse(s string) (*Header, error) {
	h := &Header{}
	var haveW, haveH, haveC bool

	fields := strings.Fields(s)
	for _, field := range fields {
		if field == "" {
			continue
		}
		prefix := field[0]
		switch prefix {
		case 'W':
			v, err := strconv.Atoi(field[1:])
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing W token")
			}
			h.Width = v
			haveW = true
		case 'H':
			v, err := strconv.Atoi(field[1:])
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing H token")
			}
			h.Height = v
			haveH = true
		case 'F':
			// Legacy source reads field[1:3], which in Python slicing
			// tolerates a short field (a single-digit fps still parses).
			end := len(field)
			if end > 3 {
				end = 3
			}
			if end < 2 {
				return nil, hybriderr.New(hybriderr.HeaderMalformed, "F token too short")
			}
			v, err := strconv.Atoi(field[1:end])
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing F token")
			}
			h.FPS = v
			if len(field) > 3 {
				// A full-width FPS value is present beyond the legacy
				// two digits; prefer it. The Legacy flag is left as is.
				if v2, err := strconv.Atoi(field[1:]); err == nil {
					h.FPS = v2
				}
			}
		case 'C':
			v, err := strconv.Atoi(field[1:])
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing C token")
			}
			cs, err := yuvframe.ParseColorSpace(v)
			if err != nil {
				return nil, err
			}
			h.CS = cs
			haveC = true
		case 'G':
			h.Encoded = true
			// Legacy bare G: only the last digit of the numeric suffix
			// is read, and that digit is the divisor M itself (not its
			// log2) — this undersizes M for any source M >= 10.
			last := field[len(field)-1]
			v, err := strconv.Atoi(string(last))
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing G token")
			}
			h.M = uint32(v)
			h.Legacy = true
		case 'v':
			// Gv2 full-width Golomb divisor token, written as "v2:<M>".
			if !strings.HasPrefix(field, "v2:") {
				return nil, hybriderr.New(hybriderr.HeaderMalformed, "unrecognised v-prefixed token")
			}
			v, err := strconv.Atoi(field[3:])
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing Gv2 token")
			}
			h.Encoded = true
			h.M = uint32(v)
			h.Legacy = false
		case 'z':
			v, err := strconv.Atoi(field[1:])
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing z token")
			}
			h.Frames = v
		case 'b':
			v, err := strconv.Atoi(field[1:])
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing b token")
			}
			h.B = v
		case 's':
			v, err := strconv.Atoi(field[1:])
			if err != nil {
				return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing s token")
			}
			h.S = v
		case 'q':
			parts := strings.Split(field[1:], ":")
			if len(parts) != 3 {
				return nil, hybriderr.New(hybriderr.HeaderMalformed, "q token must be qY:qU:qV")
			}
			for i, p := range parts {
				v, err := strconv.Atoi(p)
				if err != nil {
					return nil, hybriderr.Wrap(hybriderr.HeaderMalformed, err, "parsing q token")
				}
				h.Q[i] = uint8(v)
			}
		}
	}

	if !haveW || !haveH || !haveC {
		return nil, hybriderr.New(hybriderr.HeaderMalformed, "missing required W/H/C token")
	}
	return h, nil
}

// String serialises h back into a whitespace-separated header token
// string. New headers always use the full-width Gv2 token and the
// full FPS value; Legacy headers are never re-serialised by this
// encoder (only decoded).
func (h *Header) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "W%d H%d F%02d C%d", h.Width, h.Height, h.FPS, h.CS.Code())
	if h.Encoded {
		fmt.Fprintf(&b, " v2:%d z%d b%d s%d", h.M, h.Frames, h.B, h.S)
		if h.Q != [3]uint8{} {
			fmt.Fprintf(&b, " q%d:%d:%d", h.Q[0], h.Q[1], h.Q[2])
		}
	}
	return b.String()
}

// Validate checks the header's encode-time parameters, in the style
// of revid/config.Config.Validate.
func (h *Header) Validate() error {
	if h.Width <= 0 || h.Height <= 0 {
		return hybriderr.New(hybriderr.HeaderMalformed, "width and height must be positive")
	}
	if h.Legacy {
		return hybriderr.New(hybriderr.HeaderMalformed, "legacy header must be normalised (Legacy=false) before encoding")
	}
	if h.Encoded {
		if h.M == 0 || h.M&(h.M-1) != 0 {
			return hybriderr.New(hybriderr.GolombParamInvalid, "M must be a positive power of two")
		}
		if h.B <= 0 {
			return hybriderr.New(hybriderr.HeaderMalformed, "block size must be positive")
		}
		if h.Width%h.B != 0 || h.Height%h.B != 0 {
			return hybriderr.New(hybriderr.HeaderMalformed, "width and height must be multiples of the block size")
		}
	}
	return nil
}
