/*
NAME
  container.go

DESCRIPTION
  container.go implements the raw-YUV file container: a single
  newline-terminated ASCII header line followed by concatenated
  Y|U|V frame planes. This is the "external collaborator" spec.md
  places outside the codec CORE; it only marshals bytes into freshly
  allocated Frames and out of caller-supplied Frames, never mutating a
  FrameStore itself.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package container implements the raw planar YUV file format: a
// header line followed by concatenated per-frame Y, U and V planes.
package container

import (
	"bufio"
	"io"

	"github.com/ausocean/hybridcodec/codec/hybrid/header"
	"github.com/ausocean/hybridcodec/codec/hybrid/hybriderr"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

// Source reads frames from a raw YUV byte stream, buffering reads in
// the style of codec/codecutil.ByteScanner.
type Source struct {
	r      *bufio.Reader
	Header *header.Header
}

// NewSource reads and parses the header line from r, then returns a
// Source ready to yield frames via ReadFrame.
func NewSource(r io.Reader) (*Source, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, hybriderr.Wrap(hybriderr.IOError, err, "reading header line")
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	h, err := header.Parse(line)
	if err != nil {
		return nil, err
	}
	return &Source{r: br, Header: h}, nil
}

// ReadFrame fills a freshly allocated Frame with the next frame's Y,
// U and V planes, in that order. It returns io.EOF (with no partial
// frame populated) when the true end of input is reached cleanly
// between frames, and hybriderr.PlaneSizeMismatch if a frame is cut
// short partway through a plane.
func (s *Source) ReadFrame() (*yuvframe.Frame, error) {
	f := yuvframe.NewFrame(s.Header.CS, s.Header.Height, s.Header.Width)

	if err := s.readPlane(f.Ypix, true); err != nil {
		return nil, err
	}
	if err := s.readPlane(f.Upix, false); err != nil {
		return nil, err
	}
	if err := s.readPlane(f.Vpix, false); err != nil {
		return nil, err
	}
	return f, nil
}

// readPlane fills buf completely from the source. allowEOF permits a
// clean io.EOF only when zero bytes have been read yet (i.e. at a
// frame boundary); any other short read is a PlaneSizeMismatch.
func (s *Source) readPlane(buf []byte, allowEOF bool) error {
	n, err := io.ReadFull(s.r, buf)
	if err == io.EOF && allowEOF && n == 0 {
		return io.EOF
	}
	if err == io.ErrUnexpectedEOF || (err == io.EOF && n < len(buf)) {
		return hybriderr.New(hybriderr.PlaneSizeMismatch, "raw file shorter than frames x frame length")
	}
	if err != nil {
		return hybriderr.Wrap(hybriderr.IOError, err, "reading plane")
	}
	return nil
}

// Sink writes frames out in raw YUV format: a header line followed
// by concatenated Y|U|V planes per frame, mirroring Source.
type Sink struct {
	w io.Writer
}

// NewSink writes h as the header line and returns a Sink ready to
// accept frames via WriteFrame.
func NewSink(w io.Writer, h *header.Header) (*Sink, error) {
	if _, err := io.WriteString(w, h.String()+"\n"); err != nil {
		return nil, hybriderr.Wrap(hybriderr.IOError, err, "writing header line")
	}
	return &Sink{w: w}, nil
}

// WriteFrame appends f's Y, U and V planes to the sink.
func (s *Sink) WriteFrame(f *yuvframe.Frame) error {
	for _, plane := range [][]byte{f.Ypix, f.Upix, f.Vpix} {
		if _, err := s.w.Write(plane); err != nil {
			return hybriderr.Wrap(hybriderr.IOError, err, "writing plane")
		}
	}
	return nil
}
