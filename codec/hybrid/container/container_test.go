package container

import (
	"bytes"
	"io"
	"testing"

	"github.com/ausocean/hybridcodec/codec/hybrid/header"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

func TestSourceSinkRoundTrip(t *testing.T) {
	h := &header.Header{Width: 4, Height: 4, FPS: 25, CS: yuvframe.C444}

	var buf bytes.Buffer
	sink, err := NewSink(&buf, h)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}

	f := yuvframe.NewFrame(yuvframe.C444, 4, 4)
	for i := range f.Ypix {
		f.Ypix[i] = uint8(i)
	}
	if err := sink.WriteFrame(f); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	src, err := NewSource(&buf)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if src.Header.Width != 4 || src.Header.Height != 4 {
		t.Fatalf("got header %+v", src.Header)
	}

	got, err := src.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	for i := range got.Ypix {
		if got.Ypix[i] != f.Ypix[i] {
			t.Errorf("Y[%d]: got %d want %d", i, got.Ypix[i], f.Ypix[i])
		}
	}

	if _, err := src.ReadFrame(); err != io.EOF {
		t.Errorf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestSourceTruncatedFrameIsPlaneSizeMismatch(t *testing.T) {
	h := &header.Header{Width: 4, Height: 4, FPS: 25, CS: yuvframe.C444}
	var buf bytes.Buffer
	buf.WriteString(h.String() + "\n")
	buf.Write(make([]byte, 10)) // short of the 16-byte Y plane

	src, err := NewSource(&buf)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if _, err := src.ReadFrame(); err == nil {
		t.Fatal("expected PlaneSizeMismatch error")
	}
}
