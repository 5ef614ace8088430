package intra

import (
	"bytes"
	"testing"

	"github.com/ausocean/hybridcodec/codec/hybrid/bitstream"
	"github.com/ausocean/hybridcodec/codec/hybrid/golomb"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

func TestMEDPredictorCorrectness(t *testing.T) {
	cases := []struct {
		w, n, nw int32
		want     int32
	}{
		{10, 20, 5, 20},
		{10, 20, 25, 10},
		{10, 20, 15, 15},
	}
	for _, c := range cases {
		if got := med(c.w, c.n, c.nw); got != c.want {
			t.Errorf("med(%d,%d,%d) = %d, want %d", c.w, c.n, c.nw, got, c.want)
		}
	}
}

func TestLosslessRoundTripAllZero(t *testing.T) {
	f := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	g, _ := golomb.New(4)

	var buf bytes.Buffer
	w := bitstream.NewWriter(&buf)
	if err := Encode(w, g, f, Quant{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	w.Close()

	got := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	r := bitstream.NewReader(&buf)
	if err := Decode(r, g, got, Quant{}); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for i := range got.Ypix {
		if got.Ypix[i] != f.Ypix[i] {
			t.Fatalf("Y[%d]: got %d want %d", i, got.Ypix[i], f.Ypix[i])
		}
	}
}

func TestE2SingleNonZeroPixel(t *testing.T) {
	f := yuvframe.NewFrame(yuvframe.C444, 4, 4)
	f.PutComponent(yuvframe.Y, 0, 0, 5)
	g, _ := golomb.New(4)

	var buf bytes.Buffer
	w := bitstream.NewWriter(&buf)
	if err := Encode(w, g, f, Quant{}); err != nil {
		t.Fatal(err)
	}
	w.Close()

	got := yuvframe.NewFrame(yuvframe.C444, 4, 4)
	r := bitstream.NewReader(&buf)
	if err := Decode(r, g, got, Quant{}); err != nil {
		t.Fatal(err)
	}

	for i := range got.Ypix {
		if got.Ypix[i] != f.Ypix[i] {
			t.Errorf("Y[%d]: got %d want %d", i, got.Ypix[i], f.Ypix[i])
		}
	}
}

func TestQuantizedRoundTripBound(t *testing.T) {
	const h, w = 8, 8
	f := yuvframe.NewFrame(yuvframe.C444, h, w)
	for l := 0; l < h; l++ {
		for c := 0; c < w; c++ {
			f.PutComponent(yuvframe.Y, l, c, uint8(l*w+c))
		}
	}

	orig := yuvframe.NewFrame(yuvframe.C444, h, w)
	copy(orig.Ypix, f.Ypix)
	copy(orig.Upix, f.Upix)
	copy(orig.Vpix, f.Vpix)

	g, _ := golomb.New(4)
	q := Quant{2, 0, 0}

	var buf bytes.Buffer
	bw := bitstream.NewWriter(&buf)
	if err := Encode(bw, g, f, q); err != nil {
		t.Fatal(err)
	}
	bw.Close()

	got := yuvframe.NewFrame(yuvframe.C444, h, w)
	br := bitstream.NewReader(&buf)
	if err := Decode(br, g, got, q); err != nil {
		t.Fatal(err)
	}

	for l := 1; l < h; l++ {
		for c := 1; c < w; c++ {
			o := int(orig.Ypix[l*w+c])
			d := int(got.Ypix[l*w+c])
			diff := o - d
			if diff < 0 {
				diff = -diff
			}
			if diff > int(q[0]) {
				t.Errorf("(%d,%d): |orig-recon|=%d exceeds q=%d", l, c, diff, q[0])
			}
		}
	}

	// U, V are lossless (q=0) and must round-trip exactly.
	for i := range got.Upix {
		if got.Upix[i] != orig.Upix[i] || got.Vpix[i] != orig.Vpix[i] {
			t.Errorf("chroma[%d]: U got %d want %d, V got %d want %d", i, got.Upix[i], orig.Upix[i], got.Vpix[i], orig.Vpix[i])
		}
	}
}
