package metric

import (
	"math"
	"testing"

	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

func TestMSEZeroForIdenticalFrames(t *testing.T) {
	f := yuvframe.NewFrame(yuvframe.C444, 4, 4)
	for i := range f.Ypix {
		f.Ypix[i] = uint8(i * 7)
	}
	m, err := MSE(f, f)
	if err != nil {
		t.Fatalf("MSE: %v", err)
	}
	if m.Y != 0 || m.U != 0 || m.V != 0 {
		t.Errorf("got %+v, want all zero", m)
	}
}

func TestPSNRInfForIdenticalFrames(t *testing.T) {
	f := yuvframe.NewFrame(yuvframe.C444, 4, 4)
	p, err := PSNR(f, f)
	if err != nil {
		t.Fatalf("PSNR: %v", err)
	}
	if !math.IsInf(p.Y, 1) {
		t.Errorf("got Y=%v, want +Inf", p.Y)
	}
}

func TestMSEMismatchedShapesErrors(t *testing.T) {
	a := yuvframe.NewFrame(yuvframe.C444, 4, 4)
	b := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	if _, err := MSE(a, b); err == nil {
		t.Fatal("expected error for mismatched shapes")
	}
}

func TestMSEKnownDifference(t *testing.T) {
	a := yuvframe.NewFrame(yuvframe.C444, 1, 2)
	b := yuvframe.NewFrame(yuvframe.C444, 1, 2)
	a.Ypix = []uint8{10, 20}
	b.Ypix = []uint8{12, 16}
	m, err := MSE(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := (4.0 + 16.0) / 2
	if m.Y != want {
		t.Errorf("got %v want %v", m.Y, want)
	}
}
