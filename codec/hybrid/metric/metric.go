/*
NAME
  metric.go

DESCRIPTION
  metric.go computes PSNR and MSE between two YUV frames, used to
  evaluate the quality loss introduced by quantized encoding. This is
  the "quality metrics" external collaborator spec.md places outside
  the codec CORE: it consumes frames only through Codec.Frames() and
  never reaches into a FrameStore directly.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package metric computes quality metrics (MSE, PSNR) between two
// YUV frames, for comparing a lossy-encoded round trip against its
// source.
package metric

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/hybridcodec/codec/hybrid/hybriderr"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

// Components holds a per-component (Y, U, V) metric value.
type Components struct{ Y, U, V float64 }

// MSE returns the mean squared error per component between a and b.
// a and b must have identical dimensions and colour space.
func MSE(a, b *yuvframe.Frame) (Components, error) {
	if err := checkShapesMatch(a, b); err != nil {
		return Components{}, err
	}
	return Components{
		Y: mseOf(a.Ypix, b.Ypix),
		U: mseOf(a.Upix, b.Upix),
		V: mseOf(a.Vpix, b.Vpix),
	}, nil
}

// PSNR returns the peak signal-to-noise ratio (dB) per component
// between a and b, derived from MSE. A component with zero MSE (an
// exact match) is reported as +Inf.
func PSNR(a, b *yuvframe.Frame) (Components, error) {
	m, err := MSE(a, b)
	if err != nil {
		return Components{}, err
	}
	return Components{
		Y: psnrOf(m.Y),
		U: psnrOf(m.U),
		V: psnrOf(m.V),
	}, nil
}

func psnrOf(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	const peak = 255.0
	return 10 * math.Log10(peak*peak/mse)
}

// mseOf uses gonum/stat's mean reduction over the squared
// per-sample differences, rather than a hand-rolled accumulator.
func mseOf(a, b []uint8) float64 {
	if len(a) == 0 {
		return 0
	}
	sq := make([]float64, len(a))
	for i := range a {
		d := float64(int(a[i]) - int(b[i]))
		sq[i] = d * d
	}
	return stat.Mean(sq, nil)
}

func checkShapesMatch(a, b *yuvframe.Frame) error {
	if a.H != b.H || a.W != b.W || len(a.Upix) != len(b.Upix) || len(a.Vpix) != len(b.Vpix) {
		return hybriderr.New(hybriderr.PlaneSizeMismatch, "frames have mismatched dimensions")
	}
	return nil
}
