/*
DESCRIPTION
  hybridcodec is a command-line front end for the hybrid intra/inter
  YUV codec, offering encode, decode, metrics and a debug frame-dump
  subcommand.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements the hybridcodec command-line tool.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/ausocean/utils/logging"
	"golang.org/x/image/draw"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/hybridcodec/codec/hybrid"
	"github.com/ausocean/hybridcodec/codec/hybrid/container"
	"github.com/ausocean/hybridcodec/codec/hybrid/header"
	"github.com/ausocean/hybridcodec/codec/hybrid/metric"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

// Logging related constants, matching cmd/looper's bootstrapping.
const (
	logPath      = "hybridcodec.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = false
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logging.Debug, fileLog, logSuppress)

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:], log)
	case "decode":
		err = runDecode(os.Args[2:], log)
	case "metrics":
		err = runMetrics(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Log(logging.Error, "command failed", "error", err)
		fmt.Fprintln(os.Stderr, "hybridcodec:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hybridcodec <encode|decode|metrics|dump> [flags]")
}

func runEncode(args []string, log logging.Logger) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	in := fs.String("in", "", "input raw YUV file")
	out := fs.String("out", "", "output compressed file")
	m := fs.Uint("m", 4, "Golomb divisor M (power of two)")
	b := fs.Int("b", 16, "block size")
	s := fs.Int("s", 2, "search window, in blocks")
	qy := fs.Uint("qy", 0, "Y quantisation step (0 = lossless)")
	qu := fs.Uint("qu", 0, "U quantisation step (0 = lossless)")
	qv := fs.Uint("qv", 0, "V quantisation step (0 = lossless)")
	limit := fs.Int("limit", 0, "limit number of frames read (0 = all)")
	fs.Parse(args)

	c, err := hybrid.OpenRaw(*in, *limit, log)
	if err != nil {
		return err
	}
	q := [3]uint8{uint8(*qy), uint8(*qu), uint8(*qv)}
	return c.EncodeTo(*out, uint32(*m), *b, *s, q)
}

func runDecode(args []string, log logging.Logger) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "input compressed file")
	out := fs.String("out", "", "output raw YUV file")
	limit := fs.Int("limit", 0, "limit number of frames decoded (0 = all)")
	fs.Parse(args)

	c, err := hybrid.OpenEncoded(*in, *limit, log)
	if err != nil {
		return err
	}
	frames, err := c.Frames()
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	h := *c.Header
	h.Encoded = false
	sink, err := container.NewSink(f, &h)
	if err != nil {
		return err
	}
	for _, fr := range frames {
		if err := sink.WriteFrame(fr); err != nil {
			return err
		}
	}
	return nil
}

func runMetrics(args []string) error {
	fs := flag.NewFlagSet("metrics", flag.ExitOnError)
	a := fs.String("a", "", "first raw YUV file")
	bPath := fs.String("b", "", "second raw YUV file")
	fs.Parse(args)

	ca, err := hybrid.OpenRaw(*a, 0, nil)
	if err != nil {
		return err
	}
	cb, err := hybrid.OpenRaw(*bPath, 0, nil)
	if err != nil {
		return err
	}
	framesA, err := ca.Frames()
	if err != nil {
		return err
	}
	framesB, err := cb.Frames()
	if err != nil {
		return err
	}
	if len(framesA) != len(framesB) {
		return fmt.Errorf("frame count mismatch: %d vs %d", len(framesA), len(framesB))
	}

	for i := range framesA {
		p, err := metric.PSNR(framesA[i], framesB[i])
		if err != nil {
			return err
		}
		m, err := metric.MSE(framesA[i], framesB[i])
		if err != nil {
			return err
		}
		fmt.Printf("frame %d: PSNR Y=%.2f U=%.2f V=%.2f MSE Y=%.2f U=%.2f V=%.2f\n", i, p.Y, p.U, p.V, m.Y, m.U, m.V)
	}
	return nil
}

// runDump decodes a single frame from a compressed stream and writes
// a down-sampled PNG preview, for eyeballing a frame without a full
// YUV viewer. This is debug tooling only, outside the codec CORE.
func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	in := fs.String("in", "", "input compressed file")
	frameIdx := fs.Int("frame", 0, "frame index to dump")
	out := fs.String("out", "preview.png", "output PNG path")
	width := fs.Int("width", 320, "preview width")
	fs.Parse(args)

	c, err := hybrid.OpenEncoded(*in, *frameIdx+1, nil)
	if err != nil {
		return err
	}
	frames, err := c.Frames()
	if err != nil {
		return err
	}
	if *frameIdx >= len(frames) {
		return fmt.Errorf("frame %d not available (decoded %d)", *frameIdx, len(frames))
	}
	fr := frames[*frameIdx]

	img := toYCbCr(fr)

	ratio := float64(*width) / float64(fr.W)
	dstH := int(float64(fr.H) * ratio)
	dst := image.NewRGBA(image.Rect(0, 0, *width, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}

// toYCbCr builds a standard image.YCbCr from a decoded Frame, using
// the colour space's own chroma-plane ratio.
func toYCbCr(f *yuvframe.Frame) *image.YCbCr {
	var ratio image.YCbCrSubsampleRatio
	switch f.CS {
	case yuvframe.C444:
		ratio = image.YCbCrSubsampleRatio444
	case yuvframe.C422:
		ratio = image.YCbCrSubsampleRatio422
	default:
		ratio = image.YCbCrSubsampleRatio420
	}
	img := image.NewYCbCr(image.Rect(0, 0, f.W, f.H), ratio)
	copy(img.Y, f.Ypix)
	copy(img.Cb, f.Upix)
	copy(img.Cr, f.Vpix)
	return img
}
