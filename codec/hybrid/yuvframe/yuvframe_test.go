package yuvframe

import "testing"

func TestBoundaryPixelsReturnZero(t *testing.T) {
	for _, cs := range []ColorSpace{C444, C422, C420} {
		f := NewFrame(cs, 8, 8)
		if y, u, v := f.GetPixel(-1, 3); y != 0 || u != 0 || v != 0 {
			t.Errorf("%v: GetPixel(-1,3) = (%d,%d,%d), want zero", cs, y, u, v)
		}
		if y, u, v := f.GetPixel(3, -1); y != 0 || u != 0 || v != 0 {
			t.Errorf("%v: GetPixel(3,-1) = (%d,%d,%d), want zero", cs, y, u, v)
		}
	}
}

func TestChromaDims(t *testing.T) {
	cases := []struct {
		cs     ColorSpace
		h, w   int
		ch, cw int
	}{
		{C444, 8, 8, 8, 8},
		{C422, 8, 8, 8, 4},
		{C420, 8, 8, 4, 4},
	}
	for _, c := range cases {
		ch, cw := c.cs.ChromaDims(c.h, c.w)
		if ch != c.ch || cw != c.cw {
			t.Errorf("%v: ChromaDims(%d,%d) = (%d,%d), want (%d,%d)", c.cs, c.h, c.w, ch, cw, c.ch, c.cw)
		}
	}
}

func TestPutGetPixelRoundTrip(t *testing.T) {
	f := NewFrame(C420, 8, 8)
	f.PutComponent(Y, 2, 3, 42)
	f.PutComponent(U, 2, 3, 10)
	f.PutComponent(V, 2, 3, 20)

	y, u, v := f.GetPixel(2, 3)
	if y != 42 || u != 10 || v != 20 {
		t.Errorf("got (%d,%d,%d), want (42,10,20)", y, u, v)
	}

	// Chroma folding: an adjacent odd column maps to the same chroma sample.
	y2, u2, v2 := f.GetPixel(2, 2)
	if u2 != 10 || v2 != 20 {
		t.Errorf("adjacent column chroma fold: got (%d,%d), want (10,20)", u2, v2)
	}
	_ = y2
}

func TestTileIgnoresTrailingPartialBlocks(t *testing.T) {
	f := NewFrame(C444, 10, 10)
	grid := f.Tile(4)
	if len(grid) != 2 || len(grid[0]) != 2 {
		t.Fatalf("got %dx%d grid, want 2x2", len(grid), len(grid[0]))
	}
}

func TestGetBlockAssemblesFromPixels(t *testing.T) {
	f := NewFrame(C444, 4, 4)
	f.PutComponent(Y, 0, 0, 5)
	blk := f.GetBlock(0, 0, 2)
	if blk.At(0, 0).Y != 5 {
		t.Errorf("got %d, want 5", blk.At(0, 0).Y)
	}
}

func TestStoreFramesIncomplete(t *testing.T) {
	s := NewStore(C444, 4, 4, 2)
	s.AllocFrame(0)
	if _, err := s.Frames(); err == nil {
		t.Fatal("expected error for incomplete sequence")
	}
}
