package inter

import (
	"bytes"
	"testing"

	"github.com/ausocean/hybridcodec/codec/hybrid/bitstream"
	"github.com/ausocean/hybridcodec/codec/hybrid/golomb"
	"github.com/ausocean/hybridcodec/codec/hybrid/yuvframe"
)

func TestFindBestBlockDeterministicTieBreak(t *testing.T) {
	f := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	grid := f.Tile(4) // identical frame -> every candidate scores 0.

	cur := grid[1][1]
	_, vec := FindBestBlock(cur, grid, 1, 1, 1)

	// Row-major scan order means (0,0) is the first zero-score candidate
	// encountered within the search box.
	if vec.L != 0 || vec.M != 0 {
		t.Errorf("got vector (%d,%d), want (0,0) (first row-major tie)", vec.L, vec.M)
	}
}

func TestIdentityFrameYieldsIdentityVectorPerBlock(t *testing.T) {
	f := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	for i := range f.Ypix {
		f.Ypix[i] = uint8(i)
	}
	grid := f.Tile(4)

	for i := range grid {
		for j := range grid[i] {
			_, vec := FindBestBlock(grid[i][j], grid, 1, i, j)
			if vec.L != i || vec.M != j {
				t.Errorf("block (%d,%d): got vector (%d,%d), want (%d,%d)", i, j, vec.L, vec.M, i, j)
			}
		}
	}
}

func TestEncodeDecodeBlockRoundTrip(t *testing.T) {
	prev := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	for i := range prev.Ypix {
		prev.Ypix[i] = uint8(i * 3)
	}
	cur := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	for i := range cur.Ypix {
		cur.Ypix[i] = uint8(i*3 + 1)
	}

	refGrid := prev.Tile(4)
	curGrid := cur.Tile(4)
	g, _ := golomb.New(4)

	var buf bytes.Buffer
	w := bitstream.NewWriter(&buf)
	for i := range curGrid {
		for j := range curGrid[i] {
			if err := EncodeBlock(w, g, curGrid[i][j], refGrid, 1, i, j); err != nil {
				t.Fatalf("EncodeBlock: %v", err)
			}
		}
	}
	w.Close()

	decoded := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	r := bitstream.NewReader(&buf)
	for i := range curGrid {
		for j := range curGrid[i] {
			if err := DecodeBlock(r, g, decoded, refGrid, 4, i, j); err != nil {
				t.Fatalf("DecodeBlock: %v", err)
			}
		}
	}

	for i := range decoded.Ypix {
		if decoded.Ypix[i] != cur.Ypix[i] {
			t.Fatalf("Y[%d]: got %d want %d", i, decoded.Ypix[i], cur.Ypix[i])
		}
	}
}

func TestE3UnchangedFrameIdentityVectors(t *testing.T) {
	f := yuvframe.NewFrame(yuvframe.C444, 8, 8)
	for i := range f.Ypix {
		f.Ypix[i] = uint8(i + 7)
	}
	refGrid := f.Tile(4)
	curGrid := f.Tile(4)

	wantVecs := []Vector{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	idx := 0
	for i := range curGrid {
		for j := range curGrid[i] {
			_, vec := FindBestBlock(curGrid[i][j], refGrid, 1, i, j)
			if vec != wantVecs[idx] {
				t.Errorf("block %d: got %v want %v", idx, vec, wantVecs[idx])
			}
			idx++
		}
	}
}
