package pixlet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLowpassPredictionKnownMatrix(t *testing.T) {
	dst := []int16{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	pred := make([]int16, 3)

	lowpassPrediction(dst, pred, 3, 3, 3)

	// Column running sums first, then row running sums.
	want := []int16{
		1, 3, 6,
		5, 12, 21,
		12, 27, 45,
	}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Errorf("prediction mismatch (-want +got):\n%s", diff)
	}
}

func TestLowpassPredictionDCOnly(t *testing.T) {
	// A lone DC with zero residuals predicts a uniform subband.
	const width, height, stride = 5, 4, 8
	dst := make([]int16, stride*height)
	dst[0] = 100
	pred := make([]int16, width)

	lowpassPrediction(dst, pred, width, height, stride)

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			if got := dst[r*stride+c]; got != 100 {
				t.Fatalf("sample (%d,%d) = %d, want 100", r, c, got)
			}
		}
	}
}

func TestLowpassPredictionDirtyCache(t *testing.T) {
	// The column cache is reset on entry; residue from a previous plane
	// must not leak in.
	dst := make([]int16, 4)
	dst[0] = 7
	pred := []int16{100, -3, 55, 9}

	lowpassPrediction(dst, pred, 4, 1, 4)

	want := []int16{7, 7, 7, 7}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Errorf("prediction mismatch (-want +got):\n%s", diff)
	}
}

func TestLowpassPredictionWraparound(t *testing.T) {
	// Sums wrap in int16 exactly like the reference arithmetic.
	dst := []int16{32767, 1}
	pred := make([]int16, 2)

	lowpassPrediction(dst, pred, 2, 1, 2)

	if dst[0] != 32767 {
		t.Errorf("dst[0] = %d, want 32767", dst[0])
	}
	if dst[1] != -32768 {
		t.Errorf("dst[1] = %d, want -32768", dst[1])
	}
}
