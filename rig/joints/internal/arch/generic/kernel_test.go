package generic

import (
	"testing"

	"github.com/cwbudde/algo-rig/internal/testutil"
	"github.com/x448/float16"
)

func runKernel32(t *testing.T, rows, cols int, seed int64) {
	t.Helper()

	dense := testutil.Matrix(seed, rows, cols, 1)
	packed, paddedRows, paddedCols := testutil.PackBlocks(dense, rows, cols, BlockWidth, BlockHeight)

	x := make([]float32, paddedCols)
	copy(x, testutil.ControlValues(seed+1, cols))

	last := paddedRows
	secondLast := last / (2 * BlockHeight) * (2 * BlockHeight)
	out := make([]float32, paddedRows)
	Calculate32(packed, paddedCols, x, secondLast, last, out)

	want := testutil.DenseMatVec(dense, rows, cols, x)
	for r := range rows {
		if d := float64(out[r]) - want[r]; d > 1e-5 || d < -1e-5 {
			t.Fatalf("row %d: got %v, want %v", r, out[r], want[r])
		}
	}
	for r := rows; r < paddedRows; r++ {
		if out[r] != 0 {
			t.Fatalf("padding row %d = %v, want 0", r, out[r])
		}
	}
}

func TestCalculate32MatchesDense(t *testing.T) {
	shapes := []struct{ rows, cols int }{
		{1, 1}, {3, 6}, {4, 4}, {7, 9}, {8, 8}, {13, 17}, {33, 5},
	}
	for i, s := range shapes {
		runKernel32(t, s.rows, s.cols, int64(i+1))
	}
}

func TestCalculate16WidensWeights(t *testing.T) {
	rows, cols := 9, 6
	dense := testutil.Matrix(3, rows, cols, 1)
	packed, paddedRows, paddedCols := testutil.PackBlocks(dense, rows, cols, BlockWidth, BlockHeight)

	half := make([]float16.Float16, len(packed))
	for i, v := range packed {
		half[i] = float16.Fromfloat32(v)
	}

	x := make([]float32, paddedCols)
	copy(x, testutil.ControlValues(4, cols))

	out32 := make([]float32, paddedRows)
	out16 := make([]float32, paddedRows)
	Calculate32(packed, paddedCols, x, 8, paddedRows, out32)
	Calculate16(half, paddedCols, x, 8, paddedRows, out16)

	testutil.RequireSliceNearlyEqual(t, out16, out32, 5e-3)
}

func TestCalculateEmptyRegionIsNoOp(t *testing.T) {
	out := []float32{5, 5, 5, 5}
	Calculate32(make([]float32, 16), 4, make([]float32, 4), 0, 0, out)

	for i, v := range out {
		if v != 5 {
			t.Fatalf("out[%d] = %v, want untouched 5", i, v)
		}
	}
}
