//go:build amd64 && !purego

package sse2

import (
	"testing"

	"github.com/cwbudde/algo-rig/internal/testutil"
	"github.com/x448/float16"
)

func TestCalculate32MatchesDense(t *testing.T) {
	shapes := []struct{ rows, cols int }{
		{1, 3}, {4, 4}, {5, 6}, {8, 12}, {17, 9}, {24, 31},
	}

	for i, s := range shapes {
		dense := testutil.Matrix(int64(i+10), s.rows, s.cols, 2)
		packed, rows, cols := testutil.PackBlocks(dense, s.rows, s.cols, blockWidth, blockHeight)

		x := make([]float32, cols)
		copy(x, testutil.ControlValues(int64(i+20), s.cols))

		out := make([]float32, rows)
		calculate32(packed, cols, x, rows/(2*blockHeight)*(2*blockHeight), rows, out)

		want := testutil.DenseMatVec(dense, s.rows, s.cols, x)
		diff, err := testutil.MaxAbsDiff(out[:s.rows], want)
		if err != nil {
			t.Fatal(err)
		}
		if diff > 1e-5 {
			t.Fatalf("%dx%d: max diff %g", s.rows, s.cols, diff)
		}
	}
}

func TestCalculate16MatchesCalculate32(t *testing.T) {
	dense := testutil.Matrix(7, 12, 10, 1)
	packed, rows, cols := testutil.PackBlocks(dense, 12, 10, blockWidth, blockHeight)

	half := make([]float16.Float16, len(packed))
	widened := make([]float32, len(packed))
	for i, v := range packed {
		half[i] = float16.Fromfloat32(v)
		widened[i] = half[i].Float32()
	}

	x := make([]float32, cols)
	copy(x, testutil.ControlValues(8, 10))

	got := make([]float32, rows)
	want := make([]float32, rows)
	calculate16(half, cols, x, 8, rows, got)
	calculate32(widened, cols, x, 8, rows, want)

	testutil.RequireBitIdentical(t, got, want)
}

func BenchmarkCalculate32(b *testing.B) {
	dense := testutil.Matrix(1, 64, 48, 1)
	packed, rows, cols := testutil.PackBlocks(dense, 64, 48, blockWidth, blockHeight)
	x := testutil.ControlValues(2, cols)
	out := make([]float32, rows)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calculate32(packed, cols, x, rows, rows, out)
	}
}
