package generic

import "github.com/x448/float16"

const (
	BlockWidth  = 4
	BlockHeight = 4
)

// Calculate32 is the scalar block kernel for float32 weights.
func Calculate32(weights []float32, cols int, x []float32, secondLast, last int, out []float32) {
	r := 0
	for ; r < secondLast; r += 2 * BlockHeight {
		rowBlock32(weights[r*cols:(r+BlockHeight)*cols], cols, x, out[r:r+BlockHeight])
		rowBlock32(weights[(r+BlockHeight)*cols:(r+2*BlockHeight)*cols], cols, x, out[r+BlockHeight:r+2*BlockHeight])
	}
	for ; r < last; r += BlockHeight {
		rowBlock32(weights[r*cols:(r+BlockHeight)*cols], cols, x, out[r:r+BlockHeight])
	}
}

// Calculate16 is the scalar block kernel for half-precision weights.
func Calculate16(weights []float16.Float16, cols int, x []float32, secondLast, last int, out []float32) {
	r := 0
	for ; r < secondLast; r += 2 * BlockHeight {
		rowBlock16(weights[r*cols:(r+BlockHeight)*cols], cols, x, out[r:r+BlockHeight])
		rowBlock16(weights[(r+BlockHeight)*cols:(r+2*BlockHeight)*cols], cols, x, out[r+BlockHeight:r+2*BlockHeight])
	}
	for ; r < last; r += BlockHeight {
		rowBlock16(weights[r*cols:(r+BlockHeight)*cols], cols, x, out[r:r+BlockHeight])
	}
}

func rowBlock32(w []float32, cols int, x []float32, out []float32) {
	var acc [BlockHeight]float32
	for c := 0; c < cols; c += BlockWidth {
		blk := w[c*BlockHeight : (c+BlockWidth)*BlockHeight]
		xs := x[c : c+BlockWidth]
		for row := range BlockHeight {
			for k := range BlockWidth {
				acc[row] += blk[row*BlockWidth+k] * xs[k]
			}
		}
	}
	copy(out, acc[:])
}

func rowBlock16(w []float16.Float16, cols int, x []float32, out []float32) {
	var acc [BlockHeight]float32
	for c := 0; c < cols; c += BlockWidth {
		blk := w[c*BlockHeight : (c+BlockWidth)*BlockHeight]
		xs := x[c : c+BlockWidth]
		for row := range BlockHeight {
			for k := range BlockWidth {
				acc[row] += blk[row*BlockWidth+k].Float32() * xs[k]
			}
		}
	}
	copy(out, acc[:])
}
