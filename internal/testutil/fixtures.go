package testutil

import "math/rand"

// ControlValues returns n deterministic control values in [0, 1).
func ControlValues(seed int64, n int) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, n)
	for i := range out {
		out[i] = rng.Float32()
	}
	return out
}

// Matrix returns a deterministic rows x cols row-major matrix with values
// in [-amplitude, amplitude).
func Matrix(seed int64, rows, cols int, amplitude float32) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, rows*cols)
	for i := range out {
		out[i] = (rng.Float32()*2 - 1) * amplitude
	}
	return out
}

// PackBlocks lays a dense row-major matrix out in the joint kernel block
// order: row-blocks of height rows, column blocks of width columns,
// row-major inside each block, zero-padded on both axes. It returns the
// packed weights with the padded row and column counts.
func PackBlocks(dense []float32, rows, cols, width, height int) (packed []float32, paddedRows, paddedCols int) {
	paddedRows = (rows + height - 1) / height * height
	paddedCols = (cols + width - 1) / width * width
	packed = make([]float32, paddedRows*paddedCols)

	for r := range rows {
		rowBlock := r / height * height * paddedCols
		for c := range cols {
			offset := rowBlock + c/width*width*height + (r%height)*width + c%width
			packed[offset] = dense[r*cols+c]
		}
	}
	return packed, paddedRows, paddedCols
}

// DenseMatVec multiplies a row-major matrix with x in float64.
func DenseMatVec(dense []float32, rows, cols int, x []float32) []float64 {
	out := make([]float64, rows)
	for r := range rows {
		var sum float64
		for c := range cols {
			sum += float64(dense[r*cols+c]) * float64(x[c])
		}
		out[r] = sum
	}
	return out
}
