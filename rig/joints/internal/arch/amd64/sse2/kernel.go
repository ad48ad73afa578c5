//go:build amd64 && !purego

package sse2

import "github.com/x448/float16"

const (
	blockWidth  = 4
	blockHeight = 4
)

// calculate32 keeps one 4-lane accumulator per row, matching a 128-bit
// register per output row.
func calculate32(weights []float32, cols int, x []float32, secondLast, last int, out []float32) {
	r := 0
	for ; r < secondLast; r += 2 * blockHeight {
		rowBlock32(weights[r*cols:], cols, x, out[r:r+blockHeight])
		rowBlock32(weights[(r+blockHeight)*cols:], cols, x, out[r+blockHeight:r+2*blockHeight])
	}
	for ; r < last; r += blockHeight {
		rowBlock32(weights[r*cols:], cols, x, out[r:r+blockHeight])
	}
}

func calculate16(weights []float16.Float16, cols int, x []float32, secondLast, last int, out []float32) {
	r := 0
	for ; r < secondLast; r += 2 * blockHeight {
		rowBlock16(weights[r*cols:], cols, x, out[r:r+blockHeight])
		rowBlock16(weights[(r+blockHeight)*cols:], cols, x, out[r+blockHeight:r+2*blockHeight])
	}
	for ; r < last; r += blockHeight {
		rowBlock16(weights[r*cols:], cols, x, out[r:r+blockHeight])
	}
}

func rowBlock32(w []float32, cols int, x []float32, out []float32) {
	var a0, a1, a2, a3 [4]float32
	for c := 0; c < cols; c += blockWidth {
		b := w[c*blockHeight : c*blockHeight+16 : c*blockHeight+16]
		x0, x1, x2, x3 := x[c], x[c+1], x[c+2], x[c+3]

		a0[0] += b[0] * x0
		a0[1] += b[1] * x1
		a0[2] += b[2] * x2
		a0[3] += b[3] * x3

		a1[0] += b[4] * x0
		a1[1] += b[5] * x1
		a1[2] += b[6] * x2
		a1[3] += b[7] * x3

		a2[0] += b[8] * x0
		a2[1] += b[9] * x1
		a2[2] += b[10] * x2
		a2[3] += b[11] * x3

		a3[0] += b[12] * x0
		a3[1] += b[13] * x1
		a3[2] += b[14] * x2
		a3[3] += b[15] * x3
	}

	out[0] = (a0[0] + a0[2]) + (a0[1] + a0[3])
	out[1] = (a1[0] + a1[2]) + (a1[1] + a1[3])
	out[2] = (a2[0] + a2[2]) + (a2[1] + a2[3])
	out[3] = (a3[0] + a3[2]) + (a3[1] + a3[3])
}

func rowBlock16(w []float16.Float16, cols int, x []float32, out []float32) {
	var a0, a1, a2, a3 [4]float32
	for c := 0; c < cols; c += blockWidth {
		b := w[c*blockHeight : c*blockHeight+16 : c*blockHeight+16]
		x0, x1, x2, x3 := x[c], x[c+1], x[c+2], x[c+3]

		a0[0] += b[0].Float32() * x0
		a0[1] += b[1].Float32() * x1
		a0[2] += b[2].Float32() * x2
		a0[3] += b[3].Float32() * x3

		a1[0] += b[4].Float32() * x0
		a1[1] += b[5].Float32() * x1
		a1[2] += b[6].Float32() * x2
		a1[3] += b[7].Float32() * x3

		a2[0] += b[8].Float32() * x0
		a2[1] += b[9].Float32() * x1
		a2[2] += b[10].Float32() * x2
		a2[3] += b[11].Float32() * x3

		a3[0] += b[12].Float32() * x0
		a3[1] += b[13].Float32() * x1
		a3[2] += b[14].Float32() * x2
		a3[3] += b[15].Float32() * x3
	}

	out[0] = (a0[0] + a0[2]) + (a0[1] + a0[3])
	out[1] = (a1[0] + a1[2]) + (a1[1] + a1[3])
	out[2] = (a2[0] + a2[2]) + (a2[1] + a2[3])
	out[3] = (a3[0] + a3[2]) + (a3[1] + a3[3])
}
