//go:build amd64 && !purego

package avx2

import "github.com/x448/float16"

// Blocks are 4 rows by 8 columns, one 256-bit lane set per row.
const (
	blockWidth  = 8
	blockHeight = 4
	blockSize   = blockWidth * blockHeight
)

// TODO: replace rowBlock32 with a Plan9 assembly body using VFMADD231PS once
// the fused rounding is accepted by the reference tolerance in verify.

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
	var wide [blockSize]float32

	r := 0
	for ; r < secondLast; r += 2 * blockHeight {
		rowBlock16(weights[r*cols:], cols, x, out[r:r+blockHeight], &wide)
		rowBlock16(weights[(r+blockHeight)*cols:], cols, x, out[r+blockHeight:r+2*blockHeight], &wide)
	}
	for ; r < last; r += blockHeight {
		rowBlock16(weights[r*cols:], cols, x, out[r:r+blockHeight], &wide)
	}
}

func rowBlock32(w []float32, cols int, x []float32, out []float32) {
	var acc [blockHeight][blockWidth]float32
	for c := 0; c < cols; c += blockWidth {
		accumulate(&acc, (*[blockSize]float32)(w[c*blockHeight:]), (*[blockWidth]float32)(x[c:]))
	}
	reduce(&acc, out)
}

// rowBlock16 widens one block at a time into wide and reuses the float32
// accumulation path.
func rowBlock16(w []float16.Float16, cols int, x []float32, out []float32, wide *[blockSize]float32) {
	var acc [blockHeight][blockWidth]float32
	for c := 0; c < cols; c += blockWidth {
		blk := w[c*blockHeight : c*blockHeight+blockSize]
		for i := range wide {
			wide[i] = blk[i].Float32()
		}
		accumulate(&acc, wide, (*[blockWidth]float32)(x[c:]))
	}
	reduce(&acc, out)
}

func accumulate(acc *[blockHeight][blockWidth]float32, b *[blockSize]float32, xs *[blockWidth]float32) {
	for row := range blockHeight {
		a := &acc[row]
		o := row * blockWidth
		a[0] += b[o] * xs[0]
		a[1] += b[o+1] * xs[1]
		a[2] += b[o+2] * xs[2]
		a[3] += b[o+3] * xs[3]
		a[4] += b[o+4] * xs[4]
		a[5] += b[o+5] * xs[5]
		a[6] += b[o+6] * xs[6]
		a[7] += b[o+7] * xs[7]
	}
}

func reduce(acc *[blockHeight][blockWidth]float32, out []float32) {
	for row := range blockHeight {
		a := &acc[row]
		out[row] = ((a[0] + a[4]) + (a[2] + a[6])) + ((a[1] + a[5]) + (a[3] + a[7]))
	}
}
