//go:build arm64 && !purego

package neon

import "github.com/x448/float16"

const (
	blockWidth  = 4
	blockHeight = 4
	blockSize   = blockWidth * blockHeight
)

func calculate32(weights []float32, cols int, x []float32, secondLast, last int, out []float32) {
	r := 0
	for ; r < secondLast; r += 2 * blockHeight {
		pairBlock32(weights[r*cols:], cols, x, out[r:r+2*blockHeight])
	}
	for ; r < last; r += blockHeight {
		rowBlock32(weights[r*cols:], cols, x, out[r:r+blockHeight])
	}
}

func calculate16(weights []float16.Float16, cols int, x []float32, secondLast, last int, out []float32) {
	var lo, hi [blockSize]float32

	r := 0
	for ; r < secondLast; r += 2 * blockHeight {
		pairBlock16(weights[r*cols:], cols, x, out[r:r+2*blockHeight], &lo, &hi)
	}
	for ; r < last; r += blockHeight {
		rowBlock16(weights[r*cols:], cols, x, out[r:r+blockHeight], &lo)
	}
}

// pairBlock32 walks two adjacent row-blocks together so each gathered input
// block is loaded once for eight rows.
func pairBlock32(w []float32, cols int, x []float32, out []float32) {
	var lo, hi [blockHeight][blockWidth]float32
	second := w[blockHeight*cols:]
	for c := 0; c < cols; c += blockWidth {
		xs := (*[blockWidth]float32)(x[c:])
		mulAdd(&lo, (*[blockSize]float32)(w[c*blockHeight:]), xs)
		mulAdd(&hi, (*[blockSize]float32)(second[c*blockHeight:]), xs)
	}
	reduce(&lo, out[:blockHeight])
	reduce(&hi, out[blockHeight:])
}

func rowBlock32(w []float32, cols int, x []float32, out []float32) {
	var acc [blockHeight][blockWidth]float32
	for c := 0; c < cols; c += blockWidth {
		mulAdd(&acc, (*[blockSize]float32)(w[c*blockHeight:]), (*[blockWidth]float32)(x[c:]))
	}
	reduce(&acc, out)
}

func pairBlock16(w []float16.Float16, cols int, x []float32, out []float32, lo, hi *[blockSize]float32) {
	var accLo, accHi [blockHeight][blockWidth]float32
	second := w[blockHeight*cols:]
	for c := 0; c < cols; c += blockWidth {
		widen(lo, w[c*blockHeight:c*blockHeight+blockSize])
		widen(hi, second[c*blockHeight:c*blockHeight+blockSize])
		xs := (*[blockWidth]float32)(x[c:])
		mulAdd(&accLo, lo, xs)
		mulAdd(&accHi, hi, xs)
	}
	reduce(&accLo, out[:blockHeight])
	reduce(&accHi, out[blockHeight:])
}

func rowBlock16(w []float16.Float16, cols int, x []float32, out []float32, wide *[blockSize]float32) {
	var acc [blockHeight][blockWidth]float32
	for c := 0; c < cols; c += blockWidth {
		widen(wide, w[c*blockHeight:c*blockHeight+blockSize])
		mulAdd(&acc, wide, (*[blockWidth]float32)(x[c:]))
	}
	reduce(&acc, out)
}

func widen(dst *[blockSize]float32, src []float16.Float16) {
	for i := range dst {
		dst[i] = src[i].Float32()
	}
}

func mulAdd(acc *[blockHeight][blockWidth]float32, b *[blockSize]float32, xs *[blockWidth]float32) {
	for row := range blockHeight {
		a := &acc[row]
		o := row * blockWidth
		a[0] += b[o] * xs[0]
		a[1] += b[o+1] * xs[1]
		a[2] += b[o+2] * xs[2]
		a[3] += b[o+3] * xs[3]
	}
}

func reduce(acc *[blockHeight][blockWidth]float32, out []float32) {
	for row := range blockHeight {
		a := &acc[row]
		out[row] = (a[0] + a[2]) + (a[1] + a[3])
	}
}
