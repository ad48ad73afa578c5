package buffer

// Buffer wraps a float32 slice with reuse-friendly semantics.
// Evaluator functions accept raw []float32; use Values() to bridge.
type Buffer struct {
	values []float32
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	return &Buffer{values: make([]float32, max(length, 0))}
}

// Values returns the underlying slice.
func (b *Buffer) Values() []float32 {
	return b.values
}

// Len returns the current number of values.
func (b *Buffer) Len() int {
	return len(b.values)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Elements exposed beyond the previous length are zeroed.
func (b *Buffer) Resize(n int) {
	n = max(n, 0)
	oldLen := len(b.values)
	if n > cap(b.values) {
		grown := make([]float32, n)
		copy(grown, b.values)
		b.values = grown
		return
	}

	b.values = b.values[:n]
	if n > oldLen {
		clear(b.values[oldLen:])
	}
}

// Zero sets all values to 0.
func (b *Buffer) Zero() {
	clear(b.values)
}

// ZeroRange sets values in [start, end) to 0. Indices are clamped.
func (b *Buffer) ZeroRange(start, end int) {
	start = max(start, 0)
	end = min(end, len(b.values))
	if start < end {
		clear(b.values[start:end])
	}
}
