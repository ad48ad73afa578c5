package buffer

import "testing"

func TestNewZeroFilled(t *testing.T) {
	b := New(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i, v := range b.Values() {
		if v != 0 {
			t.Fatalf("Values()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNegativeLength(t *testing.T) {
	if b := New(-3); b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative input", b.Len())
	}
}

func TestResizeGrowZeroesTail(t *testing.T) {
	b := New(2)
	copy(b.Values(), []float32{1, 2})
	b.Resize(5)

	want := []float32{1, 2, 0, 0, 0}
	for i, v := range b.Values() {
		if v != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, v, want[i])
		}
	}
}

func TestResizeReuseClearsStaleData(t *testing.T) {
	b := New(4)
	copy(b.Values(), []float32{1, 2, 3, 4})
	backing := &b.Values()[0]
	b.Resize(1)
	b.Resize(4)

	if &b.Values()[0] != backing {
		t.Fatal("Resize within capacity should reuse the backing array")
	}
	for i := 1; i < 4; i++ {
		if b.Values()[i] != 0 {
			t.Fatalf("stale value at %d after Resize: %v", i, b.Values())
		}
	}
}

func TestZeroRangeClamps(t *testing.T) {
	b := New(5)
	copy(b.Values(), []float32{1, 2, 3, 4, 5})
	b.ZeroRange(3, 100)
	b.ZeroRange(-2, 1)
	b.ZeroRange(4, 2)

	want := []float32{0, 2, 3, 0, 0}
	for i, v := range b.Values() {
		if v != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, v, want[i])
		}
	}
}
