// Package registry holds the block kernels available for joint group
// evaluation and selects one per SIMD level.
//
// Kernels share one storage layout. A joint group's weight matrix is split
// into row-blocks of BlockHeight rows. Each row-block holds cols/BlockWidth
// column blocks, and every column block stores BlockHeight x BlockWidth
// weights row-major. The row-block starting at row r therefore begins at
// offset r*cols and its column block starting at column c begins at offset
// c*BlockHeight inside the row-block.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/x448/float16"
)

// Kernel32Fn computes raw rows [0, last) of one joint group from float32
// weights. x holds the gathered inputs (len >= cols). Rows [0, secondLast)
// are processed two row-blocks at a time, rows [secondLast, last) one
// row-block at a time. Both bounds are multiples of BlockHeight and
// secondLast is a multiple of 2*BlockHeight.
type Kernel32Fn func(weights []float32, cols int, x []float32, secondLast, last int, out []float32)

// Kernel16Fn is Kernel32Fn for half-precision weights. Weights are widened
// on load; accumulation is float32.
type Kernel16Fn func(weights []float16.Float16, cols int, x []float32, secondLast, last int, out []float32)

// OpEntry is one registered kernel family.
type OpEntry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int

	// BlockWidth is the number of columns per block (W).
	BlockWidth int
	// BlockHeight is the number of rows per row-block.
	BlockHeight int

	Calculate32 Kernel32Fn
	Calculate16 Kernel16Fn
}

// OpRegistry stores available kernel implementations.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the default joint kernel registry.
var Global = &OpRegistry{}

// Register adds an implementation entry.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority implementation supported by features.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

// LookupLevel returns the highest-priority implementation registered for
// exactly level, or nil if none is registered or features cannot run it.
func (r *OpRegistry) LookupLevel(features cpu.Features, level cpu.SIMDLevel) *OpEntry {
	if !cpu.Supports(features, level) {
		return nil
	}

	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].SIMDLevel == level {
			return &r.entries[i]
		}
	}

	return nil
}

func (r *OpRegistry) ensureSorted() {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()
}

func (r *OpRegistry) sortByPriority() {
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of entries, highest priority first.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
