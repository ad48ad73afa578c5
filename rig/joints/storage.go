package joints

import "github.com/x448/float16"

// skipOutput marks a stored row whose value is routed through a rotation
// target instead of being scattered directly.
const skipOutput = ^uint32(0)

// rotationTarget is one joint rotation produced by a joint group.
type rotationTarget struct {
	// rows holds the stored row of each source component, or -1.
	rows [4]int32
	// first is the smallest stored row in rows.
	first int
	// offset is the output index of the first target rotation component.
	offset int
}

// PackedJointGroup is the block-packed storage of one joint group. It is
// immutable once built.
type PackedJointGroup struct {
	weights32 []float32
	weights16 []float16.Float16
	half      bool

	// inputIndices has ColumnCount entries; padding points at the zero slot.
	inputIndices []uint32
	// outputIndices has one entry per stored row.
	outputIndices []uint32

	colCount, rowCount int
	rawRows, rawCols   int
	storedRows         int
	blockWidth         int
	blockHeight        int

	regions      []LODRegion
	targets      []rotationTarget
	rotationLODs []int
}

// ColumnCount returns the padded column count, a multiple of the block width.
func (g *PackedJointGroup) ColumnCount() int { return g.colCount }

// RowCount returns the padded row count, a multiple of the block height.
func (g *PackedJointGroup) RowCount() int { return g.rowCount }

// RawColumnCount returns the column count of the source matrix.
func (g *PackedJointGroup) RawColumnCount() int { return g.rawCols }

// RawRowCount returns the row count of the source matrix before filtering.
func (g *PackedJointGroup) RawRowCount() int { return g.rawRows }

// StoredRowCount returns the number of rows kept by the behavior filter.
func (g *PackedJointGroup) StoredRowCount() int { return g.storedRows }

// LODRegions returns a copy of the per-LOD row bounds.
func (g *PackedJointGroup) LODRegions() []LODRegion {
	return append([]LODRegion(nil), g.regions...)
}

// LODRegion returns the row bounds of lod. It panics if lod is out of range.
func (g *PackedJointGroup) LODRegion(lod int) LODRegion { return g.regions[lod] }

// InputIndices returns a copy of the padded input index table.
func (g *PackedJointGroup) InputIndices() []uint32 {
	return append([]uint32(nil), g.inputIndices...)
}

// OutputIndices returns a copy of the output index table. Rows converted
// through a rotation adapter hold ^uint32(0).
func (g *PackedJointGroup) OutputIndices() []uint32 {
	return append([]uint32(nil), g.outputIndices...)
}

// RotationCount returns the number of joint rotations converted at lod.
func (g *PackedJointGroup) RotationCount(lod int) int { return g.rotationLODs[lod] }

// Weight returns the stored weight at (row, col) in padded coordinates,
// widened to float32.
func (g *PackedJointGroup) Weight(row, col int) float32 {
	i := blockOffset(row, col, g.colCount, g.blockWidth, g.blockHeight)
	if g.half {
		return g.weights16[i].Float32()
	}
	return g.weights32[i]
}
