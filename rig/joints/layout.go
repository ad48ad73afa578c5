package joints

// LODRegion holds the row bounds evaluated for one LOD.
//
// Size is the number of real rows active at the LOD. The kernel computes
// rows [0, SizePaddedToLastFullBlock): the first
// SizePaddedToSecondLastFullBlock rows two row-blocks at a time, the rest
// one row-block at a time. Rows past Size are never scattered.
type LODRegion struct {
	Size                            int
	SizePaddedToLastFullBlock       int
	SizePaddedToSecondLastFullBlock int
}

func newLODRegion(size, blockHeight int) LODRegion {
	last := roundUp(size, blockHeight)
	return LODRegion{
		Size:                            size,
		SizePaddedToLastFullBlock:       last,
		SizePaddedToSecondLastFullBlock: roundDown(last, 2*blockHeight),
	}
}

func roundUp(n, multiple int) int {
	return (n + multiple - 1) / multiple * multiple
}

func roundDown(n, multiple int) int {
	return n / multiple * multiple
}

// blockOffset returns the packed position of (row, col) in a weight matrix
// with cols padded columns.
func blockOffset(row, col, cols, width, height int) int {
	return row/height*height*cols + col/width*width*height + row%height*width + col%width
}
