package joints

import (
	"github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
)

// calculationStrategy computes the raw rows of one joint group for a LOD
// region. It is chosen once per evaluator.
type calculationStrategy interface {
	calculate(g *PackedJointGroup, inputs []float32, region LODRegion, gathered, raw []float32)
}

type blockStrategy32 struct {
	kernel registry.Kernel32Fn
}

func (s blockStrategy32) calculate(g *PackedJointGroup, inputs []float32, region LODRegion, gathered, raw []float32) {
	if region.SizePaddedToLastFullBlock == 0 {
		return
	}
	x := gather(g.inputIndices, inputs, gathered)
	s.kernel(g.weights32, g.colCount, x, region.SizePaddedToSecondLastFullBlock, region.SizePaddedToLastFullBlock, raw)
}

type blockStrategy16 struct {
	kernel registry.Kernel16Fn
}

func (s blockStrategy16) calculate(g *PackedJointGroup, inputs []float32, region LODRegion, gathered, raw []float32) {
	if region.SizePaddedToLastFullBlock == 0 {
		return
	}
	x := gather(g.inputIndices, inputs, gathered)
	s.kernel(g.weights16, g.colCount, x, region.SizePaddedToSecondLastFullBlock, region.SizePaddedToLastFullBlock, raw)
}

// gather copies inputs[indices[c]] into dst and returns the filled prefix.
func gather(indices []uint32, inputs, dst []float32) []float32 {
	dst = dst[:len(indices)]
	for c, i := range indices {
		dst[c] = inputs[i]
	}
	return dst
}
