//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "avx2",
		SIMDLevel:   cpu.SIMDAVX2,
		Priority:    20,
		BlockWidth:  blockWidth,
		BlockHeight: blockHeight,
		Calculate32: calculate32,
		Calculate16: calculate16,
	})
}
