package generic

import (
	"github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Generic kernels are the fallback when no SIMD-tuned kernel applies or when
// ForceGeneric is set.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "generic",
		SIMDLevel:   cpu.SIMDNone,
		Priority:    0,
		BlockWidth:  BlockWidth,
		BlockHeight: BlockHeight,
		Calculate32: Calculate32,
		Calculate16: Calculate16,
	})
}
