//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "neon",
		SIMDLevel:   cpu.SIMDNEON,
		Priority:    15,
		BlockWidth:  blockWidth,
		BlockHeight: blockHeight,
		Calculate32: calculate32,
		Calculate16: calculate16,
	})
}
