//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "sse2",
		SIMDLevel:   cpu.SIMDSSE2,
		Priority:    10,
		BlockWidth:  blockWidth,
		BlockHeight: blockHeight,
		Calculate32: calculate32,
		Calculate16: calculate16,
	})
}
