package joints

import (
	"github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// KernelInfo describes one registered block kernel.
type KernelInfo struct {
	Name        string `json:"name"`
	Level       string `json:"simd_level"`
	Priority    int    `json:"priority"`
	BlockWidth  int    `json:"block_width"`
	BlockHeight int    `json:"block_height"`
	Supported   bool   `json:"supported"`
}

// Kernels lists the kernels compiled into this binary, highest priority
// first, and whether the running CPU supports each.
func Kernels() []KernelInfo {
	features := cpu.DetectFeatures()
	entries := registry.Global.ListEntries()
	infos := make([]KernelInfo, len(entries))
	for i, e := range entries {
		infos[i] = KernelInfo{
			Name:        e.Name,
			Level:       e.SIMDLevel.String(),
			Priority:    e.Priority,
			BlockWidth:  e.BlockWidth,
			BlockHeight: e.BlockHeight,
			Supported:   cpu.Supports(features, e.SIMDLevel),
		}
	}
	return infos
}

// SelectKernel returns the kernel a Builder would use for t on this CPU.
func SelectKernel(t CalculationType) (KernelInfo, error) {
	features := cpu.DetectFeatures()
	e, err := selectKernel(t, features)
	if err != nil {
		return KernelInfo{}, err
	}
	return KernelInfo{
		Name:        e.Name,
		Level:       e.SIMDLevel.String(),
		Priority:    e.Priority,
		BlockWidth:  e.BlockWidth,
		BlockHeight: e.BlockHeight,
		Supported:   true,
	}, nil
}
