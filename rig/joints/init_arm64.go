//go:build arm64 && !purego

package joints

import (
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/arm64/neon"
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/generic"
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
)
