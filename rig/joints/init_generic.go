//go:build purego || (!amd64 && !arm64)

package joints

import (
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/generic"
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"
)
