//go:build amd64 && !purego

package joints

import (
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/amd64/avx2" // register AVX2 kernel
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/amd64/sse2" // register SSE2 kernel
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/generic"    // register generic kernel
	_ "github.com/cwbudde/algo-rig/rig/joints/internal/arch/registry"   // initialize kernel registry
)
