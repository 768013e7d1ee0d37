// Package hostinfo describes the machine a demo runs on.
package hostinfo

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Banner returns a one-line summary of the CPU and the SIMD extensions
// the gonum kernels may use.
func Banner() string {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown CPU"
	}
	return fmt.Sprintf("%s/%s | %s | %d cores, %d threads | AVX2=%t FMA3=%t",
		runtime.GOOS, runtime.GOARCH, brand,
		cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores,
		cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.Supports(cpuid.FMA3))
}
