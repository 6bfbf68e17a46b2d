package convolution

import (
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sys/cpu"
)

// CPUExtensions selects among equivalent convolution implementations. It is
// an execution-strategy hint only: every implementation must produce the
// result of the portable scalar path, which doubles as the correctness
// oracle for accelerated variants. When a pixel component type has no
// accelerated kernel the request falls back to the scalar path silently.
type CPUExtensions int

const (
	// CPUNone selects the portable scalar implementation.
	CPUNone CPUExtensions = iota

	// CPUSSE41 requests the SSE4.1 kernels on amd64.
	CPUSSE41

	// CPUAVX2 requests the AVX2 kernels on amd64.
	CPUAVX2

	// CPUNEON requests the NEON kernels on arm64.
	CPUNEON
)

// String returns a human-readable name for the extension set.
func (e CPUExtensions) String() string {
	switch e {
	case CPUNone:
		return "none"
	case CPUSSE41:
		return "sse4.1"
	case CPUAVX2:
		return "avx2"
	case CPUNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// DetectCPU probes the running CPU once and returns the widest extension set
// it supports. Setting the FASTRESIZE_NO_SIMD environment variable to a
// truthy value forces CPUNone regardless of hardware, which is useful for
// differential testing against the scalar oracle.
func DetectCPU() CPUExtensions {
	if noSimdEnv() {
		return CPUNone
	}
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasAVX2 {
			return CPUAVX2
		}
		if cpu.X86.HasSSE41 {
			return CPUSSE41
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			return CPUNEON
		}
	}
	return CPUNone
}

func noSimdEnv() bool {
	val := os.Getenv("FASTRESIZE_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
