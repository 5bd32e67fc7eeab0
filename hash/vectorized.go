package hash

import "github.com/klauspost/cpuid/v2"

// batchWidth is the lane count used by the batched hash loops. On AVX-512
// capable hosts the fixed-width inner loops below vectorize cleanly, so a
// wider batch pays off there.
var batchWidth = 4

func init() {
	if cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ) {
		batchWidth = 16
	} else if cpuid.CPU.Supports(cpuid.AVX2) {
		batchWidth = 8
	}
}

// BatchWidth reports the lane count selected for this host.
func BatchWidth() int {
	return batchWidth
}

// HashVectorized hashes n[i] with salt s[i] into out[i], all lanes sharing
// the same max. The slices must have equal length.
func HashVectorized(out, n, s []uint32, max uint32) {
	i := 0
	for ; i+batchWidth <= len(out); i += batchWidth {
		for j := i; j < i+batchWidth; j++ {
			out[j] = Hash(n[j], s[j], max)
		}
	}
	for ; i < len(out); i++ {
		out[i] = Hash(n[i], s[i], max)
	}
}

// HashVectorizedDistinct is like HashVectorized with a per-lane max.
func HashVectorizedDistinct(out, n, s, max []uint32) {
	i := 0
	for ; i+batchWidth <= len(out); i += batchWidth {
		for j := i; j < i+batchWidth; j++ {
			out[j] = Hash(n[j], s[j], max[j])
		}
	}
	for ; i < len(out); i++ {
		out[i] = Hash(n[i], s[i], max[i])
	}
}
