// Package hash implements the fast modular hash evaluated by hashtron programs.
package hash

// Hash mixes the input n with the salt s and reduces the result into the
// range [0, max). The mixing stage is an invertible xorshift chain with
// prime shift coefficients, the reduction uses the multiply-shift trick by
// Daniel Lemire instead of a modulo:
// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
func Hash(n uint32, s uint32, max uint32) uint32 {
	var m = n - s

	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	m += s

	return uint32((uint64(m) * uint64(max)) >> 32)
}
