// Package randutil centralises how game seeds become rand/v2 generators, so
// every shuffle site derives the same reproducible sequence from a
// caller-supplied int64.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. PCG wants two
// 64-bit seeds; both are derived from the input through a splitmix64-style
// finalizer so nearby seeds still give unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
