// Package randutil derives reproducible random sources from a single int64 seed.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Both PCG state
// words are derived from the same seed so every caller that shares a seed
// also shares a sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Float64 returns a uniform [0,1) source backed by New(seed). It is the shape
// the game engine and registry accept for their random draws.
func Float64(seed int64) func() float64 {
	return New(seed).Float64
}

// Sequence returns a source that replays values in order and then wraps
// around. It exists for tests and scripted demos that need to pin every draw.
func Sequence(values ...float64) func() float64 {
	if len(values) == 0 {
		values = []float64{0}
	}
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
