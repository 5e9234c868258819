package world

import (
	"math/rand/v2"
	"time"
)

// Random is the single source of randomness for a World. *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int   // Uniform in [0, n)
	Float64() float64 // Uniform in [0, 1)
}

// NewRandom returns a deterministic PCG-backed Random. A zero seed picks one
// from the wall clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// intRange returns a uniform integer in [lo, hi].
func intRange(r Random, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// floatRange returns a uniform float in [lo, hi).
func floatRange(r Random, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
