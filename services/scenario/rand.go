package scenario

import "math"

// Rand is the random source the samplers draw from. *math/rand.Rand satisfies
// it; tests pass scripted sources.
type Rand interface {
	// Intn returns a uniform integer in [0, n). n > 0.
	Intn(n int) int
	// Float64 returns a uniform real in [0, 1).
	Float64() float64
}

// intBetween returns a uniform integer in [lo, hi]; hi >= lo.
func intBetween(rng Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
