package combat

import "math/rand"

// rollD20 returns a random d20 roll (1-20).
func rollD20(rng *rand.Rand) int {
	return rng.Intn(20) + 1
}

// uniform returns a uniform random integer in [lo, hi] inclusive.
func uniform(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
