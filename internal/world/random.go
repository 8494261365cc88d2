package world

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// DeterministicSeedValue hashes a root seed and a subsystem label into a
// stable RNG seed, so independent subsystems draw from distinct streams.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewDeterministicRNG builds a seeded RNG for the given root seed and label.
func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}

// RandomAngle draws a uniform angle in [0, 2π).
func RandomAngle(rng *rand.Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}

// RandomDistance draws a uniform distance in [min, max).
func RandomDistance(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// RandomPointInAnnulus draws a uniform-angle point between the inner and
// outer radii around the arena center.
func RandomPointInAnnulus(rng *rand.Rand, inner, outer float64) Position {
	radius := RandomDistance(rng, inner, outer)
	angle := RandomAngle(rng)
	return Position{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}
