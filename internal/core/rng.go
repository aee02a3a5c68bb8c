package core

import "math/rand/v2"

// Dice yields die faces in [1, 6].
type Dice interface {
	Roll() int
}

// RNG is a thin convenience wrapper around math/rand/v2.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewRandomRNG creates an RNG drawing from the runtime's random source.
func NewRandomRNG() *RNG {
	return &RNG{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Roll returns a uniform die face in [1, 6].
func (r *RNG) Roll() int {
	return r.r.IntN(6) + 1
}
