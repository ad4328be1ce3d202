package rng

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"

	"linfit/ports"
)

// Stream names used by the core. Keeping them distinct means a generation
// seed and a split seed with the same value still draw unrelated numbers.
const (
	StreamUniformX = "generate/x"
	StreamNoise    = "generate/noise"
	StreamSplit    = "fit/split"
)

// SeededRNG derives PCG streams from a user seed and an operation name
type SeededRNG struct{}

var _ ports.RNGPort = SeededRNG{}

// NewSeededRNG creates a new seeded RNG adapter
func NewSeededRNG() SeededRNG {
	return SeededRNG{}
}

// Source returns a PCG source keyed by (seed, xxhash(name))
func (SeededRNG) Source(name string, seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), xxhash.Sum64String(name))
}
