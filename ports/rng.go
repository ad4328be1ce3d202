package ports

import (
	"math/rand/v2"
)

// RNGPort provides seeded random sources for deterministic operations
type RNGPort interface {
	// Source returns a fresh deterministic source for a named operation.
	// The same (name, seed) pair always yields the same stream, and
	// different names yield independent streams for the same seed.
	Source(name string, seed int64) rand.Source
}
