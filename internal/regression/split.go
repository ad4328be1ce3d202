package regression

import (
	"math"
	"math/rand/v2"

	domain "linfit/domain/regression"
	"linfit/internal/errors"
)

// MinTrainSize is the smallest train partition that determines both slope
// and intercept
const MinTrainSize = 2

// TestSize returns round(testFraction*n), raised to 1 when n > 0
func TestSize(n int, testFraction float64) int {
	size := int(math.Round(testFraction * float64(n)))
	if size < 1 && n > 0 {
		size = 1
	}
	return size
}

// ValidateSplit checks testFraction and the resulting partition sizes for a
// dataset of n samples
func ValidateSplit(n int, testFraction float64) error {
	if math.IsNaN(testFraction) || testFraction <= 0 || testFraction >= 1 {
		return errors.InvalidSplit("test fraction must be in (0, 1), got %g", testFraction)
	}
	if n <= 0 {
		return errors.InvalidSplit("dataset is empty")
	}
	testSize := TestSize(n, testFraction)
	if trainSize := n - testSize; trainSize < MinTrainSize {
		return errors.InvalidSplit("train partition has %d samples (n=%d, test=%d); at least %d are required",
			trainSize, n, testSize, MinTrainSize)
	}
	return nil
}

// Partition shuffles the indices 0..n-1 with src and assigns the first
// TestSize of them to the test partition
func Partition(n int, testFraction float64, src rand.Source) (domain.Split, error) {
	if err := ValidateSplit(n, testFraction); err != nil {
		return domain.Split{}, err
	}
	perm := rand.New(src).Perm(n)
	testSize := TestSize(n, testFraction)
	return domain.Split{
		Test:  perm[:testSize:testSize],
		Train: perm[testSize:],
	}, nil
}
