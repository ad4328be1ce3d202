package regression

import (
	"math"

	"github.com/montanaflynn/stats"
)

// RMSE returns sqrt(mean((y - yHat)^2)). Inputs must be non-empty and of equal length.
func RMSE(y, yHat []float64) float64 {
	sq := squaredResiduals(y, yHat)
	mse, err := stats.Mean(sq)
	if err != nil {
		return math.NaN()
	}
	return math.Sqrt(mse)
}

// RSquared returns 1 - SS_res/SS_tot, or NaN when y has zero variance
func RSquared(y, yHat []float64) float64 {
	if isConstant(y) {
		return math.NaN()
	}
	mean, err := stats.Mean(y)
	if err != nil {
		return math.NaN()
	}
	var ssTot float64
	for _, v := range y {
		d := v - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return math.NaN()
	}
	ssRes, _ := stats.Sum(squaredResiduals(y, yHat))
	return 1 - ssRes/ssTot
}

func squaredResiduals(y, yHat []float64) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		d := y[i] - yHat[i]
		out[i] = d * d
	}
	return out
}

// isConstant reports whether every value equals the first; an empty slice is constant
func isConstant(xs []float64) bool {
	if len(xs) == 0 {
		return true
	}
	lo, _ := stats.Min(xs)
	hi, _ := stats.Max(xs)
	return lo == hi
}
