// Package regression fits a one-predictor least-squares line on a seeded
// train/test split and scores it on the held-out samples.
package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"linfit/adapters/rng"
	domain "linfit/domain/regression"
	"linfit/internal/errors"
	"linfit/ports"
)

// OLSFitter implements ports.RegressionFitterPort with the closed-form
// ordinary least-squares line
type OLSFitter struct {
	rng ports.RNGPort
}

var _ ports.RegressionFitterPort = (*OLSFitter)(nil)

// NewOLSFitter creates a fitter whose split shuffle draws from r
func NewOLSFitter(r ports.RNGPort) *OLSFitter {
	if r == nil {
		r = rng.NewSeededRNG()
	}
	return &OLSFitter{rng: r}
}

// Fit partitions ds with splitSeed, fits slope and intercept on the train
// partition only, and predicts and scores the test partition. When the test
// targets have zero variance the result is still returned with R2 set to
// NaN; FitResult.RSquared reports DEGENERATE_VARIANCE.
func (f *OLSFitter) Fit(ds *domain.Dataset, testFraction float64, splitSeed int64) (*domain.FitResult, error) {
	split, err := Partition(ds.Len(), testFraction, f.rng.Source(rng.StreamSplit, splitSeed))
	if err != nil {
		return nil, err
	}

	trainX, trainY := gather(ds, split.Train)
	if isConstant(trainX) {
		return nil, errors.DegenerateVariance("all %d training inputs are equal; slope is undefined", len(trainX))
	}
	intercept, slope := stat.LinearRegression(trainX, trainY, nil, false)

	testX, testY := gather(ds, split.Test)
	pred := make([]float64, len(testX))
	for i, x := range testX {
		pred[i] = slope*x + intercept
	}

	res := &domain.FitResult{
		Slope:     slope,
		Intercept: intercept,
		TestX:     testX,
		TestY:     testY,
		TestPred:  pred,
		RMSE:      RMSE(testY, pred),
		R2:        RSquared(testY, pred),
		TrainSize: len(split.Train),
		TestSize:  len(split.Test),
		Split:     split,
	}
	if err := checkFinite(res); err != nil {
		return nil, err
	}
	return res, nil
}

// checkFinite rejects results whose arithmetic overflowed. A NaN R² is only
// legitimate when the test targets are constant.
func checkFinite(res *domain.FitResult) error {
	for name, v := range map[string]float64{"slope": res.Slope, "intercept": res.Intercept, "rmse": res.RMSE} {
		if !isFinite(v) {
			return errors.InvalidInput(fmt.Sprintf("fit %s is not finite (%g); the data values are too large", name, v))
		}
	}
	if math.IsNaN(res.R2) && !isConstant(res.TestY) {
		return errors.InvalidInput("R² is not finite; the data values are too large")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func gather(ds *domain.Dataset, idx []int) (xs, ys []float64) {
	xs = make([]float64, len(idx))
	ys = make([]float64, len(idx))
	for i, j := range idx {
		s := ds.At(j)
		xs[i] = s.X
		ys[i] = s.Y
	}
	return xs, ys
}

// Fit runs the default fitter
func Fit(ds *domain.Dataset, testFraction float64, splitSeed int64) (*domain.FitResult, error) {
	return NewOLSFitter(nil).Fit(ds, testFraction, splitSeed)
}
