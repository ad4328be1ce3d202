package ports

import (
	"linfit/domain/regression"
)

// DataGeneratorPort synthesizes a noisy linear dataset
type DataGeneratorPort interface {
	Generate(cfg regression.GenerationConfig) (*regression.Dataset, error)
}

// RegressionFitterPort splits a dataset, fits OLS on the train partition and
// scores the test partition
type RegressionFitterPort interface {
	Fit(ds *regression.Dataset, testFraction float64, splitSeed int64) (*regression.FitResult, error)
}

// PlotRendererPort draws the test scatter and fitted line
type PlotRendererPort interface {
	RenderPNG(fit *regression.FitResult, title string) ([]byte, error)
}
