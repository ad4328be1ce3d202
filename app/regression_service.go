package app

import (
	"context"
	"time"

	"linfit/domain/core"
	"linfit/domain/regression"
	"linfit/internal"
	"linfit/internal/errors"
	"linfit/ports"
)

// RunRequest carries everything one generate-then-fit cycle needs
type RunRequest struct {
	Generation   regression.GenerationConfig
	TestFraction float64
	SplitSeed    int64
}

// Run is the request-scoped outcome of one cycle
type Run struct {
	ID        core.RunID
	Request   RunRequest
	Dataset   *regression.Dataset
	Fit       *regression.FitResult
	StartedAt time.Time
	Duration  time.Duration
}

// RegressionService wires the generator and fitter. It keeps no state
// between calls, so one instance can serve concurrent requests.
type RegressionService struct {
	generator  ports.DataGeneratorPort
	fitter     ports.RegressionFitterPort
	logger     *internal.Logger
	maxSamples int
}

// NewRegressionService creates a new regression service. A maxSamples of 0
// disables the sample limit.
func NewRegressionService(generator ports.DataGeneratorPort, fitter ports.RegressionFitterPort, logger *internal.Logger, maxSamples int) *RegressionService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RegressionService{
		generator:  generator,
		fitter:     fitter,
		logger:     logger,
		maxSamples: maxSamples,
	}
}

// Run generates a dataset and fits it. Domain errors from either step are
// returned unchanged so callers can match them with errors.Is.
func (s *RegressionService) Run(ctx context.Context, req RunRequest) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.maxSamples > 0 && req.Generation.N > s.maxSamples {
		return nil, errors.InvalidConfig("n must be at most %d, got %d", s.maxSamples, req.Generation.N)
	}

	run := &Run{
		ID:        core.NewRunID(),
		Request:   req,
		StartedAt: time.Now(),
	}
	short := core.ID(run.ID).Short()
	s.logger.Debug("[run %s] generating n=%d a=%g b=%g sigma=%g seed=%d",
		short, req.Generation.N, req.Generation.A, req.Generation.B, req.Generation.NoiseSigma, req.Generation.Seed)

	ds, err := s.generator.Generate(req.Generation)
	if err != nil {
		s.logger.Warn("[run %s] generation rejected: %v", short, err)
		return nil, err
	}
	run.Dataset = ds

	fit, err := s.fitter.Fit(ds, req.TestFraction, req.SplitSeed)
	if err != nil {
		s.logger.Warn("[run %s] fit rejected: %v", short, err)
		return nil, err
	}
	run.Fit = fit
	run.Duration = time.Since(run.StartedAt)

	if fit.R2Defined() {
		s.logger.Info("[run %s] slope=%.4f intercept=%.4f rmse=%.4f r2=%.4f (%s)",
			short, fit.Slope, fit.Intercept, fit.RMSE, fit.R2, run.Duration)
	} else {
		s.logger.Info("[run %s] slope=%.4f intercept=%.4f rmse=%.4f r2=undefined (%s)",
			short, fit.Slope, fit.Intercept, fit.RMSE, run.Duration)
	}
	return run, nil
}
