package container

import (
	"fmt"

	"linfit/adapters/rng"
	"linfit/app"
	"linfit/internal"
	"linfit/internal/config"
	"linfit/internal/generator"
	"linfit/internal/plotting"
	"linfit/internal/regression"
	"linfit/ports"
	"linfit/ui"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Randomness and the two core components
	RNG       ports.RNGPort
	Generator ports.DataGeneratorPort
	Fitter    ports.RegressionFitterPort

	// Presentation
	Renderer ports.PlotRendererPort

	Service *app.RegressionService
}

// New creates a new dependency injection container. A nil logger builds one
// from the configured log level.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}
	c.initCore()
	c.Renderer = plotting.NewRenderer(cfg.Plot.Width, cfg.Plot.Height)
	c.Service = app.NewRegressionService(c.Generator, c.Fitter, c.Logger, cfg.Limits.MaxSamples)

	c.Logger.Debug("Container initialized: max samples %d, plot %.0fx%.0f cm", cfg.Limits.MaxSamples, cfg.Plot.Width, cfg.Plot.Height)
	return c, nil
}

// initCore shares one RNG adapter between generator and fitter; streams are
// separated by name, so sharing keeps runs reproducible
func (c *Container) initCore() {
	c.RNG = rng.NewSeededRNG()
	c.Generator = generator.NewLinearGenerator(c.RNG)
	c.Fitter = regression.NewOLSFitter(c.RNG)
}

// UIOptions returns what both web front ends need
func (c *Container) UIOptions() ui.Options {
	return ui.Options{
		Service:  c.Service,
		Renderer: c.Renderer,
		Config:   c.Config,
		Logger:   c.Logger,
	}
}
