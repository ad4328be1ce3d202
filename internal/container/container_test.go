package container

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linfit/app"
	"linfit/internal"
	"linfit/internal/config"
)

func TestNew(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	cfg := config.Default()
	c, err := New(cfg, internal.NewLoggerTo(io.Discard, internal.LogLevelError))
	require.NoError(t, err)
	assert.NotNil(t, c.RNG)
	assert.NotNil(t, c.Generator)
	assert.NotNil(t, c.Fitter)
	assert.NotNil(t, c.Renderer)
	assert.NotNil(t, c.Service)

	opts := c.UIOptions()
	assert.Same(t, c.Service, opts.Service)
	assert.Same(t, cfg, opts.Config)
}

func TestContainer_ServiceRunsDefaults(t *testing.T) {
	cfg := config.Default()
	c, err := New(cfg, internal.NewLoggerTo(io.Discard, internal.LogLevelError))
	require.NoError(t, err)

	req := app.RunRequest{
		Generation:   cfg.Defaults.Generation,
		TestFraction: cfg.Defaults.TestFraction,
		SplitSeed:    cfg.Defaults.SplitSeed,
	}
	first, err := c.Service.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := c.Service.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Fit.Slope, second.Fit.Slope, "same seeds give the same fit")
	assert.InDelta(t, cfg.Defaults.Generation.A, first.Fit.Slope, 0.15)

	png, err := c.Renderer.RenderPNG(first.Fit, "defaults")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
