package generator

import (
	stderrors "errors"
	"math"
	"testing"

	"linfit/domain/regression"
	"linfit/internal/errors"

	"github.com/montanaflynn/stats"
)

// TestGenerate_Deterministic tests that identical configs give bit-identical datasets
func TestGenerate_Deterministic(t *testing.T) {
	cfg := regression.DefaultGenerationConfig()

	first, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Failed to generate dataset: %v", err)
	}
	second, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Failed to generate dataset: %v", err)
	}

	if first.Len() != cfg.N || second.Len() != cfg.N {
		t.Fatalf("Expected %d samples, got %d and %d", cfg.N, first.Len(), second.Len())
	}
	for i := 0; i < cfg.N; i++ {
		a, b := first.At(i), second.At(i)
		if math.Float64bits(a.X) != math.Float64bits(b.X) || math.Float64bits(a.Y) != math.Float64bits(b.Y) {
			t.Fatalf("Sample %d differs: %+v vs %+v", i, a, b)
		}
	}
}

// TestGenerate_SeedChangesData tests that a different seed gives a different dataset
func TestGenerate_SeedChangesData(t *testing.T) {
	cfg := regression.DefaultGenerationConfig()
	other := cfg
	other.Seed = cfg.Seed + 1

	a, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(other)
	if err != nil {
		t.Fatal(err)
	}

	same := 0
	for i := 0; i < cfg.N; i++ {
		if a.At(i) == b.At(i) {
			same++
		}
	}
	if same == cfg.N {
		t.Error("Expected different seeds to produce different datasets")
	}
}

// TestGenerate_NoiseFree tests that sigma 0 puts every point exactly on the line
func TestGenerate_NoiseFree(t *testing.T) {
	cfg := regression.GenerationConfig{A: -1.75, B: 3.5, NoiseSigma: 0, N: 500, XMin: -20, XMax: 20, Seed: 9}

	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Failed to generate dataset: %v", err)
	}
	for i, s := range ds.Samples() {
		if want := Line(cfg.A, cfg.B, s.X); s.Y != want {
			t.Fatalf("Sample %d: y = %v, want exactly %v", i, s.Y, want)
		}
	}
}

// TestGenerate_Ranges tests the sampling interval and the noise scale
func TestGenerate_Ranges(t *testing.T) {
	cfg := regression.GenerationConfig{A: 2, B: 1, NoiseSigma: 0.5, N: 5000, XMin: -3, XMax: 7, Seed: 42}

	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Failed to generate dataset: %v", err)
	}

	residuals := make([]float64, 0, ds.Len())
	for _, s := range ds.Samples() {
		if s.X < cfg.XMin || s.X > cfg.XMax {
			t.Fatalf("x = %v outside [%v, %v]", s.X, cfg.XMin, cfg.XMax)
		}
		residuals = append(residuals, s.Y-Line(cfg.A, cfg.B, s.X))
	}

	mean, _ := stats.Mean(residuals)
	sd, _ := stats.StandardDeviation(residuals)
	if math.Abs(mean) > 0.05 {
		t.Errorf("Noise mean should be near 0, got %f", mean)
	}
	if math.Abs(sd-cfg.NoiseSigma) > 0.05 {
		t.Errorf("Noise std should be near %f, got %f", cfg.NoiseSigma, sd)
	}

	xs, _ := ds.XY()
	xMean, _ := stats.Mean(xs)
	if math.Abs(xMean-2.0) > 0.2 {
		t.Errorf("Uniform mean should be near 2.0, got %f", xMean)
	}
}

// TestGenerate_InvalidConfig tests the rejected parameter combinations
func TestGenerate_InvalidConfig(t *testing.T) {
	base := regression.DefaultGenerationConfig()

	cases := map[string]func(c *regression.GenerationConfig){
		"zero n":          func(c *regression.GenerationConfig) { c.N = 0 },
		"negative n":      func(c *regression.GenerationConfig) { c.N = -5 },
		"negative sigma":  func(c *regression.GenerationConfig) { c.NoiseSigma = -0.1 },
		"NaN sigma":       func(c *regression.GenerationConfig) { c.NoiseSigma = math.NaN() },
		"equal bounds":    func(c *regression.GenerationConfig) { c.XMin, c.XMax = 1, 1 },
		"inverted bounds": func(c *regression.GenerationConfig) { c.XMin, c.XMax = 5, -5 },
		"infinite slope":  func(c *regression.GenerationConfig) { c.A = math.Inf(1) },
		"line overflows":  func(c *regression.GenerationConfig) { c.A = 1e308 },
		"range overflows": func(c *regression.GenerationConfig) { c.XMin, c.XMax = -1e308, 1e308 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			ds, err := Generate(cfg)
			if err == nil {
				t.Fatalf("Expected error, got dataset of %d samples", ds.Len())
			}
			if !stderrors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Expected INVALID_CONFIG, got %v (%s)", err, errors.GetCode(err))
			}
		})
	}
}

// TestGenerate_Immutable tests that callers cannot mutate a dataset through its accessors
func TestGenerate_Immutable(t *testing.T) {
	ds, err := Generate(regression.GenerationConfig{A: 1, N: 3, XMin: 0, XMax: 1, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	before := ds.At(0)

	samples := ds.Samples()
	samples[0].Y = 1e9
	xs, _ := ds.XY()
	xs[0] = 1e9

	if ds.At(0) != before {
		t.Error("Dataset changed after mutating accessor results")
	}
}
