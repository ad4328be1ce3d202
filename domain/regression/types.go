package regression

import (
	"math"

	"linfit/internal/errors"
)

// GenerationConfig describes a ground-truth line y = A*x + B with Gaussian
// noise, sampled N times uniformly over [XMin, XMax].
type GenerationConfig struct {
	A          float64 `json:"a" toml:"a"`
	B          float64 `json:"b" toml:"b"`
	NoiseSigma float64 `json:"noise_sigma" toml:"noise_sigma"`
	N          int     `json:"n" toml:"n"`
	XMin       float64 `json:"x_min" toml:"x_min"`
	XMax       float64 `json:"x_max" toml:"x_max"`
	Seed       int64   `json:"seed" toml:"seed"`
}

// DefaultGenerationConfig returns the demo defaults
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		A:          2.0,
		B:          0.0,
		NoiseSigma: 1.0,
		N:          200,
		XMin:       -5.0,
		XMax:       5.0,
		Seed:       42,
	}
}

// Validate checks the generation parameters and returns an INVALID_CONFIG
// error describing the first violation.
func (c GenerationConfig) Validate() error {
	if c.N <= 0 {
		return errors.InvalidConfig("n must be positive, got %d", c.N)
	}
	if math.IsNaN(c.NoiseSigma) || math.IsInf(c.NoiseSigma, 0) || c.NoiseSigma < 0 {
		return errors.InvalidConfig("noise sigma must be a finite value >= 0, got %g", c.NoiseSigma)
	}
	for name, v := range map[string]float64{"a": c.A, "b": c.B, "x_min": c.XMin, "x_max": c.XMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.InvalidConfig("%s must be finite, got %g", name, v)
		}
	}
	if c.XMin >= c.XMax {
		return errors.InvalidConfig("x_min (%g) must be less than x_max (%g)", c.XMin, c.XMax)
	}
	if math.IsInf(c.XMax-c.XMin, 0) {
		return errors.InvalidConfig("x range [%g, %g] is too wide to sample", c.XMin, c.XMax)
	}
	for _, x := range []float64{c.XMin, c.XMax} {
		if y := c.A*x + c.B; math.IsNaN(y) || math.IsInf(y, 0) {
			return errors.InvalidConfig("a*x+b overflows at x=%g", x)
		}
	}
	return nil
}

// Sample is one (x, y) observation
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dataset is an ordered, immutable sequence of samples. Accessors hand out
// copies so callers cannot mutate a dataset after it is produced.
type Dataset struct {
	samples []Sample
}

// NewDataset copies samples into a new dataset
func NewDataset(samples []Sample) *Dataset {
	cp := make([]Sample, len(samples))
	copy(cp, samples)
	return &Dataset{samples: cp}
}

// Len returns the number of samples
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.samples)
}

// At returns the i-th sample
func (d *Dataset) At(i int) Sample {
	return d.samples[i]
}

// Samples returns a copy of all samples in order
func (d *Dataset) Samples() []Sample {
	cp := make([]Sample, len(d.samples))
	copy(cp, d.samples)
	return cp
}

// XY returns the inputs and outputs as parallel slices
func (d *Dataset) XY() (xs, ys []float64) {
	xs = make([]float64, len(d.samples))
	ys = make([]float64, len(d.samples))
	for i, s := range d.samples {
		xs[i] = s.X
		ys[i] = s.Y
	}
	return xs, ys
}

// Split records which sample indices went to each partition
type Split struct {
	Train []int `json:"train"`
	Test  []int `json:"test"`
}

// FitResult is the outcome of one fitting call
type FitResult struct {
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	TestX     []float64 `json:"test_x"`
	TestY     []float64 `json:"test_y"`
	TestPred  []float64 `json:"test_pred"`
	RMSE      float64   `json:"rmse"`
	// R2 is NaN when the test targets have zero variance
	R2        float64 `json:"-"`
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
	Split     Split   `json:"-"`
}

// RSquared returns R², or a DEGENERATE_VARIANCE error when it is undefined
func (r *FitResult) RSquared() (float64, error) {
	if math.IsNaN(r.R2) {
		return math.NaN(), errors.DegenerateVariance("R² is undefined: test targets have zero variance")
	}
	return r.R2, nil
}

// R2Defined reports whether R² could be computed
func (r *FitResult) R2Defined() bool {
	return !math.IsNaN(r.R2)
}

// Predict evaluates the fitted line at x
func (r *FitResult) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// Prediction pairs a test input with its true and predicted output
type Prediction struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	YHat float64 `json:"y_pred"`
}

// Predictions returns the test partition as (x, y, ŷ) triples in split order
func (r *FitResult) Predictions() []Prediction {
	out := make([]Prediction, len(r.TestX))
	for i := range r.TestX {
		out[i] = Prediction{X: r.TestX[i], Y: r.TestY[i], YHat: r.TestPred[i]}
	}
	return out
}
