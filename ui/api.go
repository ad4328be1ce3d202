package ui

import (
	"linfit/app"
	"linfit/domain/regression"
	"linfit/internal/config"
	"linfit/internal/errors"
)

// fitRequest is the JSON body of POST /api/fit. Absent fields take the
// configured defaults.
type fitRequest struct {
	A            *float64 `json:"a"`
	B            *float64 `json:"b"`
	NoiseSigma   *float64 `json:"noise_sigma"`
	N            *int     `json:"n"`
	XMin         *float64 `json:"x_min"`
	XMax         *float64 `json:"x_max"`
	Seed         *int64   `json:"seed"`
	TestFraction *float64 `json:"test_fraction"`
	SplitSeed    *int64   `json:"split_seed"`
}

func (r fitRequest) toRunRequest(d config.DefaultsConfig) app.RunRequest {
	req := app.RunRequest{
		Generation:   d.Generation,
		TestFraction: d.TestFraction,
		SplitSeed:    d.SplitSeed,
	}
	g := &req.Generation
	if r.A != nil {
		g.A = *r.A
	}
	if r.B != nil {
		g.B = *r.B
	}
	if r.NoiseSigma != nil {
		g.NoiseSigma = *r.NoiseSigma
	}
	if r.N != nil {
		g.N = *r.N
	}
	if r.XMin != nil {
		g.XMin = *r.XMin
	}
	if r.XMax != nil {
		g.XMax = *r.XMax
	}
	if r.Seed != nil {
		g.Seed = *r.Seed
	}
	if r.TestFraction != nil {
		req.TestFraction = *r.TestFraction
	}
	if r.SplitSeed != nil {
		req.SplitSeed = *r.SplitSeed
	}
	return req
}

// fitResponse is the JSON body returned for a successful run
type fitResponse struct {
	RunID        string                      `json:"run_id"`
	Config       regression.GenerationConfig `json:"config"`
	TestFraction float64                     `json:"test_fraction"`
	SplitSeed    int64                       `json:"split_seed"`
	Slope        float64                     `json:"slope"`
	Intercept    float64                     `json:"intercept"`
	RMSE         float64                     `json:"rmse"`
	R2           *float64                    `json:"r2"`
	R2Defined    bool                        `json:"r2_defined"`
	Warnings     []string                    `json:"warnings,omitempty"`
	Test         []regression.Prediction     `json:"test"`
	TrainSize    int                         `json:"train_size"`
	TestSize     int                         `json:"test_size"`
	DurationMS   float64                     `json:"duration_ms"`
}

func newFitResponse(run *app.Run) fitResponse {
	fit := run.Fit
	resp := fitResponse{
		RunID:        run.ID.String(),
		Config:       run.Request.Generation,
		TestFraction: run.Request.TestFraction,
		SplitSeed:    run.Request.SplitSeed,
		Slope:        fit.Slope,
		Intercept:    fit.Intercept,
		RMSE:         fit.RMSE,
		Test:         fit.Predictions(),
		TrainSize:    fit.TrainSize,
		TestSize:     fit.TestSize,
		DurationMS:   run.Duration.Seconds() * 1000,
	}
	if r2, err := fit.RSquared(); err != nil {
		resp.Warnings = append(resp.Warnings, errors.GetCode(err)+": "+err.Error())
	} else {
		resp.R2 = &r2
		resp.R2Defined = true
	}
	return resp
}

// errorResponse is the JSON body for a failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newErrorResponse(err error) errorResponse {
	if !errors.IsAppError(err) {
		return errorResponse{Error: err.Error(), Code: errors.CodeInternalError}
	}
	return errorResponse{Error: err.Error(), Code: errors.GetCode(err)}
}
