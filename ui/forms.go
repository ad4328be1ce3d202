package ui

import (
	"net/url"
	"strconv"
	"strings"

	"linfit/app"
	"linfit/internal/config"
	"linfit/internal/errors"
)

// Form and query parameter names shared by both front ends
const (
	fieldA            = "a"
	fieldB            = "b"
	fieldNoiseSigma   = "noise_sigma"
	fieldN            = "n"
	fieldXMin         = "x_min"
	fieldXMax         = "x_max"
	fieldSeed         = "seed"
	fieldTestFraction = "test_size"
	fieldSplitSeed    = "split_seed"
)

// valueSource looks up a raw form or query value; "" means absent
type valueSource func(key string) string

// parseRunRequest overlays submitted values on the configured defaults.
// When splitFromSeed is set and no split seed was submitted, the generation
// seed is reused for the split.
func parseRunRequest(get valueSource, defaults config.DefaultsConfig, splitFromSeed bool) (app.RunRequest, error) {
	req := app.RunRequest{
		Generation:   defaults.Generation,
		TestFraction: defaults.TestFraction,
		SplitSeed:    defaults.SplitSeed,
	}
	gen := &req.Generation

	floats := []struct {
		key string
		dst *float64
	}{
		{fieldA, &gen.A},
		{fieldB, &gen.B},
		{fieldNoiseSigma, &gen.NoiseSigma},
		{fieldXMin, &gen.XMin},
		{fieldXMax, &gen.XMax},
		{fieldTestFraction, &req.TestFraction},
	}
	for _, f := range floats {
		raw := strings.TrimSpace(get(f.key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.InvalidInput(f.key + " must be a number, got " + strconv.Quote(raw))
		}
		*f.dst = v
	}

	if raw := strings.TrimSpace(get(fieldN)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.InvalidInput("n must be a whole number, got " + strconv.Quote(raw))
		}
		gen.N = n
	}

	if raw := strings.TrimSpace(get(fieldSeed)); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, errors.InvalidInput("seed must be an integer, got " + strconv.Quote(raw))
		}
		gen.Seed = seed
	}

	if raw := strings.TrimSpace(get(fieldSplitSeed)); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, errors.InvalidInput("split_seed must be an integer, got " + strconv.Quote(raw))
		}
		req.SplitSeed = seed
	} else if splitFromSeed {
		req.SplitSeed = gen.Seed
	}

	return req, nil
}

// formValues is the string form of a request, used to refill inputs
type formValues struct {
	A            string
	B            string
	NoiseSigma   string
	N            string
	XMin         string
	XMax         string
	Seed         string
	TestFraction string
	SplitSeed    string
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func newFormValues(req app.RunRequest) formValues {
	g := req.Generation
	return formValues{
		A:            formatFloat(g.A),
		B:            formatFloat(g.B),
		NoiseSigma:   formatFloat(g.NoiseSigma),
		N:            strconv.Itoa(g.N),
		XMin:         formatFloat(g.XMin),
		XMax:         formatFloat(g.XMax),
		Seed:         strconv.FormatInt(g.Seed, 10),
		TestFraction: formatFloat(req.TestFraction),
		SplitSeed:    strconv.FormatInt(req.SplitSeed, 10),
	}
}

// encodeRequest renders a request as a query string for plot and export links
func encodeRequest(req app.RunRequest) string {
	f := newFormValues(req)
	q := url.Values{}
	q.Set(fieldA, f.A)
	q.Set(fieldB, f.B)
	q.Set(fieldNoiseSigma, f.NoiseSigma)
	q.Set(fieldN, f.N)
	q.Set(fieldXMin, f.XMin)
	q.Set(fieldXMax, f.XMax)
	q.Set(fieldSeed, f.Seed)
	q.Set(fieldTestFraction, f.TestFraction)
	q.Set(fieldSplitSeed, f.SplitSeed)
	return q.Encode()
}
