package ui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"linfit/app"
	"linfit/internal"
	"linfit/internal/config"
	"linfit/internal/generator"
	"linfit/internal/regression"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	cfg := config.Default()
	cfg.Server.GinMode = "test"
	logger := internal.NewLoggerTo(io.Discard, internal.LogLevelError)
	svc := app.NewRegressionService(generator.NewLinearGenerator(nil), regression.NewOLSFitter(nil), logger, cfg.Limits.MaxSamples)
	return Options{Service: svc, Config: cfg, Logger: logger}
}

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	a, err := NewApp(testOptions(t))
	require.NoError(t, err)
	return a.Handler()
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	s, err := NewServer(testOptions(t))
	require.NoError(t, err)
	return s.Handler()
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(h http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// postChunkedJSON sends body without a declared length, as a chunked client would
func postChunkedJSON(h http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
