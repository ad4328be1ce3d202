package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linfit/internal/errors"
)

func TestServer_IndexShowsDefaults(t *testing.T) {
	h := newTestServer(t)

	rec := get(h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="a" value="2"`)
	assert.Contains(t, body, `name="noise_sigma" value="1"`)
	assert.Contains(t, body, `name="n" value="200"`)
	assert.NotContains(t, body, "Results", "no run before the first submit")
}

func TestServer_Submit(t *testing.T) {
	h := newTestServer(t)

	rec := postForm(h, "/", url.Values{
		"a":           {"2"},
		"b":           {"0"},
		"noise_sigma": {"0"},
		"n":           {"10"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Results")
	assert.Contains(t, body, "Estimated slope:")
	assert.Contains(t, body, "2.0000")
	assert.Contains(t, body, "data:image/png;base64,")
	assert.Contains(t, body, `name="n" value="10"`, "form keeps submitted values")
}

func TestServer_SubmitIgnoresOtherFields(t *testing.T) {
	h := newTestServer(t)

	// x range and seed are not part of this form; the defaults apply
	rec := postForm(h, "/", url.Values{
		"a":     {"2"},
		"n":     {"10"},
		"x_min": {"5"},
		"x_max": {"1"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_SubmitErrors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"zero samples", url.Values{"n": {"0"}}, "n must be positive"},
		{"negative noise", url.Values{"noise_sigma": {"-0.5"}}, "noise sigma"},
		{"not a number", url.Values{"b": {"x"}}, "b must be a number"},
		{"too few for a split", url.Values{"n": {"2"}}, "train partition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(h, "/", tt.values)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "banner error")
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, "Results")
		})
	}
}

func TestServer_APIFit(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(h, "/api/fit", `{"a":-1.5,"b":4,"noise_sigma":0,"n":50,"seed":7}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp fitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, -1.5, resp.Slope, 1e-9)
	assert.InDelta(t, 4.0, resp.Intercept, 1e-9)
	assert.Equal(t, 50, resp.TrainSize+resp.TestSize)

	rec = postJSON(h, "/api/fit", `{"n":3,"test_fraction":0.5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var errResp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, errors.CodeInvalidSplit, errResp.Code)
}

func TestServer_APIFitEmptyBody(t *testing.T) {
	h := newTestServer(t)

	for name, send := range map[string]func(http.Handler, string, string) *httptest.ResponseRecorder{
		"sized":   postJSON,
		"chunked": postChunkedJSON,
	} {
		t.Run(name, func(t *testing.T) {
			rec := send(h, "/api/fit", "")
			require.Equal(t, http.StatusOK, rec.Code)

			var resp fitResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, 200, resp.TrainSize+resp.TestSize)
		})
	}

	rec := postJSON(h, "/api/fit", `{"a":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Downloads(t *testing.T) {
	h := newTestServer(t)

	rec := get(h, "/plot.png?"+exampleQuery)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = get(h, "/export.xlsx?"+exampleQuery)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestServer_AboutHealthStatic(t *testing.T) {
	h := newTestServer(t)

	rec := get(h, "/about")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "About linfit")

	rec = get(h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","frontend":"form"}`, rec.Body.String())

	rec = get(h, "/static/app.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_CORS(t *testing.T) {
	opts := testOptions(t)
	opts.Config.Server.AllowedOrigins = []string{"http://example.test"}
	s, err := NewServer(opts)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://example.test")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.test", rec.Header().Get("Access-Control-Allow-Origin"))
}
