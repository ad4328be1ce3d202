package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LINFIT_CONFIG", "")
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFitCommand_ExampleScenario(t *testing.T) {
	out, err := runCLI(t, "fit", "--a", "2", "--b", "0", "--noise", "0", "--n", "10", "--test-size", "0.25", "--show-test")
	require.NoError(t, err)

	assert.Contains(t, out, "Estimated slope")
	assert.Contains(t, out, "2.0000")
	assert.Contains(t, out, "1.0000", "R² of a noise-free line")
	assert.Contains(t, out, "train=7  test=3")
	assert.Contains(t, out, "y_pred")
}

func TestFitCommand_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "run.xlsx")
	pngPath := filepath.Join(dir, "run.png")

	_, err := runCLI(t, "fit", "--n", "40", "--xlsx", xlsxPath, "--png", pngPath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"dataset", "predictions", "summary"}, f.GetSheetList())

	png, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestFitCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero samples", []string{"fit", "--n", "0"}, "n must be positive"},
		{"inverted range", []string{"fit", "--x-min", "2", "--x-max", "1"}, "x_min"},
		{"split too large", []string{"fit", "--n", "10", "--test-size", "0.9"}, "train partition"},
		{"unexpected argument", []string{"fit", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFitCommand_UndefinedR2(t *testing.T) {
	out, err := runCLI(t, "fit", "--a", "0", "--b", "1", "--noise", "0", "--n", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "undefined")
	assert.True(t, strings.Contains(out, "zero variance"))
}

func TestServeCommand_RejectsBadMode(t *testing.T) {
	_, err := runCLI(t, "serve", "--mode", "kiosk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kiosk")
}
