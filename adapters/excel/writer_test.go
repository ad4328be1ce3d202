package excel

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"linfit/domain/regression"
)

func TestWrite_RoundTrip(t *testing.T) {
	wb := Workbook{Sheets: []Sheet{
		{Name: "first", Headers: []string{"a", "b"}, Rows: [][]interface{}{{1, "x"}, {2, "y"}}},
		{Name: "second", Headers: []string{"c"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, wb))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"first", "second"}, f.GetSheetList())

	rows, err := f.GetRows("first")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "x"}, {"2", "y"}}, rows)
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Workbook{}))
}

func TestRunWorkbook(t *testing.T) {
	ds := regression.NewDataset([]regression.Sample{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}, {X: 3, Y: 7}})
	fit := &regression.FitResult{
		Slope: 2, Intercept: 1,
		TestX: []float64{3}, TestY: []float64{7}, TestPred: []float64{7},
		TrainSize: 3, TestSize: 1,
		Split: regression.Split{Train: []int{0, 1, 2}, Test: []int{3}},
	}
	fit.R2 = math.NaN()

	wb := RunWorkbook(regression.DefaultGenerationConfig(), 0.25, 0, ds, fit)
	require.Len(t, wb.Sheets, 3)

	data := wb.Sheets[0]
	assert.Equal(t, "dataset", data.Name)
	require.Len(t, data.Rows, 4)
	assert.Equal(t, "train", data.Rows[0][3])
	assert.Equal(t, "test", data.Rows[3][3])

	preds := wb.Sheets[1]
	require.Len(t, preds.Rows, 1)
	assert.Equal(t, 0.0, preds.Rows[0][3])

	summary := wb.Sheets[2]
	last := summary.Rows[len(summary.Rows)-1]
	assert.Equal(t, "undefined", last[1])

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, wb))
	assert.NotZero(t, buf.Len())
}
