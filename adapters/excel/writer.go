package excel

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"linfit/domain/regression"
)

const defaultSheet = "Sheet1"

// Write encodes wb as an .xlsx document to w
func Write(w io.Writer, wb Workbook) error {
	if len(wb.Sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return fmt.Errorf("failed to rename sheet %s: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		header := make([]interface{}, len(sheet.Headers))
		for c, h := range sheet.Headers {
			header[c] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d of %s: %w", r+2, sheet.Name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

// RunWorkbook lays out one run as three sheets: the generated dataset, the
// test predictions and a parameter/metric summary
func RunWorkbook(cfg regression.GenerationConfig, testFraction float64, splitSeed int64, ds *regression.Dataset, fit *regression.FitResult) Workbook {
	data := Sheet{Name: "dataset", Headers: []string{"index", "x", "y", "partition"}}
	partition := make(map[int]string, ds.Len())
	for _, i := range fit.Split.Train {
		partition[i] = "train"
	}
	for _, i := range fit.Split.Test {
		partition[i] = "test"
	}
	for i, s := range ds.Samples() {
		data.Rows = append(data.Rows, []interface{}{i, s.X, s.Y, partition[i]})
	}

	preds := Sheet{Name: "predictions", Headers: []string{"x", "y", "y_pred", "residual"}}
	for _, p := range fit.Predictions() {
		preds.Rows = append(preds.Rows, []interface{}{p.X, p.Y, p.YHat, p.Y - p.YHat})
	}

	var r2 interface{} = "undefined"
	if !math.IsNaN(fit.R2) {
		r2 = fit.R2
	}
	summary := Sheet{
		Name:    "summary",
		Headers: []string{"parameter", "value"},
		Rows: [][]interface{}{
			{"true slope (a)", cfg.A},
			{"true intercept (b)", cfg.B},
			{"noise sigma", cfg.NoiseSigma},
			{"n", cfg.N},
			{"x min", cfg.XMin},
			{"x max", cfg.XMax},
			{"seed", cfg.Seed},
			{"test fraction", testFraction},
			{"split seed", splitSeed},
			{"train size", fit.TrainSize},
			{"test size", fit.TestSize},
			{"estimated slope", fit.Slope},
			{"estimated intercept", fit.Intercept},
			{"RMSE", fit.RMSE},
			{"R²", r2},
		},
	}

	return Workbook{Sheets: []Sheet{data, preds, summary}}
}
