// Package plotting renders the test-set scatter and fitted line as a PNG.
package plotting

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"linfit/domain/regression"
	"linfit/ports"
)

var (
	pointColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	lineColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Renderer draws fit results at a fixed canvas size
type Renderer struct {
	width  vg.Length
	height vg.Length
}

var _ ports.PlotRendererPort = (*Renderer)(nil)

// NewRenderer creates a renderer for a canvas of the given size in centimetres
func NewRenderer(widthCm, heightCm float64) *Renderer {
	if widthCm <= 0 {
		widthCm = 16
	}
	if heightCm <= 0 {
		heightCm = 10
	}
	return &Renderer{
		width:  vg.Length(widthCm) * vg.Centimeter,
		height: vg.Length(heightCm) * vg.Centimeter,
	}
}

// RenderPNG plots the test samples and the fitted line through the test
// predictions ordered by x
func (r *Renderer) RenderPNG(fit *regression.FitResult, title string) ([]byte, error) {
	if fit == nil || len(fit.TestX) == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(fit.TestX))
	for i := range fit.TestX {
		points[i] = plotter.XY{X: fit.TestX[i], Y: fit.TestY[i]}
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Radius = vg.Points(2.5)

	line, err := plotter.NewLine(FittedLine(fit))
	if err != nil {
		return nil, fmt.Errorf("failed to build fitted line: %w", err)
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(2)

	p.Add(scatter, line)
	p.Legend.Add("Test data", scatter)
	p.Legend.Add("Fitted line", line)

	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// FittedLine returns the (x, ŷ) test pairs sorted by x
func FittedLine(fit *regression.FitResult) plotter.XYs {
	xys := make(plotter.XYs, len(fit.TestX))
	for i := range fit.TestX {
		xys[i] = plotter.XY{X: fit.TestX[i], Y: fit.TestPred[i]}
	}
	sort.Slice(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
	return xys
}

// DataURI encodes a PNG for inline <img> embedding
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
