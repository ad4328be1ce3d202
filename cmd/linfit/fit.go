package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"linfit/adapters/excel"
	"linfit/app"
)

const (
	terminalWidthBackup = 80
	minReportWidth      = 40
)

type fitFlags struct {
	a, b, noise float64
	n           int
	xMin, xMax  float64
	seed        int64
	testSize    float64
	splitSeed   int64
	xlsxPath    string
	pngPath     string
	showTest    bool
	forceColor  bool
}

func newFitCmd() *cobra.Command {
	var f fitFlags

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Run one generate-and-fit cycle and print the metrics",
		Long: `Generate a synthetic dataset, fit a line on the training partition and
report the estimates and test metrics. Unset flags take the configured
defaults.

Example: linfit fit --a 2 --b 0 --noise 0 --n 10 --test-size 0.25 --xlsx run.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup()
			if err != nil {
				return err
			}
			cfg, logger := c.Config, c.Logger

			req := app.RunRequest{
				Generation:   cfg.Defaults.Generation,
				TestFraction: cfg.Defaults.TestFraction,
				SplitSeed:    cfg.Defaults.SplitSeed,
			}
			f.apply(cmd, &req)

			run, err := c.Service.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := shouldUseColor(out, f.forceColor)
			fmt.Fprintln(out, renderReport(run, terminalWidth(), color, f.showTest))

			if f.xlsxPath != "" {
				if err := writeWorkbookFile(f.xlsxPath, run); err != nil {
					return err
				}
				logger.Info("Wrote workbook to %s", f.xlsxPath)
			}
			if f.pngPath != "" {
				png, err := c.Renderer.RenderPNG(run.Fit, "Linear regression: test data and fitted line")
				if err != nil {
					return fmt.Errorf("failed to render plot: %w", err)
				}
				if err := os.WriteFile(f.pngPath, png, 0o644); err != nil {
					return fmt.Errorf("failed to write plot: %w", err)
				}
				logger.Info("Wrote plot to %s", f.pngPath)
			}
			return nil
		},
	}

	d := cmd.Flags()
	d.Float64Var(&f.a, "a", 2, "True slope")
	d.Float64Var(&f.b, "b", 0, "True intercept")
	d.Float64Var(&f.noise, "noise", 1, "Noise standard deviation")
	d.IntVar(&f.n, "n", 200, "Number of samples")
	d.Float64Var(&f.xMin, "x-min", -5, "Lower bound of x")
	d.Float64Var(&f.xMax, "x-max", 5, "Upper bound of x")
	d.Int64Var(&f.seed, "seed", 42, "Random seed for data generation")
	d.Float64Var(&f.testSize, "test-size", 0.25, "Fraction of samples held out for testing")
	d.Int64Var(&f.splitSeed, "split-seed", 0, "Random seed for the train/test split")
	d.StringVar(&f.xlsxPath, "xlsx", "", "Also write the run to this workbook")
	d.StringVar(&f.pngPath, "png", "", "Also write the plot to this PNG file")
	d.BoolVar(&f.showTest, "show-test", false, "List test points with their predictions")
	d.BoolVar(&f.forceColor, "color", false, "Force colored output")
	return cmd
}

// apply overrides the configured defaults with flags the user actually set
func (f fitFlags) apply(cmd *cobra.Command, req *app.RunRequest) {
	changed := cmd.Flags().Changed
	g := &req.Generation
	if changed("a") {
		g.A = f.a
	}
	if changed("b") {
		g.B = f.b
	}
	if changed("noise") {
		g.NoiseSigma = f.noise
	}
	if changed("n") {
		g.N = f.n
	}
	if changed("x-min") {
		g.XMin = f.xMin
	}
	if changed("x-max") {
		g.XMax = f.xMax
	}
	if changed("seed") {
		g.Seed = f.seed
	}
	if changed("test-size") {
		req.TestFraction = f.testSize
	}
	if changed("split-seed") {
		req.SplitSeed = f.splitSeed
	}
}

func writeWorkbookFile(path string, run *app.Run) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	wb := excel.RunWorkbook(run.Request.Generation, run.Request.TestFraction, run.Request.SplitSeed, run.Dataset, run.Fit)
	if err := excel.Write(file, wb); err != nil {
		file.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return file.Close()
}

type reportStyles struct {
	title, label, value, muted, warn, card lipgloss.Style
}

func newReportStyles(color bool) reportStyles {
	plain := lipgloss.NewStyle()
	s := reportStyles{
		title: plain.Bold(true),
		label: plain,
		value: plain.Bold(true),
		muted: plain,
		warn:  plain,
		card:  plain.Border(lipgloss.RoundedBorder(), true).Padding(0, 1),
	}
	if !color {
		return s
	}
	s.title = s.title.Foreground(lipgloss.Color("#C89A3A"))
	s.label = s.label.Foreground(lipgloss.Color("#8C8C8C"))
	s.value = s.value.Foreground(lipgloss.Color("#F0F0F0"))
	s.muted = s.muted.Foreground(lipgloss.Color("#6E6E6E"))
	s.warn = s.warn.Foreground(lipgloss.Color("#FF4D4F"))
	s.card = s.card.BorderForeground(lipgloss.Color("#4A4A4A"))
	return s
}

func format4(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// renderReport lays out the truth, the estimates and the test metrics
func renderReport(run *app.Run, width int, color, showTest bool) string {
	st := newReportStyles(color)
	fit := run.Fit
	g := run.Request.Generation

	row := func(label, value string) string {
		return st.label.Render(fmt.Sprintf("%-22s", label)) + st.value.Render(value)
	}

	r2 := "undefined"
	if fit.R2Defined() {
		r2 = format4(fit.R2)
	}

	lines := []string{
		st.title.Render("Linear regression"),
		row("True slope (a)", format4(g.A)),
		row("Estimated slope", format4(fit.Slope)),
		row("True intercept (b)", format4(g.B)),
		row("Estimated intercept", format4(fit.Intercept)),
		"",
		row("RMSE", format4(fit.RMSE)),
		row("R²", r2),
		"",
		st.muted.Render(fmt.Sprintf("n=%d  train=%d  test=%d  seed=%d  split_seed=%d",
			g.N, fit.TrainSize, fit.TestSize, g.Seed, run.Request.SplitSeed)),
		st.muted.Render("run " + run.ID.String()),
	}
	if !fit.R2Defined() {
		lines = append(lines, st.warn.Render("R² is undefined because the test targets have zero variance."))
	}
	if showTest {
		lines = append(lines, "", st.title.Render("Test points"), st.label.Render(fmt.Sprintf("%12s %12s %12s", "x", "y", "y_pred")))
		for _, p := range fit.Predictions() {
			lines = append(lines, fmt.Sprintf("%12.4f %12.4f %12.4f", p.X, p.Y, p.YHat))
		}
	}

	cardWidth := width - 2
	if cardWidth < minReportWidth {
		cardWidth = minReportWidth
	}
	content := strings.Join(lines, "\n")
	if lipgloss.Width(content)+4 < cardWidth {
		cardWidth = lipgloss.Width(content) + 4
	}
	return st.card.Width(cardWidth).Render(content)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
