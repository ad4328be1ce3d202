package ui

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"linfit/adapters/excel"
	"linfit/app"
	"linfit/domain/core"
	"linfit/domain/regression"
	"linfit/internal"
	"linfit/internal/config"
	"linfit/internal/errors"
	"linfit/internal/plotting"
	"linfit/ports"
)

// Options holds the dependencies shared by both front ends
type Options struct {
	Service  *app.RegressionService
	Renderer ports.PlotRendererPort
	Config   *config.Config
	Logger   *internal.Logger
}

// presenter turns run requests into page data, JSON, images and workbooks.
// Everything it produces is built per request.
type presenter struct {
	service   *app.RegressionService
	renderer  ports.PlotRendererPort
	cfg       *config.Config
	logger    *internal.Logger
	templates *template.Template
	about     template.HTML
}

func newPresenter(opts Options) (*presenter, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("regression service is required")
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = plotting.NewRenderer(opts.Config.Plot.Width, opts.Config.Plot.Height)
	}
	if opts.Logger == nil {
		opts.Logger = internal.DefaultLogger
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	about, err := renderAbout()
	if err != nil {
		return nil, fmt.Errorf("failed to render about page: %w", err)
	}

	return &presenter{
		service:   opts.Service,
		renderer:  opts.Renderer,
		cfg:       opts.Config,
		logger:    opts.Logger,
		templates: templates,
		about:     about,
	}, nil
}

// resultView is what the pages show for a successful run
type resultView struct {
	RunID      string
	Truth      regression.GenerationConfig
	Slope      float64
	Intercept  float64
	RMSE       float64
	R2         float64
	R2Defined  bool
	TrainSize  int
	TestSize   int
	PlotURI    template.URL
	Query      template.URL
	DurationMS float64
}

// pageData feeds the dashboard and form templates
type pageData struct {
	Title    string
	Mode     string
	Form     formValues
	Result   *resultView
	Error    string
	Warning  string
	Limits   config.LimitsConfig
	Defaults formValues
}

func (p *presenter) run(ctx context.Context, req app.RunRequest) (*app.Run, error) {
	return p.service.Run(ctx, req)
}

// page runs req and assembles page data; user errors become a message on
// the page rather than a failed request
func (p *presenter) page(ctx context.Context, title, mode string, req app.RunRequest) (pageData, int) {
	data := pageData{
		Title:    title,
		Mode:     mode,
		Form:     newFormValues(req),
		Limits:   p.cfg.Limits,
		Defaults: newFormValues(app.RunRequest{Generation: p.cfg.Defaults.Generation, TestFraction: p.cfg.Defaults.TestFraction, SplitSeed: p.cfg.Defaults.SplitSeed}),
	}

	run, err := p.run(ctx, req)
	if err != nil {
		data.Error = err.Error()
		return data, statusFor(err)
	}

	view, err := p.resultView(run)
	if err != nil {
		p.logger.Error("[run %s] failed to build result view: %v", run.ID, err)
		data.Error = "failed to render results"
		return data, http.StatusInternalServerError
	}
	data.Result = view
	if !view.R2Defined {
		data.Warning = "R² is undefined because the test targets have zero variance."
	}
	return data, http.StatusOK
}

func (p *presenter) resultView(run *app.Run) (*resultView, error) {
	png, err := p.renderer.RenderPNG(run.Fit, "Linear regression: test data and fitted line")
	if err != nil {
		return nil, err
	}
	fit := run.Fit
	return &resultView{
		RunID:      run.ID.String(),
		Truth:      run.Request.Generation,
		Slope:      fit.Slope,
		Intercept:  fit.Intercept,
		RMSE:       fit.RMSE,
		R2:         fit.R2,
		R2Defined:  fit.R2Defined(),
		TrainSize:  fit.TrainSize,
		TestSize:   fit.TestSize,
		PlotURI:    template.URL(plotting.DataURI(png)),
		Query:      template.URL(encodeRequest(run.Request)),
		DurationMS: float64(run.Duration) / float64(time.Millisecond),
	}, nil
}

func (p *presenter) writePNG(w io.Writer, run *app.Run) error {
	png, err := p.renderer.RenderPNG(run.Fit, "Linear regression: test data and fitted line")
	if err != nil {
		return err
	}
	_, err = w.Write(png)
	return err
}

func (p *presenter) writeWorkbook(w io.Writer, run *app.Run) error {
	wb := excel.RunWorkbook(run.Request.Generation, run.Request.TestFraction, run.Request.SplitSeed, run.Dataset, run.Fit)
	return excel.Write(w, wb)
}

func (p *presenter) render(name string, data interface{}) ([]byte, error) {
	buf, err := executeTemplate(p.templates, name, data)
	if err != nil {
		p.logger.Error("Template error for %s: %v", name, err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// workbookName puts the run ID into the download name only when it is a
// well-formed UUID, so nothing else can reach the Content-Disposition header
func workbookName(run *app.Run) string {
	id, err := core.ParseRunID(run.ID.String())
	if err != nil {
		return "linfit_run.xlsx"
	}
	return fmt.Sprintf("linfit_%s.xlsx", id)
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	if errors.IsUserError(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
