package ui

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linfit/app"
	"linfit/internal/errors"
)

const dashboardTitle = "Linear Regression — CRISP-DM Demo"

// App is the dashboard front end: a parameter sidebar that reruns the whole
// cycle on every change, a plot and metric cards
type App struct {
	router *chi.Mux
	*presenter
}

// NewApp creates the dashboard front end
func NewApp(opts Options) (*App, error) {
	p, err := newPresenter(opts)
	if err != nil {
		return nil, err
	}

	a := &App{
		router:    chi.NewRouter(),
		presenter: p,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(a.logger.Writer(), "[dashboard] ", log.LstdFlags),
		NoColor: true,
	}))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(30 * time.Second))
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/about", a.handleAbout)
	a.router.Get("/plot.png", a.handlePlot)
	a.router.Get("/export.xlsx", a.handleExport)
	a.router.Get("/healthz", a.handleHealth)
	a.router.Post("/api/fit", a.handleAPIFit)

	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS()))))
}

// Handler exposes the router, for tests and for embedding in another server
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves the dashboard on addr until ctx is cancelled
func (a *App) Start(ctx context.Context, addr string) error {
	a.logger.Info("Starting dashboard on http://localhost%s", addr)
	return serve(ctx, addr, a.router, a.logger)
}

// requestFromQuery parses the sidebar values. The split reuses the
// generation seed unless split_seed is given.
func (a *App) requestFromQuery(r *http.Request) (app.RunRequest, error) {
	q := r.URL.Query()
	return parseRunRequest(q.Get, a.cfg.Defaults, true)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	req, err := a.requestFromQuery(r)
	var data pageData
	status := http.StatusOK
	if err != nil {
		data = pageData{Title: dashboardTitle, Mode: "dashboard", Form: newFormValues(req), Limits: a.cfg.Limits, Error: err.Error()}
		status = statusFor(err)
	} else {
		data, status = a.page(r.Context(), dashboardTitle, "dashboard", req)
	}
	a.renderTemplate(w, status, "dashboard.html", data)
}

func (a *App) handleAbout(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "about.html", map[string]interface{}{
		"Title": "About linfit",
		"Body":  a.about,
	})
}

func (a *App) handlePlot(w http.ResponseWriter, r *http.Request) {
	run, ok := a.runFromQuery(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := a.writePNG(w, run); err != nil {
		a.logger.Error("[run %s] plot failed: %v", run.ID, err)
	}
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	run, ok := a.runFromQuery(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+workbookName(run)+`"`)
	if err := a.writeWorkbook(w, run); err != nil {
		a.logger.Error("[run %s] export failed: %v", run.ID, err)
	}
}

func (a *App) runFromQuery(w http.ResponseWriter, r *http.Request) (*app.Run, bool) {
	req, err := a.requestFromQuery(r)
	if err == nil {
		var run *app.Run
		run, err = a.run(r.Context(), req)
		if err == nil {
			return run, true
		}
	}
	http.Error(w, err.Error(), statusFor(err))
	return nil, false
}

func (a *App) handleAPIFit(w http.ResponseWriter, r *http.Request) {
	var body fitRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	// an empty body, chunked or not, asks for the defaults
	if err := dec.Decode(&body); err != nil && err != io.EOF {
		a.writeJSON(w, http.StatusBadRequest, newErrorResponse(errors.WithCode(errors.CodeInvalidInput, err)))
		return
	}

	run, err := a.run(r.Context(), body.toRunRequest(a.cfg.Defaults))
	if err != nil {
		a.writeJSON(w, statusFor(err), newErrorResponse(err))
		return
	}
	a.writeJSON(w, http.StatusOK, newFitResponse(run))
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "frontend": "dashboard"})
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	body, err := a.render(templateName, data)
	if err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		a.logger.Warn("Error writing template response: %v", err)
	}
}

// writeJSON encodes before writing the header so an encoding failure turns
// into a 500 instead of an empty 200
func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("Error encoding JSON response: %v", err)
		body, _ = json.Marshal(newErrorResponse(errors.InternalError("failed to encode response")))
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		a.logger.Warn("Error writing JSON response: %v", err)
	}
}
