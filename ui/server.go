package ui

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"linfit/app"
	"linfit/internal/errors"
)

const formTitle = "Linear Regression Demo"

// Server is the single-page form front end. A GET shows the form filled with
// defaults; a POST runs the cycle and renders the results below the form.
type Server struct {
	router *gin.Engine
	*presenter
}

// NewServer creates the form front end
func NewServer(opts Options) (*Server, error) {
	p, err := newPresenter(opts)
	if err != nil {
		return nil, err
	}

	gin.SetMode(p.cfg.Server.GinMode)
	s := &Server{
		router:    gin.New(),
		presenter: p,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/", s.handleSubmit)
	s.router.GET("/about", s.handleAbout)
	s.router.GET("/plot.png", s.handlePlot)
	s.router.GET("/export.xlsx", s.handleExport)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/fit", s.handleAPIFit)
}

// Handler exposes the engine, for tests and for embedding in another server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the form front end on addr until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting form front end on http://localhost%s", addr)
	return serve(ctx, addr, s.router, s.logger)
}

func (s *Server) defaultRequest() app.RunRequest {
	d := s.cfg.Defaults
	return app.RunRequest{Generation: d.Generation, TestFraction: d.TestFraction, SplitSeed: d.SplitSeed}
}

func (s *Server) handleIndex(c *gin.Context) {
	req := s.defaultRequest()
	form := newFormValues(req)
	s.renderTemplate(c, http.StatusOK, "form.html", pageData{
		Title:    formTitle,
		Mode:     "form",
		Form:     form,
		Limits:   s.cfg.Limits,
		Defaults: form,
	})
}

// handleSubmit reads a, b, noise_sigma and n from the posted form. The range,
// seeds and split fraction stay at their configured values.
func (s *Server) handleSubmit(c *gin.Context) {
	posted := func(key string) string {
		switch key {
		case fieldA, fieldB, fieldNoiseSigma, fieldN:
			return c.PostForm(key)
		}
		return ""
	}

	req, err := parseRunRequest(posted, s.cfg.Defaults, false)
	if err != nil {
		s.renderTemplate(c, statusFor(err), "form.html", pageData{
			Title:  formTitle,
			Mode:   "form",
			Form:   newFormValues(req),
			Limits: s.cfg.Limits,
			Error:  err.Error(),
		})
		return
	}

	data, status := s.page(c.Request.Context(), formTitle, "form", req)
	s.renderTemplate(c, status, "form.html", data)
}

func (s *Server) handleAbout(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "about.html", gin.H{
		"Title": "About linfit",
		"Body":  s.about,
	})
}

func (s *Server) runFromQuery(c *gin.Context) (*app.Run, bool) {
	req, err := parseRunRequest(c.Query, s.cfg.Defaults, false)
	if err == nil {
		var run *app.Run
		run, err = s.run(c.Request.Context(), req)
		if err == nil {
			return run, true
		}
	}
	c.String(statusFor(err), err.Error())
	return nil, false
}

func (s *Server) handlePlot(c *gin.Context) {
	run, ok := s.runFromQuery(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "image/png")
	c.Header("Cache-Control", "no-store")
	if err := s.writePNG(c.Writer, run); err != nil {
		s.logger.Error("[run %s] plot failed: %v", run.ID, err)
	}
}

func (s *Server) handleExport(c *gin.Context) {
	run, ok := s.runFromQuery(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+workbookName(run)+`"`)
	if err := s.writeWorkbook(c.Writer, run); err != nil {
		s.logger.Error("[run %s] export failed: %v", run.ID, err)
	}
}

func (s *Server) handleAPIFit(c *gin.Context) {
	var body fitRequest
	if err := c.ShouldBindJSON(&body); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, newErrorResponse(errors.WithCode(errors.CodeInvalidInput, err)))
		return
	}

	run, err := s.run(c.Request.Context(), body.toRunRequest(s.cfg.Defaults))
	if err != nil {
		c.JSON(statusFor(err), newErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, newFitResponse(run))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "frontend": "form"})
}

// renderTemplate buffers the page so a template error never leaves a
// half-written response
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	body, err := s.render(templateName, data)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}
