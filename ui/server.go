package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"actionaudit/adapters/excel"
	"actionaudit/app"
	"actionaudit/domain/audit"
	"actionaudit/domain/core"
	"actionaudit/internal/config"
	"actionaudit/internal/errors"
	"actionaudit/internal/report"

	"github.com/gin-gonic/gin"
)

// Server is the web UI: an upload page, a rendered report view, and the
// JSON analysis API.
type Server struct {
	router         *gin.Engine
	analyzer       *app.AnalyzerService
	templates      *template.Template
	embeddedFiles  embed.FS
	maxUploadBytes int64
	maxUploadMB    int
}

// indexView backs the upload page.
type indexView struct {
	MaxUploadMB    int
	Accept         string
	Extensions     string
	HistoryEnabled bool
}

// resultView backs the report page rendered after a form upload.
type resultView struct {
	Filename   string
	RunID      string
	Result     *audit.Result
	ReportHTML template.HTML
}

// errorView backs the error page for failed form uploads.
type errorView struct {
	Status  int
	Code    string
	Message string
}

// NewServer creates a new web server instance
func NewServer(embeddedFiles embed.FS) *Server {
	return &Server{
		router:        gin.Default(),
		embeddedFiles: embeddedFiles,
	}
}

// Initialize sets up the server with dependencies
func (s *Server) Initialize(analyzer *app.AnalyzerService, cfg *config.Config) error {
	s.analyzer = analyzer
	s.maxUploadBytes = cfg.Upload.MaxUploadBytes()
	s.maxUploadMB = cfg.Upload.MaxUploadMB

	gin.SetMode(cfg.Server.GinMode)

	funcMap := template.FuncMap{
		"pct1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}

	// The embedded filesystem is rooted at the repo when main embeds it
	// (ui/templates/...) and at this package in tests (templates/...).
	templatesRoot := "ui/templates"
	if _, err := fs.Stat(s.embeddedFiles, templatesRoot); err != nil {
		templatesRoot = "templates"
	}
	templatesFS, err := fs.Sub(s.embeddedFiles, templatesRoot)
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	s.templates, err = template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	s.setupRoutes()

	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/analyze", s.handleAnalyzeForm)

	// JSON API
	s.router.POST("/api/analyses", s.handleAnalyzeJSON)
	s.router.GET("/api/analyses", s.handleListRuns)
	s.router.GET("/api/analyses/:id", s.handleGetRun)

	s.router.GET("/healthz", s.handleHealthz)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting action audit UI on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying handler so tests can drive it directly.
func (s *Server) Router() http.Handler {
	return s.router
}

// handleIndex renders the upload page
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", indexView{
		MaxUploadMB:    s.maxUploadMB,
		Accept:         strings.Join(excel.SupportedExtensions, ","),
		Extensions:     strings.Join(excel.SupportedExtensions, ", "),
		HistoryEnabled: s.analyzer.HistoryEnabled(),
	})
}

// handleAnalyzeForm runs one analysis for the upload form and renders the
// report page, insights included.
func (s *Server) handleAnalyzeForm(c *gin.Context) {
	data, filename, err := s.readUpload(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	resp, err := s.analyzer.Analyze(c.Request.Context(), app.AnalyzeRequest{
		Data:         data,
		Filename:     filename,
		WithInsights: true,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	md := report.MarkdownWithInsights(filename, resp.Result, resp.Insights)
	s.renderTemplate(c, "result.html", resultView{
		Filename:   filename,
		RunID:      resp.RunID.String(),
		Result:     resp.Result,
		ReportHTML: template.HTML(renderMarkdown(md)),
	})
}

// handleAnalyzeJSON runs one analysis for API callers. Insights are opt-in
// via ?insights=1.
func (s *Server) handleAnalyzeJSON(c *gin.Context) {
	data, filename, err := s.readUpload(c)
	if err != nil {
		s.jsonError(c, err)
		return
	}

	resp, err := s.analyzer.Analyze(c.Request.Context(), app.AnalyzeRequest{
		Data:         data,
		Filename:     filename,
		WithInsights: boolQuery(c.Query("insights")),
	})
	if err != nil {
		s.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleListRuns returns recent recorded runs, newest first
func (s *Server) handleListRuns(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	runs, err := s.analyzer.ListRuns(c.Request.Context(), limit, offset)
	if err != nil {
		s.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// handleGetRun returns one recorded run by id
func (s *Server) handleGetRun(c *gin.Context) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		s.jsonError(c, errors.InvalidInput(err.Error()))
		return
	}

	run, err := s.analyzer.GetRun(c.Request.Context(), id)
	if err != nil {
		s.jsonError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "history": s.analyzer.HistoryEnabled()})
}

// readUpload validates and reads the uploaded workbook form file.
func (s *Server) readUpload(c *gin.Context) ([]byte, string, error) {
	file, header, err := c.Request.FormFile("workbook")
	if err != nil {
		return nil, "", errors.InvalidInput(`no file uploaded under form field "workbook"`)
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		return nil, "", errors.InvalidInput(fmt.Sprintf("file size (%.1f MB) exceeds the %d MB limit",
			float64(header.Size)/(1024*1024), s.maxUploadMB))
	}

	if !extensionSupported(header.Filename) {
		log.Printf("[readUpload] Rejected %s: unsupported extension", header.Filename)
		return nil, "", core.NewUnsupportedFormatError(filepath.Ext(header.Filename))
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read upload")
	}

	return data, header.Filename, nil
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) renderError(c *gin.Context, err error) {
	status, code := statusForError(err)
	log.Printf("[Server] Upload analysis failed (%s): %v", code, err)

	c.Status(status)
	c.Header("Content-Type", "text/html")
	if tplErr := s.templates.ExecuteTemplate(c.Writer, "error.html", errorView{
		Status:  status,
		Code:    code,
		Message: err.Error(),
	}); tplErr != nil {
		log.Printf("Template error: %v", tplErr)
	}
}

func (s *Server) jsonError(c *gin.Context, err error) {
	status, code := statusForError(err)
	log.Printf("[Server] Request failed (%s): %v", code, err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
