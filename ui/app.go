package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"actionaudit/app"
	"actionaudit/domain/core"
	"actionaudit/internal"
	"actionaudit/internal/config"
	"actionaudit/internal/errors"
)

// formOverheadBytes leaves room for multipart boundaries and part headers on
// top of the configured file cap.
const formOverheadBytes = 1 << 20

// App is the headless JSON API: the same analyzer surface as the web UI with
// no HTML attached.
type App struct {
	router         *chi.Mux
	analyzer       *app.AnalyzerService
	logger         *internal.Logger
	port           string
	maxUploadBytes int64
	maxUploadMB    int
}

// NewApp creates the headless API application
func NewApp(cfg *config.Config, analyzer *app.AnalyzerService) *App {
	a := &App{
		router:         chi.NewRouter(),
		analyzer:       analyzer,
		logger:         internal.DefaultLogger,
		port:           cfg.Server.Port,
		maxUploadBytes: cfg.Upload.MaxUploadBytes(),
		maxUploadMB:    cfg.Upload.MaxUploadMB,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealthz)

	a.router.Post("/api/analyses", a.handleAnalyze)
	a.router.Get("/api/analyses", a.handleListRuns)
	a.router.Get("/api/analyses/{id}", a.handleGetRun)
}

// Handler exposes the router so callers can manage the http.Server
// lifecycle themselves.
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server with the default lifecycle
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("Starting action audit API on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"history": a.analyzer.HistoryEnabled(),
	})
}

// handleAnalyze accepts a multipart "workbook" upload and returns the
// analysis envelope. Insights are opt-in via ?insights=1.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes+formOverheadBytes)

	file, header, err := r.FormFile("workbook")
	if err != nil {
		a.writeError(w, errors.InvalidInput(`no file uploaded under form field "workbook"`))
		return
	}
	defer file.Close()

	if header.Size > a.maxUploadBytes {
		a.writeError(w, errors.InvalidInput(fmt.Sprintf("file size (%.1f MB) exceeds the %d MB limit",
			float64(header.Size)/(1024*1024), a.maxUploadMB)))
		return
	}

	if !extensionSupported(header.Filename) {
		a.writeError(w, core.NewUnsupportedFormatError(filepath.Ext(header.Filename)))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		a.writeError(w, errors.Wrap(err, "failed to read upload"))
		return
	}

	a.logger.Debug("Analyzing %s (%d bytes)", header.Filename, len(data))

	resp, err := a.analyzer.Analyze(r.Context(), app.AnalyzeRequest{
		Data:         data,
		Filename:     header.Filename,
		WithInsights: boolQuery(r.URL.Query().Get("insights")),
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, resp)
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	runs, err := a.analyzer.ListRuns(r.Context(), limit, offset)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs, "count": len(runs)})
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, errors.InvalidInput(err.Error()))
		return
	}

	run, err := a.analyzer.GetRun(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, run)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status, code := statusForError(err)
	a.logger.Warn("Request failed (%s): %v", code, err)
	a.writeJSON(w, status, map[string]interface{}{"error": err.Error(), "code": code})
}
