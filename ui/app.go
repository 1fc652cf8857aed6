package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"salesnorm/adapters/export"
	"salesnorm/app"
	"salesnorm/internal/config"
	"salesnorm/internal/profiling"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App represents the UI application: the presentation layer around the
// normalization pipeline - upload, sheet selection, preview, downloads.
type App struct {
	router     *chi.Mux
	templates  *template.Template
	store      *WorkbookStore
	normalizer *app.Normalizer
	exporter   *export.Exporter
	profiler   *profiling.Profiler
	config     *config.Config
}

// NewApp creates a new UI application
func NewApp(cfg *config.Config) (*App, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"fmtFloat": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	ui := &App{
		router:     chi.NewRouter(),
		templates:  templates,
		store:      NewWorkbookStore(cfg.Upload),
		normalizer: app.NewNormalizer(),
		exporter:   export.NewExporter(),
		profiler:   profiling.NewProfiler(),
		config:     cfg,
	}

	ui.setupMiddleware()
	ui.setupRoutes()

	return ui, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main page
	a.router.Get("/", a.handleIndex)

	// API endpoints
	a.router.Post("/api/workbooks", a.handleUpload)
	a.router.Get("/api/workbooks/{id}/sheets", a.handleSheets)
	a.router.Post("/api/workbooks/{id}/normalize", a.handleNormalize)
	a.router.Get("/api/workbooks/{id}/export/{format}", a.handleExport)
}

// Handler returns the root HTTP handler, for serving and for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
