// Package web serves the read-only roster page for one configured team.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	httptransport "team-roster-service/internal/transport/http"
	"team-roster-service/internal/viewmodel"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"optional": optional,
}).ParseFS(templateFS, "templates/*.html"))

// optional flattens a nullable field so that both nil and "" render as absent.
func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type Handler struct {
	fetcher  viewmodel.RosterFetcher
	teamName string
	logger   *slog.Logger
}

func NewHandler(fetcher viewmodel.RosterFetcher, teamName string, logger *slog.Logger) *Handler {
	return &Handler{
		fetcher:  fetcher,
		teamName: teamName,
		logger:   logger,
	}
}

type pageData struct {
	TeamName string
	State    viewmodel.State
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httptransport.NewSlogLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.handlePage)
	r.Get("/health", h.handleHealthCheck)

	return r
}

// handlePage mounts a fresh view model for every page request.
func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	model := viewmodel.New(h.fetcher, h.teamName, h.logger)
	state := model.Load(r.Context())

	status := http.StatusOK
	switch {
	case state.Unavailable():
		status = http.StatusServiceUnavailable
	case state.Status == viewmodel.NotFound:
		status = http.StatusNotFound
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", pageData{TeamName: h.teamName, State: state}); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write page", "error", err)
	}
}

func (h *Handler) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
