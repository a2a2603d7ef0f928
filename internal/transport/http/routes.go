package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewSlogLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/team/{teamName}", h.handleGetTeamRoster)
	r.Get("/team", h.handleGetTeamRoster)
	r.Get("/team/", h.handleGetTeamRoster)

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealthCheck)

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleMethodNotAllowed)

	return r
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusNotFound, ErrorResponse{Error: msgNotFound})
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed})
}
