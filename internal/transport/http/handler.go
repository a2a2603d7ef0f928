package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"team-roster-service/internal/domain"
	"team-roster-service/internal/service"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	msgTeamNotFound    = "Team not found"
	msgTeamNameMissing = "Team name is required"
	msgServerError     = "Server error"

	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	rosterService *service.RosterService
	logger        *slog.Logger
}

func NewHandler(rs *service.RosterService, logger *slog.Logger) *Handler {
	return &Handler{
		rosterService: rs,
		logger:        logger,
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write json response", "error", err)
	}
}

// respondError never puts internal error detail into the response body.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := msgServerError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = msgTeamNotFound
		h.logger.InfoContext(r.Context(), "team not found", "path", r.URL.Path)
	case errors.Is(err, domain.ErrMalformedRequest):
		status = http.StatusBadRequest
		message = msgTeamNameMissing
	default:
		h.logger.ErrorContext(r.Context(), "http server error",
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}

	h.respondJSON(w, r, status, ErrorResponse{Error: message})
}

func NewSlogLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(t1).Milliseconds(),
				"bytes_written", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}

		return http.HandlerFunc(fn)
	}
}
