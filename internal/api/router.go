package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the introspection API's chi router.
func NewRouter(logger *slog.Logger) http.Handler {
	h := NewHandler(logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)
	r.Get("/scenarios", h.ListScenarios)
	r.Post("/scenarios/{name}/run", h.RunScenario)
	r.Get("/scenarios/{name}/events", h.FetchEvents)
	r.Get("/scenarios/{name}/stats", h.FetchStats)

	return r
}
