// Package api exposes internal/scenarios and internal/rtos over HTTP so
// an external renderer or tooling can run a scenario and fetch its event
// log without linking against internal/rtos directly.
package api

import (
	"log/slog"
	"sync"

	"github.com/biandopa/rtos-pip-sim/internal/rtos"
)

// lastRun caches one scenario's most recent run so GET /events can serve
// it without re-running the simulation.
type lastRun struct {
	events *rtos.EventLog
	tasks  []*rtos.Task
}

// Handler holds the HTTP handlers for the introspection API. Each run
// executes against a fresh *rtos.Scheduler scoped to the request, so
// concurrent requests for different scenarios never share simulation
// state; mu only protects the results cache.
type Handler struct {
	Log *slog.Logger

	mu      sync.Mutex
	results map[string]lastRun
}

// NewHandler builds a Handler that logs through logger.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		Log:     logger,
		results: make(map[string]lastRun),
	}
}
