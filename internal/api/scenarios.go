package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/biandopa/rtos-pip-sim/internal/rtos"
	"github.com/biandopa/rtos-pip-sim/internal/scenarios"
	"github.com/biandopa/rtos-pip-sim/utils/log"
)

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ListScenarios returns every catalogued scenario's name/title/description.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	list := scenarios.List()
	out := make([]ScenarioSummary, 0, len(list))
	for _, s := range list {
		out = append(out, ScenarioSummary{
			Name:        s.Name,
			Title:       s.Title,
			Description: s.Description,
			Policy:      s.DefaultPolicy.String(),
			PIEnabled:   s.DefaultPIEnabled,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.Log.ErrorContext(r.Context(), "error al codificar la lista de escenarios", log.ErrAttr(err))
	}
}

// RunScenario runs the named scenario to completion against a fresh
// scheduler and caches its event log for a subsequent FetchEvents call.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	s, ok := scenarios.Get(name)
	if !ok {
		h.Log.WarnContext(ctx, "escenario desconocido", log.StringAttr("name", name))
		http.Error(w, "unknown scenario", http.StatusNotFound)
		return
	}

	sched := s.NewScheduler()
	if err := scenarios.Run(name, sched); err != nil {
		h.Log.ErrorContext(ctx, "error al ejecutar el escenario", log.StringAttr("name", name), log.ErrAttr(err))
		http.Error(w, "scenario run failed", http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	h.results[name] = lastRun{events: sched.Events(), tasks: sched.Tasks()}
	h.mu.Unlock()

	result := RunResult{
		Name:            name,
		ContextSwitches: sched.ContextSwitches(),
		SystemTicks:     sched.SystemTicks(),
		MinTick:         sched.Events().MinTick(),
		MaxTick:         sched.Events().MaxTick(),
		TaskCount:       len(sched.Tasks()),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.Log.ErrorContext(ctx, "error al codificar el resultado del escenario", log.ErrAttr(err))
	}
}

// FetchEvents returns the full event log of the scenario's last run.
func (h *Handler) FetchEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	h.mu.Lock()
	run, ok := h.results[name]
	h.mu.Unlock()
	if !ok {
		h.Log.WarnContext(ctx, "no hay ejecuciones registradas para el escenario", log.StringAttr("name", name))
		http.Error(w, "scenario has not been run yet", http.StatusNotFound)
		return
	}

	records := run.events.Records()
	out := make([]EventRecord, 0, len(records))
	for _, e := range records {
		out = append(out, EventRecord{
			Tick:       e.Tick,
			TaskName:   e.TaskName,
			Visual:     visualName(e.Visual),
			Annotation: e.Annotation,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.Log.ErrorContext(ctx, "error al codificar el log de eventos", log.ErrAttr(err))
	}
}

// FetchStats returns per-task statistics from the scenario's last run,
// idle task excluded.
func (h *Handler) FetchStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	h.mu.Lock()
	run, ok := h.results[name]
	h.mu.Unlock()
	if !ok {
		h.Log.WarnContext(ctx, "no hay ejecuciones registradas para el escenario", log.StringAttr("name", name))
		http.Error(w, "scenario has not been run yet", http.StatusNotFound)
		return
	}

	out := make([]TaskStats, 0, len(run.tasks))
	for _, t := range run.tasks {
		if t.IsIdle() {
			continue
		}
		out = append(out, TaskStats{
			Name:           t.Name,
			State:          t.State.String(),
			Priority:       t.Priority,
			Original:       t.Original,
			Invocations:    t.Invocations,
			DeadlineMisses: t.DeadlineMisses,
			Preemptions:    t.Preemptions,
			PriorityBoosts: t.PriorityBoosts,
			TotalExecTime:  t.TotalExecTime,
			WCETObserved:   t.WCETObserved,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		h.Log.ErrorContext(ctx, "error al codificar las estadísticas", log.ErrAttr(err))
	}
}

func visualName(v rtos.VisualState) string {
	return v.String()
}
