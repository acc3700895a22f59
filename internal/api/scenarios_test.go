package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biandopa/rtos-pip-sim/utils/log"
)

func TestHandler_ListScenarios(t *testing.T) {
	r := NewRouter(log.BuildLogger("error"))

	req := httptest.NewRequest(http.MethodGet, "/scenarios", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var out []ScenarioSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Len(t, out, 8)
	assert.Equal(t, "1", out[0].Name)
}

func TestHandler_RunThenFetchEvents(t *testing.T) {
	r := NewRouter(log.BuildLogger("error"))

	runReq := httptest.NewRequest(http.MethodPost, "/scenarios/1/run", nil)
	runRR := httptest.NewRecorder()
	r.ServeHTTP(runRR, runReq)
	require.Equal(t, http.StatusOK, runRR.Code)

	var result RunResult
	require.NoError(t, json.Unmarshal(runRR.Body.Bytes(), &result))
	assert.Equal(t, "1", result.Name)
	assert.GreaterOrEqual(t, result.ContextSwitches, 2)

	eventsReq := httptest.NewRequest(http.MethodGet, "/scenarios/1/events", nil)
	eventsRR := httptest.NewRecorder()
	r.ServeHTTP(eventsRR, eventsReq)
	require.Equal(t, http.StatusOK, eventsRR.Code)

	var events []EventRecord
	require.NoError(t, json.Unmarshal(eventsRR.Body.Bytes(), &events))
	assert.NotEmpty(t, events)

	statsReq := httptest.NewRequest(http.MethodGet, "/scenarios/1/stats", nil)
	statsRR := httptest.NewRecorder()
	r.ServeHTTP(statsRR, statsReq)
	require.Equal(t, http.StatusOK, statsRR.Code)

	var stats []TaskStats
	require.NoError(t, json.Unmarshal(statsRR.Body.Bytes(), &stats))
	require.Len(t, stats, 3)
	for _, st := range stats {
		assert.Equal(t, "TERMINATED", st.State)
	}
}

func TestHandler_FetchEventsWithoutRun(t *testing.T) {
	r := NewRouter(log.BuildLogger("error"))

	req := httptest.NewRequest(http.MethodGet, "/scenarios/2/events", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_RunUnknownScenario(t *testing.T) {
	r := NewRouter(log.BuildLogger("error"))

	req := httptest.NewRequest(http.MethodPost, "/scenarios/99/run", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
