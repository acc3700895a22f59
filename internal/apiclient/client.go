// Package apiclient is an HTTP client for internal/api: a small struct
// holding a base address and logger, one method per remote call, each
// returning a decoded response or an error.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/biandopa/rtos-pip-sim/internal/api"
	"github.com/biandopa/rtos-pip-sim/utils/log"
)

// Client talks to an internal/api server at BaseURL (e.g.
// "http://localhost:8080").
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *slog.Logger
}

// New returns a Client backed by http.DefaultClient.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    http.DefaultClient,
		Log:     logger,
	}
}

// ListScenarios fetches GET /scenarios.
func (c *Client) ListScenarios(ctx context.Context) ([]api.ScenarioSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/scenarios", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.ErrorContext(ctx, "error al consultar la lista de escenarios", log.ErrAttr(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list scenarios: unexpected status %d", resp.StatusCode)
	}

	var out []api.ScenarioSummary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// RunScenario triggers POST /scenarios/{name}/run.
func (c *Client) RunScenario(ctx context.Context, name string) (api.RunResult, error) {
	url := fmt.Sprintf("%s/scenarios/%s/run", c.BaseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return api.RunResult{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.ErrorContext(ctx, "error al ejecutar el escenario remoto", log.StringAttr("name", name), log.ErrAttr(err))
		return api.RunResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return api.RunResult{}, fmt.Errorf("run scenario %q: unexpected status %d", name, resp.StatusCode)
	}

	var out api.RunResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return api.RunResult{}, err
	}
	return out, nil
}

// FetchEvents fetches GET /scenarios/{name}/events.
func (c *Client) FetchEvents(ctx context.Context, name string) ([]api.EventRecord, error) {
	url := fmt.Sprintf("%s/scenarios/%s/events", c.BaseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.ErrorContext(ctx, "error al consultar el log de eventos remoto", log.StringAttr("name", name), log.ErrAttr(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch events %q: unexpected status %d", name, resp.StatusCode)
	}

	var out []api.EventRecord
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchStats fetches GET /scenarios/{name}/stats.
func (c *Client) FetchStats(ctx context.Context, name string) ([]api.TaskStats, error) {
	url := fmt.Sprintf("%s/scenarios/%s/stats", c.BaseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.ErrorContext(ctx, "error al consultar las estadísticas remotas", log.StringAttr("name", name), log.ErrAttr(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch stats %q: unexpected status %d", name, resp.StatusCode)
	}

	var out []api.TaskStats
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
