// Package proofhub is the HTTP client for the upstream time-tracking API.
// Every call authenticates with an X-API-KEY header: directory endpoints use
// the directory key, time entry fetches use the per-employee key from the
// injected key map.
package proofhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/starkedge/timelogger-backend-go/internal/config"
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL      string
	directoryKey string
	apiKeys      map[int64]string
	httpClient   *http.Client
}

// NewClient creates a client for the configured upstream tracker.
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		directoryKey: cfg.DirectoryAPIKey,
		apiKeys:      cfg.APIKeys,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
}

// ListEmployees fetches the people directory.
func (c *Client) ListEmployees(ctx context.Context) ([]timeentry.Employee, error) {
	body, err := c.get(ctx, "/people", nil, c.directoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	var employees []timeentry.Employee
	if err := json.Unmarshal(body, &employees); err != nil {
		return nil, fmt.Errorf("%w: %v", timeentry.ErrMalformedResponse, err)
	}
	return employees, nil
}

// ListDepartments fetches the groups directory with each group's roster.
func (c *Client) ListDepartments(ctx context.Context) ([]timeentry.Department, error) {
	body, err := c.get(ctx, "/groups", nil, c.directoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch departments: %w", err)
	}

	var departments []timeentry.Department
	if err := json.Unmarshal(body, &departments); err != nil {
		return nil, fmt.Errorf("%w: %v", timeentry.ErrMalformedResponse, err)
	}
	return departments, nil
}

// FetchTimeEntries fetches one employee's entries for an inclusive date
// range. An employee without a configured key, and a non-array payload, both
// yield an empty list rather than an error. Entries not logged by the
// employee themselves are dropped here, and each surviving entry is stamped
// with the employee ID since the upstream payload omits it.
func (c *Client) FetchTimeEntries(ctx context.Context, employeeID int64, from, to string) ([]timeentry.RawTimeEntry, error) {
	apiKey, ok := c.apiKeys[employeeID]
	if !ok {
		slog.Debug("No API key configured for employee, skipping fetch", "employee_id", employeeID)
		return nil, nil
	}

	query := url.Values{}
	query.Set("from_date", from)
	query.Set("to_date", to)

	body, err := c.get(ctx, "/alltime", query, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time entries for employee %d: %w", employeeID, err)
	}

	var entries []timeentry.RawTimeEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		slog.Warn("Upstream returned a non-array time entry payload, treating as empty",
			"employee_id", employeeID, "error", err)
		return nil, nil
	}

	selfLogged := entries[:0]
	for _, entry := range entries {
		if !entry.ByMe {
			continue
		}
		entry.EmployeeID = employeeID
		selfLogged = append(selfLogged, entry)
	}
	return selfLogged, nil
}

// FetchTodos fetches one employee's open todos. The upstream endpoint is not
// range-scoped. Missing key and non-array payloads follow the same
// empty-list rules as FetchTimeEntries.
func (c *Client) FetchTodos(ctx context.Context, employeeID int64) ([]timeentry.RawTodo, error) {
	apiKey, ok := c.apiKeys[employeeID]
	if !ok {
		slog.Debug("No API key configured for employee, skipping todo fetch", "employee_id", employeeID)
		return nil, nil
	}

	body, err := c.get(ctx, "/alltodo", nil, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todos for employee %d: %w", employeeID, err)
	}

	var todos []timeentry.RawTodo
	if err := json.Unmarshal(body, &todos); err != nil {
		slog.Warn("Upstream returned a non-array todo payload, treating as empty",
			"employee_id", employeeID, "error", err)
		return nil, nil
	}
	return todos, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, apiKey string) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
