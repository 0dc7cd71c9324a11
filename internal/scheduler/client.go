// Package scheduler is a thin pass-through client for the external scheduler
// API that owns the recurring publish job. This system only displays the
// remote state and issues control commands against it; after every command
// the snapshot is re-fetched so displayed state follows remote truth rather
// than optimistic local updates.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Schedule mirrors the remote recurring job's state. Read-only here.
type Schedule struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	IsActive       bool       `json:"is_active"`
	CronExpression string     `json:"cron_expression"`
	NextRunTime    *time.Time `json:"next_run_time,omitempty"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
}

// Execution mirrors one past run of the remote job.
type Execution struct {
	ID           string    `json:"id"`
	ExecutedAt   time.Time `json:"executed_at"`
	Success      bool      `json:"success"`
	Attempt      int       `json:"attempt"`
	MaxAttempts  int       `json:"max_attempts"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// listResponse is the remote envelope for schedule listings.
type listResponse struct {
	Success   bool       `json:"success"`
	Schedules []Schedule `json:"schedules,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// logsResponse is the remote envelope for execution history.
type logsResponse struct {
	Success    bool        `json:"success"`
	Executions []Execution `json:"executions,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// commandResponse is the remote envelope for control commands.
type commandResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Client talks to the external scheduler API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Opts holds parameters for creating a Client.
type Opts struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// New creates a scheduler Client.
func New(opts Opts) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("scheduler: base URL is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     strings.TrimSpace(opts.APIKey),
		httpClient: &http.Client{Timeout: opts.Timeout},
	}, nil
}

// ListSchedules fetches all remote schedules.
func (c *Client) ListSchedules(ctx context.Context) ([]Schedule, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/schedules", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, remoteError("list schedules", resp.Error)
	}
	return resp.Schedules, nil
}

// GetSchedule fetches one schedule by ID, falling back to the first remote
// schedule when the ID is not found.
func (c *Client) GetSchedule(ctx context.Context, id string) (*Schedule, error) {
	schedules, err := c.ListSchedules(ctx)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, fmt.Errorf("scheduler: no schedules configured remotely")
	}
	for i := range schedules {
		if schedules[i].ID == id {
			return &schedules[i], nil
		}
	}
	return &schedules[0], nil
}

// GetScheduleLogs fetches recent executions of a schedule.
func (c *Client) GetScheduleLogs(ctx context.Context, id string, limit int) ([]Execution, error) {
	if limit <= 0 {
		limit = 10
	}
	path := fmt.Sprintf("/schedules/%s/logs?limit=%d", id, limit)
	var resp logsResponse
	if err := c.do(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, remoteError("get logs", resp.Error)
	}
	return resp.Executions, nil
}

// Pause pauses the schedule and returns the reconciled snapshot.
func (c *Client) Pause(ctx context.Context, id string) (*Schedule, error) {
	return c.command(ctx, id, "pause")
}

// Resume resumes the schedule and returns the reconciled snapshot.
func (c *Client) Resume(ctx context.Context, id string) (*Schedule, error) {
	return c.command(ctx, id, "resume")
}

// TriggerNow fires the schedule immediately and returns the reconciled
// snapshot.
func (c *Client) TriggerNow(ctx context.Context, id string) (*Schedule, error) {
	return c.command(ctx, id, "trigger")
}

// command issues a control command then re-fetches the snapshot.
func (c *Client) command(ctx context.Context, id, action string) (*Schedule, error) {
	var resp commandResponse
	path := fmt.Sprintf("/schedules/%s/%s", id, action)
	if err := c.do(ctx, http.MethodPost, path, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, remoteError(action, resp.Error)
	}
	return c.GetSchedule(ctx, id)
}

func (c *Client) do(ctx context.Context, method, path string, into interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("scheduler: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scheduler: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("scheduler: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("scheduler: %s %s: status %s", method, path, resp.Status)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("scheduler: decode response: %w", err)
	}
	return nil
}

func remoteError(action, msg string) error {
	if msg == "" {
		msg = "remote call failed"
	}
	return fmt.Errorf("scheduler: %s: %s", action, msg)
}
