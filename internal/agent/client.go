// Package agent is the HTTP client for the external AI agent executor. Each
// pipeline step issues one invocation against a capability ID and gets back a
// structured success/failure result.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Invoker is the interface the pipeline driver depends on. The real client
// and the test mock both satisfy it.
type Invoker interface {
	Invoke(ctx context.Context, message, capabilityID string) (*Result, error)
}

// Result is the agent executor's response envelope.
type Result struct {
	Success       bool           `json:"success"`
	Error         string         `json:"error,omitempty"`
	Response      *Response      `json:"response,omitempty"`
	ModuleOutputs *ModuleOutputs `json:"module_outputs,omitempty"`
}

// Response wraps the capability-specific result payload.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
}

// ModuleOutputs carries artifact files produced by a capability run.
type ModuleOutputs struct {
	ArtifactFiles []ArtifactFile `json:"artifact_files,omitempty"`
}

// ArtifactFile is a single generated artifact.
type ArtifactFile struct {
	FileURL string `json:"file_url"`
}

// FirstArtifactURL returns the first artifact file URL, or "".
func (r *Result) FirstArtifactURL() string {
	if r == nil || r.ModuleOutputs == nil || len(r.ModuleOutputs.ArtifactFiles) == 0 {
		return ""
	}
	return r.ModuleOutputs.ArtifactFiles[0].FileURL
}

// HasResult reports whether the response carries a usable result payload.
// A success without one is treated as a failure by callers, since there is
// nothing to advance the item with.
func (r *Result) HasResult() bool {
	return r != nil && r.Response != nil && len(r.Response.Result) > 0 &&
		string(r.Response.Result) != "null"
}

// Client invokes agent capabilities over HTTP.
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

// New creates an agent Client.
func New(opts Opts) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("agent: base URL is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Minute
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     strings.TrimSpace(opts.APIKey),
		httpClient: &http.Client{Timeout: opts.Timeout},
	}, nil
}

// invokeRequest is the outbound payload for an agent invocation.
type invokeRequest struct {
	Message      string `json:"message"`
	CapabilityID string `json:"capability_id"`
}

// Invoke sends one message to the capability and decodes the result envelope.
// A transport failure and a decoded success=false are both reported through
// the Result's Success/Error fields so callers handle them uniformly.
func (c *Client) Invoke(ctx context.Context, message, capabilityID string) (*Result, error) {
	if capabilityID == "" {
		return nil, fmt.Errorf("agent: capability ID is required")
	}

	body, err := json.Marshal(invokeRequest{Message: message, CapabilityID: capabilityID})
	if err != nil {
		return nil, fmt.Errorf("agent: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoke", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("agent: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent: invoke %s: %w", capabilityID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("agent: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("agent: invoke %s: status %s", capabilityID, resp.Status)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("agent: decode response: %w", err)
	}
	return &result, nil
}
