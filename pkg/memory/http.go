package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the default agent memory server URL.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds each request when no timeout is configured.
	DefaultTimeout = 30 * time.Second
)

// HTTPClient talks to an agent memory server over its REST API.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	bearerToken string
	httpClient  *http.Client
}

// HTTPClientConfig holds connection settings for the memory server.
type HTTPClientConfig struct {
	// BaseURL is the memory server URL (e.g., "http://localhost:8000").
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// APIKey is sent as X-Api-Key when set and no bearer token is configured.
	APIKey string

	// BearerToken is sent as an Authorization bearer token when set.
	BearerToken string

	// Timeout bounds each request. Defaults to DefaultTimeout if zero.
	Timeout time.Duration
}

// NewHTTPClient creates a client for the agent memory server's REST API.
func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      cfg.APIKey,
		bearerToken: cfg.BearerToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// listViewsResponse is the response from the summary view list endpoint.
type listViewsResponse struct {
	Views []SummaryView `json:"views"`
}

// runViewResponse is the response from the async view refresh endpoint.
type runViewResponse struct {
	ID string `json:"id"`
}

// runPartitionRequest is the request body for a single-partition run.
type runPartitionRequest struct {
	Group map[string]string `json:"group"`
}

// appendMessagesRequest is the request body for appending to a thread.
type appendMessagesRequest struct {
	Namespace string    `json:"namespace,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Messages  []Message `json:"messages"`
}

// GetSummaryView looks up a summary view by name. The server only exposes a
// list endpoint, so the match happens client-side. Returns (nil, nil) when
// no view with that name exists.
func (c *HTTPClient) GetSummaryView(ctx context.Context, name string) (*SummaryView, error) {
	var listResp listViewsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/summary-views", nil, &listResp); err != nil {
		return nil, fmt.Errorf("listing summary views: %w", err)
	}

	for i := range listResp.Views {
		if listResp.Views[i].Name == name {
			return &listResp.Views[i], nil
		}
	}

	return nil, nil
}

// CreateSummaryView registers a new summary view and returns it with its
// server-assigned ID.
func (c *HTTPClient) CreateSummaryView(ctx context.Context, req CreateSummaryViewRequest) (*SummaryView, error) {
	var view SummaryView
	if err := c.do(ctx, http.MethodPost, "/v1/summary-views", req, &view); err != nil {
		return nil, fmt.Errorf("creating summary view: %w", err)
	}

	return &view, nil
}

// RunSummaryView starts an async refresh of every partition of the view.
func (c *HTTPClient) RunSummaryView(ctx context.Context, viewID string) (string, error) {
	if viewID == "" {
		return "", errors.New("cannot run summary view with empty id")
	}

	var runResp runViewResponse
	path := "/v1/summary-views/" + url.PathEscape(viewID) + "/run"
	if err := c.do(ctx, http.MethodPost, path, nil, &runResp); err != nil {
		return "", fmt.Errorf("running summary view: %w", err)
	}

	return runResp.ID, nil
}

// RunSummaryViewPartition computes the summary for one concrete partition
// of the named view.
func (c *HTTPClient) RunSummaryViewPartition(ctx context.Context, viewName string, group map[string]string) (*PartitionResult, error) {
	if viewName == "" {
		return nil, errors.New("cannot run partition of unnamed view")
	}

	var result PartitionResult
	path := "/v1/summary-views/" + url.PathEscape(viewName) + "/partitions/run"
	if err := c.do(ctx, http.MethodPost, path, runPartitionRequest{Group: group}, &result); err != nil {
		return nil, fmt.Errorf("running summary view partition: %w", err)
	}

	return &result, nil
}

// PutWorkingMemory stores the working memory for a session.
func (c *HTTPClient) PutWorkingMemory(ctx context.Context, sessionID string, wm *WorkingMemory) error {
	if wm == nil {
		return errors.New("cannot put nil working memory")
	}
	if sessionID == "" {
		return errors.New("cannot put working memory with empty session id")
	}

	path := "/v1/working-memory/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodPut, path, wm, nil); err != nil {
		return fmt.Errorf("putting working memory: %w", err)
	}

	return nil
}

// AppendMessages appends messages to a session's working memory, creating
// the thread if it does not exist yet.
func (c *HTTPClient) AppendMessages(ctx context.Context, sessionID, namespace, userID string, msgs []Message) error {
	if sessionID == "" {
		return errors.New("cannot append messages with empty session id")
	}

	req := appendMessagesRequest{
		Namespace: namespace,
		UserID:    userID,
		Messages:  msgs,
	}

	path := "/v1/working-memory/" + url.PathEscape(sessionID) + "/messages"
	if err := c.do(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("appending messages: %w", err)
	}

	return nil
}

// SearchLongTermMemory runs a semantic search over extracted long-term
// memories.
func (c *HTTPClient) SearchLongTermMemory(ctx context.Context, req SearchRequest) (*SearchResults, error) {
	var results SearchResults
	if err := c.do(ctx, http.MethodPost, "/v1/long-term-memory/search", req, &results); err != nil {
		return nil, fmt.Errorf("searching long-term memory: %w", err)
	}

	return &results, nil
}

// Ping checks that the server is reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/v1/health", nil, nil)
}

// Close releases resources held by the client.
func (c *HTTPClient) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// do sends one JSON request and decodes the response into out (when non-nil).
// Non-2xx responses come back as a StatusError carrying the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	} else if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
