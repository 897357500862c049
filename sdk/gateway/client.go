// Package gateway provides the HTTP client for the coding-assistant backend.
//
// The backend exposes chat sessions, message append, code analysis, free-form
// queries, and visualization retrieval over a JSON request/response contract.
// This client is the only component that talks to it.
//
// Example usage:
//
//	client := gateway.NewClient("http://localhost:8000")
//
//	chat, err := client.CreateChat(ctx)
//	if err != nil { ... }
//
//	resp, err := client.AnalyzeCode(ctx, &gateway.AnalyzeRequest{
//	    Code:     "function f(){}",
//	    Language: "javascript",
//	    ChatID:   chat.ID,
//	})
package gateway

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

// Client is the SDK client for the assistant backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout. Calls that exceed it surface as
// a TransportError.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		if client.httpClient == nil {
			client.httpClient = &http.Client{}
		}
		client.httpClient.Timeout = d
	}
}

// WithToken sets a bearer token sent with every request.
func WithToken(token string) ClientOption {
	return func(client *Client) {
		client.token = token
	}
}

// WithLogger sets the client logger. Logging is off by default.
func WithLogger(l *Logger) ClientOption {
	return func(client *Client) {
		client.logger = l
	}
}

// NewClient creates a new backend client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: &Logger{level: LevelOff},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// doRequest performs an HTTP request and decodes the JSON response into
// result. Errors are mapped onto the gateway error taxonomy.
func (c *Client) doRequest(ctx context.Context, op, method, path string, body any, result any) error {
	resp, err := c.do(ctx, op, method, path, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &DecodeError{Op: op, Err: err}
		}
	}
	return nil
}

// doText performs an HTTP request and returns the raw response body.
func (c *Client) doText(ctx context.Context, op, method, path string) (string, error) {
	resp, err := c.do(ctx, op, method, path, nil, "text/html")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &DecodeError{Op: op, Err: err}
	}
	return string(data), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, accept string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", accept)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rl := c.logger.startRequest(method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		terr := &TransportError{Op: op, Err: err}
		rl.failure(terr)
		return nil, terr
	}

	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		serr := &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
		rl.failure(serr)
		return nil, serr
	}

	rl.success(resp.StatusCode)
	return resp, nil
}

// Health checks the backend health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.doRequest(ctx, "health", http.MethodGet, "/health", nil, &result); err != nil {
		return nil, err
	}
	if result.Status == "" {
		return nil, &DecodeError{Op: "health", Err: fmt.Errorf("missing status field")}
	}
	return &result, nil
}

// Stats returns backend usage counters.
func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	var result StatsResponse
	if err := c.doRequest(ctx, "stats", http.MethodGet, "/api/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
