package taskflowsdk

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

// Client talks to a TaskFlow server. It covers the unauthenticated endpoints
// and opens Sessions for the rest.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do sends body as JSON. An empty token sends no Authorization header.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decode reads an envelope and returns its data, or an *APIError when the
// status is not expected or success is false.
func decode[T any](resp *http.Response, expected int) (T, error) {
	defer resp.Body.Close()

	var zero T
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("failed to read response body: %w", err)
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode != expected {
			return zero, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return zero, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != expected || !env.Success {
		return zero, &APIError{StatusCode: resp.StatusCode, Message: env.Message, Detail: env.Error}
	}
	return env.Data, nil
}

// ============================================================================
// Health
// ============================================================================

func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	h, err := decode[HealthResponse](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// JWKS returns the raw public key set used to verify access tokens.
func (c *Client) JWKS(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/.well-known/jwks.json", "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode jwks: %w", err)
	}
	return raw, nil
}
